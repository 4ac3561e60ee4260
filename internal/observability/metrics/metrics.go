package metrics

import "github.com/prometheus/client_golang/prometheus"

// RelayMetrics exposes counters/histograms for webhook relay flows.
type RelayMetrics struct {
	inboundTotal    *prometheus.CounterVec
	sideEffectTotal *prometheus.CounterVec
	webhookLatency  *prometheus.HistogramVec
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "webhook",
			Name:      "inbound_total",
			Help:      "Total inbound webhooks",
		}, []string{"endpoint", "status"}),
		sideEffectTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "webhook",
			Name:      "side_effect_total",
			Help:      "Total outbound side-effect attempts",
		}, []string{"integration", "outcome"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "relay",
			Subsystem: "webhook",
			Name:      "latency_seconds",
			Help:      "Latency of webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.sideEffectTotal, m.webhookLatency)
	return m
}

func (m *RelayMetrics) ObserveInbound(endpoint, status string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(endpoint, status).Inc()
}

func (m *RelayMetrics) ObserveSideEffect(integration string, ok bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.sideEffectTotal.WithLabelValues(integration, outcome).Inc()
}

func (m *RelayMetrics) ObserveLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(endpoint).Observe(seconds)
}

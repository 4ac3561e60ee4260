package relay

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/maxitel/webhook-relay/internal/calendar"
	"github.com/maxitel/webhook-relay/internal/messaging"
	"github.com/maxitel/webhook-relay/internal/notify"
	"github.com/maxitel/webhook-relay/internal/observability/metrics"
	"github.com/maxitel/webhook-relay/pkg/logging"
)

// Version is reported by the /version endpoint.
const Version = "1.0.0"

var webhookTracer = otel.Tracer("relay.internal.relay.webhook")

// SideEffects summarizes which of the independent integrations succeeded for
// one inbound event.
type SideEffects struct {
	CalendarCreated bool   `json:"calendar_created"`
	SMSSent         bool   `json:"sms_sent"`
	EmailSent       bool   `json:"email_sent"`
	CalendarEventID string `json:"calendar_event_id"`
	CalendarLink    string `json:"calendar_link"`
}

type customerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type webhookResponse struct {
	Status          string        `json:"status"`
	Message         string        `json:"message"`
	Data            SideEffects   `json:"data"`
	Customer        *customerInfo `json:"customer,omitempty"`
	AppointmentTime string        `json:"appointment_time,omitempty"`
}

type errorResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// HandlerConfig configures the aggregate webhook handler. Any nil integration
// disables that side effect; the decision is logged once at startup, not per
// request.
type HandlerConfig struct {
	Calendar calendar.EventCreator
	SMS      messaging.SMSSender
	Email    notify.EmailSender
	Metrics  *metrics.RelayMetrics
	Logger   *logging.Logger

	BrandName               string
	Timezone                string
	AppointmentDurationMins int
	BookingDurationMins     int
}

// Handler processes structured webhooks and booking intents: validate, create
// the calendar event, then fire the notifications. Every request is handled
// start to finish within the handler invocation; nothing outlives it.
type Handler struct {
	calendar calendar.EventCreator
	sms      messaging.SMSSender
	email    notify.EmailSender
	metrics  *metrics.RelayMetrics
	logger   *logging.Logger

	brand               string
	timezone            string
	location            *time.Location
	appointmentDuration time.Duration
	bookingDuration     time.Duration
}

// NewHandler creates the aggregate handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.BrandName == "" {
		cfg.BrandName = "Maxi"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Los_Angeles"
	}
	if cfg.AppointmentDurationMins <= 0 {
		cfg.AppointmentDurationMins = 30
	}
	if cfg.BookingDurationMins <= 0 {
		cfg.BookingDurationMins = 60
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		cfg.Logger.Warn("unknown timezone, falling back to UTC", "timezone", cfg.Timezone)
		loc = time.UTC
		cfg.Timezone = "UTC"
	}
	return &Handler{
		calendar:            cfg.Calendar,
		sms:                 cfg.SMS,
		email:               cfg.Email,
		metrics:             cfg.Metrics,
		logger:              cfg.Logger,
		brand:               cfg.BrandName,
		timezone:            cfg.Timezone,
		location:            loc,
		appointmentDuration: time.Duration(cfg.AppointmentDurationMins) * time.Minute,
		bookingDuration:     time.Duration(cfg.BookingDurationMins) * time.Minute,
	}
}

// HandleWebhook serves POST /webhook. Side-effect failures are recorded in
// the aggregate result and never abort the remaining integrations or the
// final response.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := webhookTracer.Start(r.Context(), "relay.webhook")
	defer span.End()
	defer func() {
		h.metrics.ObserveLatency("webhook", time.Since(start).Seconds())
	}()

	var evt CallbackEvent
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		h.logger.Error("failed to decode webhook payload", "error", err)
		h.metrics.ObserveInbound("webhook", "rejected")
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "rejected", Detail: "invalid JSON body"})
		return
	}
	span.SetAttributes(attribute.String("relay.caller", evt.Caller))

	if err := evt.Validate(h.location); err != nil {
		h.logger.Warn("webhook payload rejected", "error", err)
		h.metrics.ObserveInbound("webhook", "rejected")
		span.RecordError(err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "rejected", Detail: err.Error()})
		return
	}

	name := evt.DisplayName()
	summary := evt.SummaryOrDefault()

	// No appointment time: acknowledge receipt and perform no side effects.
	if evt.CallbackTime == "" {
		h.logger.Info("webhook acknowledged without appointment time", "caller", evt.Caller)
		h.metrics.ObserveInbound("webhook", "acknowledged")
		writeJSON(w, http.StatusOK, webhookResponse{
			Status:  "acknowledged",
			Message: "Webhook received but no appointment time specified",
		})
		return
	}

	when, err := ParseCallbackTime(evt.CallbackTime, h.location)
	if err != nil {
		// Validate already parsed it; this only guards future drift.
		h.metrics.ObserveInbound("webhook", "rejected")
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "rejected", Detail: "callback_time must be a valid ISO 8601 datetime"})
		return
	}

	var effects SideEffects

	// Calendar first: the notifications may reference the event link, so
	// both wait for the calendar outcome, success or failure.
	if h.calendar != nil {
		draft := calendar.AppointmentDraft(name, evt.Caller, evt.Email, summary, evt.Transcript, when, h.appointmentDuration, h.timezone)
		created, err := h.calendar.CreateEvent(ctx, draft)
		if err != nil {
			intErr := &IntegrationError{Integration: "calendar", Err: err}
			h.logger.Error("calendar event creation failed", "error", intErr)
			h.metrics.ObserveSideEffect("calendar", false)
			span.RecordError(intErr)
		} else {
			effects.CalendarCreated = true
			effects.CalendarEventID = created.ID
			effects.CalendarLink = created.HTMLLink
			h.metrics.ObserveSideEffect("calendar", true)
		}
	}

	// SMS and email are independent of one another.
	var wg sync.WaitGroup
	if h.sms != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := ConfirmationSMS(name, when.In(h.location), summary, h.brand)
			if err := h.sms.SendSMS(ctx, evt.Caller, body); err != nil {
				intErr := &IntegrationError{Integration: "sms", Err: err}
				h.logger.Error("sms confirmation failed", "error", intErr, "to", evt.Caller)
				h.metrics.ObserveSideEffect("sms", false)
				return
			}
			effects.SMSSent = true
			h.metrics.ObserveSideEffect("sms", true)
		}()
	}
	if h.email != nil && evt.Email != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plain, htmlBody := ConfirmationEmail(name, when.In(h.location), evt.Caller, summary, effects.CalendarLink, h.brand)
			msg := notify.EmailMessage{
				To:      evt.Email,
				ToName:  name,
				Subject: "Appointment Confirmation - " + name,
				Body:    plain,
				HTML:    htmlBody,
			}
			if err := h.email.Send(ctx, msg); err != nil {
				intErr := &IntegrationError{Integration: "email", Err: err}
				h.logger.Error("email confirmation failed", "error", intErr, "to", evt.Email)
				h.metrics.ObserveSideEffect("email", false)
				return
			}
			effects.EmailSent = true
			h.metrics.ObserveSideEffect("email", true)
		}()
	}
	wg.Wait()

	h.logger.Info("webhook processed",
		"caller", evt.Caller,
		"calendar_created", effects.CalendarCreated,
		"sms_sent", effects.SMSSent,
		"email_sent", effects.EmailSent,
	)
	h.metrics.ObserveInbound("webhook", "success")

	writeJSON(w, http.StatusOK, webhookResponse{
		Status:  "success",
		Message: "Appointment processed successfully",
		Data:    effects,
		Customer: &customerInfo{
			Name:  name,
			Phone: evt.Caller,
			Email: evt.Email,
		},
		AppointmentTime: evt.CallbackTime,
	})
}

type bookingResponse struct {
	Status         string `json:"status"`
	EventID        string `json:"event_id"`
	ScheduledStart string `json:"scheduled_start"`
	SMSSent        bool   `json:"sms_sent"`
}

// HandleBook serves POST /book: the explicit booking variant. Unlike
// /webhook, a calendar failure is fatal here: the caller needs to know the
// slot was not booked.
func (h *Handler) HandleBook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := webhookTracer.Start(r.Context(), "relay.book")
	defer span.End()
	defer func() {
		h.metrics.ObserveLatency("book", time.Since(start).Seconds())
	}()

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveInbound("book", "rejected")
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "rejected", Detail: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.Warn("booking rejected", "error", err)
		h.metrics.ObserveInbound("book", "rejected")
		span.RecordError(err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "rejected", Detail: err.Error()})
		return
	}

	startTime, err := req.StartTime(h.location)
	if err != nil {
		h.metrics.ObserveInbound("book", "rejected")
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "rejected", Detail: "preferred date/time could not be parsed"})
		return
	}

	if h.calendar == nil {
		h.metrics.ObserveInbound("book", "error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Detail: "calendar integration not configured"})
		return
	}

	draft := calendar.BookingDraft(req.Name, req.Phone, req.Email, req.Address, req.Notes, startTime, h.bookingDuration, h.timezone)
	created, err := h.calendar.CreateEvent(ctx, draft)
	if err != nil {
		intErr := &IntegrationError{Integration: "calendar", Err: err}
		h.logger.Error("booking calendar event failed", "error", intErr)
		h.metrics.ObserveSideEffect("calendar", false)
		h.metrics.ObserveInbound("book", "error")
		span.RecordError(intErr)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Status: "error", Detail: intErr.Error()})
		return
	}
	h.metrics.ObserveSideEffect("calendar", true)

	smsSent := false
	if h.sms != nil {
		body := BookingSMS(req.Name, startTime, req.Address, h.brand)
		if err := h.sms.SendSMS(ctx, req.Phone, body); err != nil {
			h.logger.Error("booking sms failed", "error", err, "to", req.Phone)
			h.metrics.ObserveSideEffect("sms", false)
		} else {
			smsSent = true
			h.metrics.ObserveSideEffect("sms", true)
		}
	}

	h.logger.Info("booking processed", "name", req.Name, "event_id", created.ID, "sms_sent", smsSent)
	h.metrics.ObserveInbound("book", "success")
	writeJSON(w, http.StatusOK, bookingResponse{
		Status:         "ok",
		EventID:        created.ID,
		ScheduledStart: startTime.Format(time.RFC3339),
		SMSSent:        smsSent,
	})
}

// HealthCheck serves GET /health and /status: per-integration configured-ness
// with a degraded status when any path is disabled.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	services := map[string]bool{
		"google_calendar": h.calendar != nil,
		"twilio_sms":      h.sms != nil,
		"email":           h.email != nil,
	}
	status := "ok"
	message := "all integrations configured"
	for _, ok := range services {
		if !ok {
			status = "degraded"
			message = "one or more integrations disabled"
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  services,
	})
}

// VersionInfo serves GET /version.
func (h *Handler) VersionInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}

// Root serves GET /: basic service info.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": h.brand + " Telephony Webhook Relay",
		"version": Version,
		"status":  "operational",
		"endpoints": map[string]string{
			"health":  "/health",
			"version": "/version",
			"webhook": "/webhook",
			"book":    "/book",
			"voice":   "/voice/inbound",
			"sms":     "/sms/inbound",
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

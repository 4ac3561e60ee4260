package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/maxitel/webhook-relay/internal/http/middleware"
	"github.com/maxitel/webhook-relay/internal/messaging"
	"github.com/maxitel/webhook-relay/internal/relay"
	"github.com/maxitel/webhook-relay/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	RelayHandler   *relay.Handler
	VoiceHandler   *messaging.VoiceHandler
	MetricsHandler http.Handler

	// VoiceAllowGet also serves the telephony callback paths on GET;
	// some provider configurations poll them that way.
	VoiceAllowGet bool
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/", cfg.RelayHandler.Root)
	r.Get("/health", cfg.RelayHandler.HealthCheck)
	r.Get("/status", cfg.RelayHandler.HealthCheck)
	r.Get("/version", cfg.RelayHandler.VersionInfo)

	r.Post("/webhook", cfg.RelayHandler.HandleWebhook)
	r.Post("/book", cfg.RelayHandler.HandleBook)

	if cfg.VoiceHandler != nil {
		voicePaths := map[string]http.HandlerFunc{
			"/voice/inbound":            cfg.VoiceHandler.HandleInbound,
			"/voice/recorded":           cfg.VoiceHandler.HandleRecorded,
			"/voice/recording-complete": cfg.VoiceHandler.HandleRecorded,
			"/sms/inbound":              cfg.VoiceHandler.HandleInboundSMS,
			"/incoming":                 cfg.VoiceHandler.HandleInboundSMS,
		}
		for path, handler := range voicePaths {
			r.Post(path, handler)
			if cfg.VoiceAllowGet {
				r.Get(path, handler)
			}
		}
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

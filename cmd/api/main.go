package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxitel/webhook-relay/internal/api/router"
	"github.com/maxitel/webhook-relay/internal/calendar"
	appconfig "github.com/maxitel/webhook-relay/internal/config"
	"github.com/maxitel/webhook-relay/internal/messaging"
	"github.com/maxitel/webhook-relay/internal/notify"
	"github.com/maxitel/webhook-relay/internal/observability/metrics"
	"github.com/maxitel/webhook-relay/internal/relay"
	"github.com/maxitel/webhook-relay/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting webhook relay",
		"env", cfg.Env,
		"port", cfg.Port,
		"version", relay.Version,
	)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// SMS: missing credentials disable the path, logged once.
	var smsSender messaging.SMSSender
	if cfg.TwilioConfigured() {
		smsSender = messaging.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)
		logger.Info("twilio sms configured", "from", cfg.TwilioFromNumber)
	} else {
		logger.Warn("twilio credentials not configured - sms notifications disabled")
	}

	var eventCreator calendar.EventCreator
	if cfg.CalendarConfigured() {
		client, err := calendar.NewClient(ctx, calendar.ClientConfig{
			ServiceAccountJSONB64: cfg.GoogleServiceAccountJSONB64,
			ServiceAccountFile:    cfg.GoogleServiceAccountFile,
			CalendarID:            cfg.GoogleCalendarID,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize calendar client", "error", err)
			if cfg.StrictConfig {
				os.Exit(1)
			}
		} else {
			eventCreator = client
			logger.Info("google calendar configured", "calendar_id", cfg.GoogleCalendarID)
		}
	} else {
		logger.Warn("google calendar credentials not configured - event creation disabled")
	}

	emailSender := buildEmailSender(ctx, cfg, logger)
	if emailSender == nil {
		logger.Warn("email credentials not configured - email notifications disabled")
	}

	reg := prometheus.NewRegistry()
	relayMetrics := metrics.NewRelayMetrics(reg)

	relayHandler := relay.NewHandler(relay.HandlerConfig{
		Calendar:                eventCreator,
		SMS:                     smsSender,
		Email:                   emailSender,
		Metrics:                 relayMetrics,
		Logger:                  logger,
		BrandName:               cfg.BrandName,
		Timezone:                cfg.DefaultTimezone,
		AppointmentDurationMins: cfg.AppointmentDurationMins,
		BookingDurationMins:     cfg.BookingDurationMins,
	})
	voiceHandler := messaging.NewVoiceHandler(messaging.VoiceHandlerConfig{
		BrandName:     cfg.BrandName,
		Greeting:      cfg.VoiceGreeting,
		StreamAgentID: cfg.StreamAgentID,
		Logger:        logger,
	})

	r := router.New(&router.Config{
		Logger:         logger,
		RelayHandler:   relayHandler,
		VoiceHandler:   voiceHandler,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		VoiceAllowGet:  cfg.VoiceAllowGet,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the provider per EMAIL_PROVIDER: sendgrid, ses, none
// or auto (sendgrid when keyed, SES as fallback). Returns nil when no
// provider is usable.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	newSendGrid := func() notify.EmailSender {
		s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if s == nil {
			return nil
		}
		logger.Info("sendgrid email configured", "from", cfg.SendGridFromEmail)
		return s
	}
	newSES := func() notify.EmailSender {
		if cfg.SESFromEmail == "" {
			return nil
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("failed to load AWS config for SES", "error", err)
			return nil
		}
		s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if s == nil {
			return nil
		}
		logger.Info("ses email configured", "from", cfg.SESFromEmail, "region", cfg.AWSRegion)
		return s
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		return newSendGrid()
	case "ses":
		return newSES()
	case "none":
		return nil
	default: // auto
		if s := newSendGrid(); s != nil {
			return s
		}
		return newSES()
	}
}

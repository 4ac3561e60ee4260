package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("GOOGLE_CALENDAR_ID", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.DefaultTimezone != "America/Los_Angeles" {
		t.Fatalf("expected default timezone, got %s", cfg.DefaultTimezone)
	}
	if cfg.GoogleCalendarID != "primary" {
		t.Fatalf("expected primary calendar default, got %s", cfg.GoogleCalendarID)
	}
	if cfg.AppointmentDurationMins != 30 {
		t.Fatalf("expected default appointment duration, got %d", cfg.AppointmentDurationMins)
	}
	if cfg.BookingDurationMins != 60 {
		t.Fatalf("expected default booking duration, got %d", cfg.BookingDurationMins)
	}
	if !cfg.VoiceAllowGet {
		t.Fatal("expected voice GET accepted by default")
	}
	if cfg.StrictConfig {
		t.Fatal("expected strict config disabled by default")
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("expected default read timeout, got %s", cfg.ReadTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIMEZONE", "America/New_York")
	t.Setenv("APPOINTMENT_DURATION_MINS", "45")
	t.Setenv("EMAIL_PROVIDER", "SES")
	t.Setenv("VOICE_ALLOW_GET", "false")
	t.Setenv("HTTP_READ_TIMEOUT", "20s")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DefaultTimezone != "America/New_York" {
		t.Fatalf("expected timezone override, got %s", cfg.DefaultTimezone)
	}
	if cfg.AppointmentDurationMins != 45 {
		t.Fatalf("expected duration override, got %d", cfg.AppointmentDurationMins)
	}
	if cfg.EmailProvider != "ses" {
		t.Fatalf("expected lowered email provider, got %s", cfg.EmailProvider)
	}
	if cfg.VoiceAllowGet {
		t.Fatal("expected voice GET disabled")
	}
	if cfg.ReadTimeout != 20*time.Second {
		t.Fatalf("expected read timeout override, got %s", cfg.ReadTimeout)
	}
}

func TestFeatureFlags(t *testing.T) {
	cfg := &Config{}
	if cfg.TwilioConfigured() {
		t.Fatal("expected twilio unconfigured")
	}
	if cfg.CalendarConfigured() {
		t.Fatal("expected calendar unconfigured")
	}
	if cfg.EmailConfigured() {
		t.Fatal("expected email unconfigured")
	}

	cfg.TwilioAccountSID = "AC123"
	cfg.TwilioAuthToken = "token"
	cfg.TwilioFromNumber = "+15550001111"
	cfg.GoogleServiceAccountFile = "/secrets/sa.json"
	cfg.EmailProvider = "auto"
	cfg.SESFromEmail = "noreply@example.com"
	if !cfg.TwilioConfigured() {
		t.Fatal("expected twilio configured")
	}
	if !cfg.CalendarConfigured() {
		t.Fatal("expected calendar configured")
	}
	if !cfg.EmailConfigured() {
		t.Fatal("expected email configured via SES fallback")
	}

	cfg.EmailProvider = "none"
	if cfg.EmailConfigured() {
		t.Fatal("expected email disabled when provider none")
	}
}

func TestValidateStrict(t *testing.T) {
	cfg := &Config{StrictConfig: true, GoogleCalendarID: "primary"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing credentials")
	}
	if !strings.Contains(err.Error(), "TWILIO_ACCOUNT_SID") {
		t.Fatalf("expected missing twilio sid in error, got %v", err)
	}

	cfg.TwilioAccountSID = "AC123"
	cfg.TwilioAuthToken = "token"
	cfg.TwilioFromNumber = "+15550001111"
	cfg.GoogleServiceAccountJSONB64 = "e30="
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid strict config, got %v", err)
	}
}

func TestValidateLaxAllowsMissing(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("lax config should not fail validation, got %v", err)
	}
}

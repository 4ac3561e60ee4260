package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	BrandName string

	// Appointment policy
	DefaultTimezone         string
	AppointmentDurationMins int
	BookingDurationMins     int

	// Twilio SMS / voice
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Google Calendar
	GoogleServiceAccountJSONB64 string
	GoogleServiceAccountFile    string
	GoogleCalendarID            string

	// Email (SendGrid by default, SES as alternative)
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	AWSRegion         string
	SESFromEmail      string
	SESFromName       string

	// Voice response rendering
	StreamAgentID string
	VoiceGreeting string
	VoiceAllowGet bool

	// StrictConfig aborts startup when Twilio and Calendar credentials are
	// missing instead of degrading those features.
	StrictConfig bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		BrandName: getEnv("BRAND_NAME", "Maxi"),

		DefaultTimezone:         getEnv("TIMEZONE", "America/Los_Angeles"),
		AppointmentDurationMins: getEnvAsInt("APPOINTMENT_DURATION_MINS", 30),
		BookingDurationMins:     getEnvAsInt("BOOKING_DURATION_MINS", 60),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),

		GoogleServiceAccountJSONB64: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON_B64", ""),
		GoogleServiceAccountFile:    getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleCalendarID:            getEnv("GOOGLE_CALENDAR_ID", "primary"),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", ""),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", ""),

		StreamAgentID: getEnv("STREAM_AGENT_ID", ""),
		VoiceGreeting: getEnv("VOICE_GREETING", ""),
		VoiceAllowGet: getEnvAsBool("VOICE_ALLOW_GET", true),

		StrictConfig: getEnvAsBool("STRICT_CONFIG", false),

		ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}
}

// TwilioConfigured reports whether outbound SMS can be sent.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

// CalendarConfigured reports whether calendar event creation can be attempted.
func (c *Config) CalendarConfigured() bool {
	return c.GoogleServiceAccountJSONB64 != "" || c.GoogleServiceAccountFile != ""
}

// EmailConfigured reports whether an email sender can be constructed for the
// selected provider.
func (c *Config) EmailConfigured() bool {
	switch c.EmailProvider {
	case "sendgrid":
		return c.SendGridAPIKey != "" && c.SendGridFromEmail != ""
	case "ses":
		return c.SESFromEmail != ""
	case "none":
		return false
	default: // auto
		return (c.SendGridAPIKey != "" && c.SendGridFromEmail != "") || c.SESFromEmail != ""
	}
}

// Validate enforces the strict startup policy: when STRICT_CONFIG is set the
// process refuses to start without Twilio and Calendar credentials. Otherwise
// missing credentials only disable the corresponding feature.
func (c *Config) Validate() error {
	if !c.StrictConfig {
		return nil
	}
	var missing []string
	if c.TwilioAccountSID == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if c.TwilioAuthToken == "" {
		missing = append(missing, "TWILIO_AUTH_TOKEN")
	}
	if c.TwilioFromNumber == "" {
		missing = append(missing, "TWILIO_FROM_NUMBER")
	}
	if !c.CalendarConfigured() {
		missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_JSON_B64 or GOOGLE_SERVICE_ACCOUNT_FILE")
	}
	if c.GoogleCalendarID == "" {
		missing = append(missing, "GOOGLE_CALENDAR_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

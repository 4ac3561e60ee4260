package relay

import (
	"net/mail"
	"strings"
	"time"

	"github.com/maxitel/webhook-relay/internal/messaging"
)

// CallbackEvent is the structured webhook payload posted by the voice agent
// when a conversation finishes. Only the caller number is required; the rest
// of the fields are best-effort extractions from the conversation.
type CallbackEvent struct {
	Caller       string `json:"caller"`
	Summary      string `json:"summary,omitempty"`
	Transcript   string `json:"transcript,omitempty"`
	Intent       string `json:"intent,omitempty"`
	CallbackTime string `json:"callback_time,omitempty"`
	Email        string `json:"email,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

// minPhoneDigits is the minimum digit count for a caller number after
// stripping formatting.
const minPhoneDigits = 10

// Validate checks the event fields and returns a *ValidationError describing
// the first problem found.
func (e *CallbackEvent) Validate(loc *time.Location) error {
	if strings.TrimSpace(e.Caller) == "" {
		return NewValidationError("caller", "phone number is required")
	}
	if messaging.DigitCount(e.Caller) < minPhoneDigits {
		return NewValidationError("caller", "phone number must contain at least 10 digits")
	}
	if e.CallbackTime != "" {
		if _, err := ParseCallbackTime(e.CallbackTime, loc); err != nil {
			return NewValidationError("callback_time", "must be a valid ISO 8601 datetime")
		}
	}
	if e.Email != "" {
		if _, err := mail.ParseAddress(e.Email); err != nil {
			return NewValidationError("email", "must be a valid email address")
		}
	}
	return nil
}

// DisplayName returns the customer name or a neutral fallback.
func (e *CallbackEvent) DisplayName() string {
	if name := strings.TrimSpace(e.CustomerName); name != "" {
		return name
	}
	return "Valued Customer"
}

// SummaryOrDefault returns the call summary or a fixed placeholder.
func (e *CallbackEvent) SummaryOrDefault() string {
	if s := strings.TrimSpace(e.Summary); s != "" {
		return s
	}
	return "Appointment scheduled via phone"
}

// BookingRequest is the booking-variant payload: an explicit date and local
// time instead of a single ISO timestamp, plus the visit address.
type BookingRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	Email         string `json:"email,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Validate checks the booking fields.
func (b *BookingRequest) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(b.Phone) == "" {
		return NewValidationError("phone", "phone number is required")
	}
	if messaging.DigitCount(b.Phone) < minPhoneDigits {
		return NewValidationError("phone", "phone number must contain at least 10 digits")
	}
	if strings.TrimSpace(b.Address) == "" {
		return NewValidationError("address", "address is required")
	}
	if _, err := time.Parse("2006-01-02", b.PreferredDate); err != nil {
		return NewValidationError("preferred_date", "must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", b.PreferredTime); err != nil {
		return NewValidationError("preferred_time", "must be HH:MM (24h)")
	}
	if b.Email != "" {
		if _, err := mail.ParseAddress(b.Email); err != nil {
			return NewValidationError("email", "must be a valid email address")
		}
	}
	return nil
}

// StartTime combines the preferred date and time in the given zone.
func (b *BookingRequest) StartTime(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.PreferredDate+" "+b.PreferredTime, loc)
}

package relay

import (
	"errors"
	"testing"
	"time"
)

func TestCallbackEventValidate(t *testing.T) {
	tests := []struct {
		name      string
		event     CallbackEvent
		wantField string
	}{
		{"valid minimal", CallbackEvent{Caller: "+12025551234"}, ""},
		{"valid formatted number", CallbackEvent{Caller: "(202) 555-1234"}, ""},
		{"valid full", CallbackEvent{
			Caller:       "+12025551234",
			CallbackTime: "2025-06-02T15:00:00Z",
			Email:        "jane@example.com",
			CustomerName: "Jane Smith",
		}, ""},
		{"missing caller", CallbackEvent{}, "caller"},
		{"caller too short", CallbackEvent{Caller: "123"}, "caller"},
		{"caller short after stripping", CallbackEvent{Caller: "+1 (202) 555"}, "caller"},
		{"bad callback time", CallbackEvent{Caller: "+12025551234", CallbackTime: "not-a-datetime"}, "callback_time"},
		{"bad email", CallbackEvent{Caller: "+12025551234", Email: "not-an-email"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate(time.UTC)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid event, got %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if vErr.Field != tt.wantField {
				t.Fatalf("expected field %q, got %q", tt.wantField, vErr.Field)
			}
		})
	}
}

func TestCallbackEventDefaults(t *testing.T) {
	evt := CallbackEvent{Caller: "+12025551234"}
	if got := evt.DisplayName(); got != "Valued Customer" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := evt.SummaryOrDefault(); got != "Appointment scheduled via phone" {
		t.Fatalf("unexpected summary default %q", got)
	}

	evt.CustomerName = "  Jane Smith "
	evt.Summary = "Needs a consultation"
	if got := evt.DisplayName(); got != "Jane Smith" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
	if got := evt.SummaryOrDefault(); got != "Needs a consultation" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestBookingRequestValidate(t *testing.T) {
	valid := BookingRequest{
		Name:          "Jane Smith",
		Phone:         "+12025551234",
		Address:       "123 Main St, Seattle",
		PreferredDate: "2025-06-02",
		PreferredTime: "15:00",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid booking, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*BookingRequest)
		field  string
	}{
		{"missing name", func(b *BookingRequest) { b.Name = "" }, "name"},
		{"missing phone", func(b *BookingRequest) { b.Phone = "" }, "phone"},
		{"short phone", func(b *BookingRequest) { b.Phone = "555-1234" }, "phone"},
		{"missing address", func(b *BookingRequest) { b.Address = "" }, "address"},
		{"bad date", func(b *BookingRequest) { b.PreferredDate = "June 2nd" }, "preferred_date"},
		{"bad time", func(b *BookingRequest) { b.PreferredTime = "3pm" }, "preferred_time"},
		{"bad email", func(b *BookingRequest) { b.Email = "nope" }, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if vErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, vErr.Field)
			}
		})
	}
}

func TestBookingRequestStartTime(t *testing.T) {
	loc, _ := time.LoadLocation("America/Los_Angeles")
	req := BookingRequest{PreferredDate: "2025-06-02", PreferredTime: "15:00"}
	got, err := req.StartTime(loc)
	if err != nil {
		t.Fatalf("start time: %v", err)
	}
	want := time.Date(2025, time.June, 2, 15, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestIntegrationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &IntegrationError{Integration: "calendar", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("expected unwrap to reach inner error")
	}
	if err.Error() != "calendar integration failed: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

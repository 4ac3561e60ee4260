package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Draft is the body of a single create-event call. It never outlives the
// request; once created, the provider is the sole source of truth.
type Draft struct {
	Title         string
	Description   string
	Location      string
	Start         time.Time
	End           time.Time
	Timezone      string
	AttendeeEmail string
}

// CreatedEvent carries the opaque identifier and shareable link the provider
// returns. Both are echoed back to the caller and never re-validated.
type CreatedEvent struct {
	ID       string
	HTMLLink string
}

// AppointmentDraft composes the event for a voice-agent callback appointment:
// fixed duration, detailed description, customer as optional attendee.
func AppointmentDraft(name, phone, email, summary, transcript string, start time.Time, duration time.Duration, timezone string) Draft {
	parts := []string{
		fmt.Sprintf("Customer: %s", name),
		fmt.Sprintf("Phone: %s", phone),
	}
	if email != "" {
		parts = append(parts, fmt.Sprintf("Email: %s", email))
	}
	parts = append(parts, fmt.Sprintf("\nSummary:\n%s", summary))
	if transcript != "" {
		parts = append(parts, fmt.Sprintf("\n\nTranscript:\n%s", transcript))
	}

	return Draft{
		Title:         fmt.Sprintf("Appointment: %s", name),
		Description:   strings.Join(parts, "\n"),
		Start:         start,
		End:           start.Add(duration),
		Timezone:      timezone,
		AttendeeEmail: email,
	}
}

// BookingDraft composes the event for an explicit booking: the visit address
// becomes the location and the notes go into the description.
func BookingDraft(name, phone, email, address, notes string, start time.Time, duration time.Duration, timezone string) Draft {
	displayEmail := email
	if displayEmail == "" {
		displayEmail = "N/A"
	}
	description := fmt.Sprintf(
		"Name: %s\nPhone: %s\nEmail: %s\nNotes: %s\nSource: voice agent booking.",
		name, phone, displayEmail, notes,
	)

	return Draft{
		Title:       fmt.Sprintf("Home Visit - %s", name),
		Description: description,
		Location:    address,
		Start:       start,
		End:         start.Add(duration),
		Timezone:    timezone,
	}
}

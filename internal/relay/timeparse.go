package relay

import (
	"fmt"
	"time"
)

// layouts accepted for callback_time. A trailing "Z" or an explicit offset is
// handled by RFC 3339; bare timestamps are interpreted in the configured zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseCallbackTime parses an ISO 8601 timestamp. Values carrying an offset
// (including the literal "Z" suffix) keep it; values without one are placed in
// loc. "15:00:00Z" and "15:00:00+00:00" yield the same instant.
func ParseCallbackTime(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("relay: unrecognized timestamp %q", value)
}

// FormatLong renders a timestamp the way the SMS and email confirmations
// speak it: weekday, month, day and 12-hour time.
func FormatLong(t time.Time) string {
	return t.Format("Monday, January 02 at 03:04 PM")
}

// FormatDate renders only the date portion for email bodies.
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 02, 2006")
}

// FormatClock renders only the time-of-day portion for email bodies.
func FormatClock(t time.Time) string {
	return t.Format("03:04 PM MST")
}

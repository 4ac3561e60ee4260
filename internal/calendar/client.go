package calendar

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/maxitel/webhook-relay/pkg/logging"
)

// EventCreator requests creation of a single event on the preconfigured
// calendar. Implementations are injected into handlers so tests can
// substitute fakes.
type EventCreator interface {
	CreateEvent(ctx context.Context, draft Draft) (*CreatedEvent, error)
}

// ClientConfig holds Google Calendar credentials. Exactly one of the service
// account sources must be set.
type ClientConfig struct {
	ServiceAccountJSONB64 string
	ServiceAccountFile    string
	CalendarID            string
}

// Client creates events through the Google Calendar API using a service
// account.
type Client struct {
	svc        *calendar.Service
	calendarID string
	logger     *logging.Logger
}

// NewClient builds the calendar service from inline base64 JSON or a
// credentials file path.
func NewClient(ctx context.Context, cfg ClientConfig, logger *logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var credsJSON []byte
	switch {
	case cfg.ServiceAccountJSONB64 != "":
		decoded, err := base64.StdEncoding.DecodeString(cfg.ServiceAccountJSONB64)
		if err != nil {
			return nil, fmt.Errorf("calendar: decode service account JSON: %w", err)
		}
		credsJSON = decoded
	case cfg.ServiceAccountFile != "":
		raw, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("calendar: read service account file: %w", err)
		}
		credsJSON = raw
	default:
		return nil, errors.New("calendar: service account credentials not configured")
	}

	svc, err := calendar.NewService(ctx,
		option.WithCredentialsJSON(credsJSON),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: build service: %w", err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &Client{svc: svc, calendarID: calendarID, logger: logger}, nil
}

var _ EventCreator = (*Client)(nil)

// CreateEvent inserts a single event and returns its id and shareable link.
func (c *Client) CreateEvent(ctx context.Context, draft Draft) (*CreatedEvent, error) {
	event := &calendar.Event{
		Summary:     draft.Title,
		Description: draft.Description,
		Location:    draft.Location,
		Start: &calendar.EventDateTime{
			DateTime: draft.Start.Format(time.RFC3339),
			TimeZone: draft.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: draft.End.Format(time.RFC3339),
			TimeZone: draft.Timezone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
	if draft.AttendeeEmail != "" {
		event.Attendees = []*calendar.EventAttendee{{Email: draft.AttendeeEmail}}
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			c.logger.Error("calendar API error", "status", apiErr.Code, "message", apiErr.Message)
			return nil, fmt.Errorf("calendar: insert event: status %d: %s", apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("calendar: insert event: %w", err)
	}

	c.logger.Info("calendar event created", "event_id", created.Id, "link", created.HtmlLink)
	return &CreatedEvent{ID: created.Id, HTMLLink: created.HtmlLink}, nil
}

package calendar

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"frontdesk/internal/config"
	"frontdesk/internal/intake"
	"frontdesk/internal/observability"
)

// maxTranscriptChars bounds the transcript portion of the event
// description so a long call cannot blow past the provider's field limit.
const maxTranscriptChars = 4000

// Event identifies a created calendar event.
type Event struct {
	ID   string
	Link string
}

// Adapter books appointments on a Google Calendar using service-account
// credentials.
type Adapter struct {
	service    *gcal.Service
	calendarID string
	duration   time.Duration
	location   *time.Location
	logger     *observability.Logger
}

// New decodes the base64 service-account JSON, builds an authenticated
// calendar service and returns the adapter. The credentials being present
// is the caller's responsibility; New fails on malformed ones.
func New(ctx context.Context, cfg config.Google, duration time.Duration, location *time.Location, logger *observability.Logger) (*Adapter, error) {
	decoded, err := base64.StdEncoding.DecodeString(cfg.ServiceAccountB64)
	if err != nil {
		return nil, fmt.Errorf("decode service account credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(decoded, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Adapter{
		service:    service,
		calendarID: cfg.CalendarID,
		duration:   duration,
		location:   location,
		logger:     logger,
	}, nil
}

// CreateEvent books a single appointment window starting at the intent's
// scheduled time. The customer email, when present, is invited and
// notified; the event is still created without it.
func (a *Adapter) CreateEvent(ctx context.Context, intent intake.Intent) (Event, error) {
	start := intent.ScheduledAt
	end := start.Add(a.duration)

	event := &gcal.Event{
		Summary:     "Appointment: " + intent.CustomerName,
		Description: BuildDescription(intent),
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: a.location.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: a.location.String(),
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
	if intent.CustomerEmail != "" {
		event.Attendees = []*gcal.EventAttendee{{Email: intent.CustomerEmail}}
	}

	created, err := a.service.Events.Insert(a.calendarID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return Event{}, fmt.Errorf("insert calendar event: %w", err)
	}

	a.logger.Info("calendar event created", "event_id", created.Id, "link", created.HtmlLink)
	return Event{ID: created.Id, Link: created.HtmlLink}, nil
}

// BuildDescription renders the event body in a fixed field order so the
// same intent always produces the same description.
func BuildDescription(intent intake.Intent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n", intent.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", intent.CallerPhone)
	if intent.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", intent.CustomerEmail)
	}
	fmt.Fprintf(&b, "Intent: %s\n", intent.IntentLabel)
	fmt.Fprintf(&b, "\nSummary:\n%s", intent.Summary)
	if intent.Transcript != "" {
		fmt.Fprintf(&b, "\n\nTranscript:\n%s", truncate(intent.Transcript, maxTranscriptChars))
	}
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

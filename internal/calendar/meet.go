// Package calendar creates video-meeting links for appointments. Failures
// never abort the booking flow: callers always get a usable link, tagged as
// degraded when it is the fixed placeholder instead of a real meeting.
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/aarogyahealth/triage-platform/pkg/logging"
)

// Link is the tagged result of a meeting-link request. Degraded carries the
// reason the external integration could not produce a real link.
type Link struct {
	URL      string
	Degraded bool
	Reason   string
}

// Meeting describes the event to create.
type Meeting struct {
	Summary      string
	Description  string
	Start        time.Time
	Duration     time.Duration
	DoctorEmail  string
	PatientEmail string
	TimeZone     string
}

// Scheduler produces a meeting link for a proposed appointment.
type Scheduler interface {
	CreateMeeting(ctx context.Context, m Meeting) Link
}

// GoogleScheduler books a Google Calendar event with a Meet conference and
// returns its join link.
type GoogleScheduler struct {
	events     *gcal.EventsService
	calendarID string
	fallback   string
	logger     *logging.Logger
}

// NewGoogleScheduler builds a scheduler from a service-account credentials
// file. calendarID defaults to "primary".
func NewGoogleScheduler(ctx context.Context, credentialsFile, calendarID, fallbackLink string, logger *logging.Logger) (*GoogleScheduler, error) {
	if strings.TrimSpace(credentialsFile) == "" {
		return nil, fmt.Errorf("calendar: credentials file required")
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if logger == nil {
		logger = logging.Default()
	}
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: create service: %w", err)
	}
	return &GoogleScheduler{
		events:     svc.Events,
		calendarID: calendarID,
		fallback:   fallbackLink,
		logger:     logger,
	}, nil
}

// CreateMeeting inserts the event with a Meet conference attached. Any
// failure degrades to the fallback link.
func (s *GoogleScheduler) CreateMeeting(ctx context.Context, m Meeting) Link {
	if m.Duration <= 0 {
		m.Duration = 30 * time.Minute
	}
	tz := m.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	event := &gcal.Event{
		Summary:     m.Summary,
		Description: m.Description,
		Start:       &gcal.EventDateTime{DateTime: m.Start.Format(time.RFC3339), TimeZone: tz},
		End:         &gcal.EventDateTime{DateTime: m.Start.Add(m.Duration).Format(time.RFC3339), TimeZone: tz},
		Attendees: []*gcal.EventAttendee{
			{Email: m.DoctorEmail},
			{Email: m.PatientEmail},
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             fmt.Sprintf("meet-%d", m.Start.Unix()),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	created, err := s.events.Insert(s.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Error("calendar event creation failed", "error", err)
		return Link{URL: s.fallback, Degraded: true, Reason: err.Error()}
	}
	if created.HangoutLink == "" {
		s.logger.Warn("calendar event created without a meet link", "event_id", created.Id)
		return Link{URL: s.fallback, Degraded: true, Reason: "event created without a conference link"}
	}

	s.logger.Info("calendar event created", "event_id", created.Id, "link", created.HangoutLink)
	return Link{URL: created.HangoutLink}
}

// StaticScheduler stands in when the calendar integration is unavailable.
// Every link it returns is degraded by definition.
type StaticScheduler struct {
	link string
}

// NewStaticScheduler returns a scheduler that always hands out link.
func NewStaticScheduler(link string) *StaticScheduler {
	return &StaticScheduler{link: link}
}

// CreateMeeting returns the placeholder link.
func (s *StaticScheduler) CreateMeeting(ctx context.Context, m Meeting) Link {
	return Link{URL: s.link, Degraded: true, Reason: "calendar integration unavailable"}
}

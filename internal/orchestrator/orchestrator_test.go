package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/calendar"
	"frontdesk/internal/intake"
	"frontdesk/internal/observability"
)

type fakeCalendar struct {
	event calendar.Event
	err   error
	calls atomic.Int32
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, intent intake.Intent) (calendar.Event, error) {
	f.calls.Add(1)
	return f.event, f.err
}

type fakeSMS struct {
	sid   string
	err   error
	calls atomic.Int32
}

func (f *fakeSMS) SendConfirmation(ctx context.Context, intent intake.Intent) (string, error) {
	f.calls.Add(1)
	return f.sid, f.err
}

type fakeMail struct {
	err      error
	calls    atomic.Int32
	lastLink string
}

func (f *fakeMail) SendConfirmation(ctx context.Context, intent intake.Intent, calendarLink string) error {
	f.calls.Add(1)
	f.lastLink = calendarLink
	return f.err
}

func testIntent(email string) intake.Intent {
	return intake.Intent{
		CallerPhone:   "+14155550123",
		CustomerName:  "Jane Smith",
		Summary:       "Consultation",
		IntentLabel:   "appointment",
		ScheduledAt:   time.Date(2025, time.December, 8, 15, 0, 0, 0, time.UTC),
		CustomerEmail: email,
	}
}

func newOrchestrator(cal CalendarService, smsSvc SMSService, mailSvc MailService) *Orchestrator {
	return New(cal, smsSvc, mailSvc, time.Second, observability.Nop(), observability.NewMetrics())
}

func TestProcessAllChannelsSucceed(t *testing.T) {
	cal := &fakeCalendar{event: calendar.Event{ID: "evt_123", Link: "https://calendar.google.com/event?eid=abc"}}
	smsSvc := &fakeSMS{sid: "SM123"}
	mailSvc := &fakeMail{}

	result := newOrchestrator(cal, smsSvc, mailSvc).Process(context.Background(), testIntent("a@b.com"))

	for name, outcome := range map[string]ChannelOutcome{
		ChannelCalendar: result.Calendar,
		ChannelSMS:      result.SMS,
		ChannelEmail:    result.Email,
	} {
		assert.True(t, outcome.Attempted, "%s attempted", name)
		assert.True(t, outcome.Succeeded, "%s succeeded", name)
		assert.Empty(t, outcome.Error, "%s error", name)
	}

	assert.Equal(t, "evt_123", result.EventID)
	assert.Equal(t, "https://calendar.google.com/event?eid=abc", result.EventLink)
	assert.Equal(t, result.EventLink, mailSvc.lastLink)
}

func TestProcessCalendarFailureDoesNotShortCircuit(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("calendar unavailable")}
	smsSvc := &fakeSMS{sid: "SM123"}
	mailSvc := &fakeMail{}

	result := newOrchestrator(cal, smsSvc, mailSvc).Process(context.Background(), testIntent("a@b.com"))

	require.True(t, result.Calendar.Attempted)
	assert.False(t, result.Calendar.Succeeded)
	assert.Contains(t, result.Calendar.Error, "calendar unavailable")

	assert.True(t, result.SMS.Succeeded)
	assert.True(t, result.Email.Succeeded)
	assert.Equal(t, int32(1), smsSvc.calls.Load())
	assert.Equal(t, int32(1), mailSvc.calls.Load())

	// The email went out without a calendar link.
	assert.Empty(t, mailSvc.lastLink)
	assert.Empty(t, result.EventLink)
}

func TestProcessUnconfiguredChannelsAreSkippedNotFailed(t *testing.T) {
	result := newOrchestrator(nil, nil, nil).Process(context.Background(), testIntent("a@b.com"))

	for name, outcome := range map[string]ChannelOutcome{
		ChannelCalendar: result.Calendar,
		ChannelSMS:      result.SMS,
		ChannelEmail:    result.Email,
	} {
		assert.False(t, outcome.Attempted, "%s attempted", name)
		assert.False(t, outcome.Succeeded, "%s succeeded", name)
		assert.Empty(t, outcome.Error, "%s must not report an error", name)
	}
}

func TestProcessSkipsEmailWithoutCustomerAddress(t *testing.T) {
	cal := &fakeCalendar{event: calendar.Event{ID: "evt_123", Link: "link"}}
	smsSvc := &fakeSMS{sid: "SM123"}
	mailSvc := &fakeMail{}

	result := newOrchestrator(cal, smsSvc, mailSvc).Process(context.Background(), testIntent(""))

	assert.False(t, result.Email.Attempted)
	assert.Empty(t, result.Email.Error)
	assert.Equal(t, int32(0), mailSvc.calls.Load())

	assert.True(t, result.Calendar.Succeeded)
	assert.True(t, result.SMS.Succeeded)
}

func TestProcessIndependentFailuresAreAllReported(t *testing.T) {
	cal := &fakeCalendar{err: errors.New("calendar boom")}
	smsSvc := &fakeSMS{err: errors.New("sms boom")}
	mailSvc := &fakeMail{err: errors.New("mail boom")}

	result := newOrchestrator(cal, smsSvc, mailSvc).Process(context.Background(), testIntent("a@b.com"))

	assert.Contains(t, result.Calendar.Error, "calendar boom")
	assert.Contains(t, result.SMS.Error, "sms boom")
	assert.Contains(t, result.Email.Error, "mail boom")
	for _, outcome := range []ChannelOutcome{result.Calendar, result.SMS, result.Email} {
		assert.True(t, outcome.Attempted)
		assert.False(t, outcome.Succeeded)
	}
}

func TestProcessRecordsSuccessDetail(t *testing.T) {
	cal := &fakeCalendar{event: calendar.Event{ID: "evt_123", Link: "link"}}
	smsSvc := &fakeSMS{sid: "SM999"}

	result := newOrchestrator(cal, smsSvc, nil).Process(context.Background(), testIntent(""))

	assert.Equal(t, "evt_123", result.Calendar.Detail)
	assert.Equal(t, "SM999", result.SMS.Detail)
}

package orchestrator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"frontdesk/internal/calendar"
	"frontdesk/internal/intake"
	"frontdesk/internal/observability"
)

// CalendarService books an appointment and returns the created event.
type CalendarService interface {
	CreateEvent(ctx context.Context, intent intake.Intent) (calendar.Event, error)
}

// SMSService dispatches the text confirmation and returns the provider
// message identifier.
type SMSService interface {
	SendConfirmation(ctx context.Context, intent intake.Intent) (string, error)
}

// MailService dispatches the email confirmation, embedding the calendar
// link when one is available.
type MailService interface {
	SendConfirmation(ctx context.Context, intent intake.Intent, calendarLink string) error
}

// Orchestrator fans a validated intent out to the three channels. A nil
// service means the channel is unconfigured and its outcome is reported
// as skipped, never as a failure. No adapter error escapes Process.
type Orchestrator struct {
	calendar CalendarService
	sms      SMSService
	mail     MailService

	timeout time.Duration
	logger  *observability.Logger
	metrics *observability.Metrics
}

// New wires the collaborators. Each external call is bounded by timeout
// and gets exactly one attempt.
func New(calendarSvc CalendarService, smsSvc SMSService, mailSvc MailService, timeout time.Duration, logger *observability.Logger, metrics *observability.Metrics) *Orchestrator {
	return &Orchestrator{
		calendar: calendarSvc,
		sms:      smsSvc,
		mail:     mailSvc,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

// Process attempts calendar and SMS concurrently, then email once the
// calendar attempt has resolved so the event link can ride along. A
// failure in any channel never blocks or masks the others.
func (o *Orchestrator) Process(ctx context.Context, intent intake.Intent) Result {
	result := Result{Intent: intent}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		result.SMS = o.attemptSMS(groupCtx, intent)
		return nil
	})

	result.Calendar, result.EventID, result.EventLink = o.attemptCalendar(ctx, intent)
	result.Email = o.attemptEmail(ctx, intent, result.EventLink)

	_ = group.Wait()

	o.record(ChannelCalendar, result.Calendar)
	o.record(ChannelSMS, result.SMS)
	o.record(ChannelEmail, result.Email)
	return result
}

func (o *Orchestrator) attemptCalendar(ctx context.Context, intent intake.Intent) (ChannelOutcome, string, string) {
	if o.calendar == nil {
		return skipped("calendar not configured"), "", ""
	}

	callCtx, cancel := o.withTimeout(ctx)
	defer cancel()

	event, err := o.calendar.CreateEvent(callCtx, intent)
	if err != nil {
		o.logger.Warn("calendar booking failed", "error", err)
		return failed(err), "", ""
	}
	return succeeded(event.ID), event.ID, event.Link
}

func (o *Orchestrator) attemptSMS(ctx context.Context, intent intake.Intent) ChannelOutcome {
	if o.sms == nil {
		return skipped("sms not configured")
	}

	callCtx, cancel := o.withTimeout(ctx)
	defer cancel()

	sid, err := o.sms.SendConfirmation(callCtx, intent)
	if err != nil {
		o.logger.Warn("sms confirmation failed", "to", intent.CallerPhone, "error", err)
		return failed(err)
	}
	return succeeded(sid)
}

func (o *Orchestrator) attemptEmail(ctx context.Context, intent intake.Intent, calendarLink string) ChannelOutcome {
	if intent.CustomerEmail == "" {
		return skipped("no customer email provided")
	}
	if o.mail == nil {
		return skipped("email not configured")
	}

	callCtx, cancel := o.withTimeout(ctx)
	defer cancel()

	if err := o.mail.SendConfirmation(callCtx, intent, calendarLink); err != nil {
		o.logger.Warn("email confirmation failed", "to", intent.CustomerEmail, "error", err)
		return failed(err)
	}
	return succeeded(intent.CustomerEmail)
}

func (o *Orchestrator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

func (o *Orchestrator) record(channel string, outcome ChannelOutcome) {
	switch {
	case !outcome.Attempted:
		o.metrics.RecordChannelOutcome(channel, "skipped")
	case outcome.Succeeded:
		o.metrics.RecordChannelOutcome(channel, "succeeded")
	default:
		o.metrics.RecordChannelOutcome(channel, "failed")
	}
}

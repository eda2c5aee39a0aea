package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"frontdesk/internal/config"
	"frontdesk/internal/intake"
	"frontdesk/internal/observability"
)

// Adapter sends the SMS confirmation through Twilio.
type Adapter struct {
	client   *twilio.RestClient
	from     string
	location *time.Location
	logger   *observability.Logger
}

// New builds a Twilio client bound to the configured sender number.
// Calls are bounded by timeout; there is no retry.
func New(cfg config.Twilio, timeout time.Duration, location *time.Location, logger *observability.Logger) *Adapter {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	client.Client.SetTimeout(timeout)

	return &Adapter{
		client:   client,
		from:     cfg.FromNumber,
		location: location,
		logger:   logger,
	}
}

// SendConfirmation dispatches the confirmation text to the caller's number
// and returns the provider message SID.
func (a *Adapter) SendConfirmation(ctx context.Context, intent intake.Intent) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(intent.CallerPhone)
	params.SetFrom(a.from)
	params.SetBody(FormatMessage(intent, a.location))

	message, err := a.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("send sms: %w", err)
	}

	sid := ""
	if message.Sid != nil {
		sid = *message.Sid
	}
	a.logger.Info("sms confirmation sent", "to", intent.CallerPhone, "sid", sid)
	return sid, nil
}

// FormatMessage renders the confirmation text. The appointment time is
// shown in the business display timezone regardless of the offset the
// payload carried.
func FormatMessage(intent intake.Intent, location *time.Location) string {
	when := intent.ScheduledAt.In(location).Format("Monday, January 2 at 3:04 PM")
	return fmt.Sprintf(`Hi %s!

Your appointment has been confirmed for %s.

Details: %s

Reply CONFIRM to acknowledge or call us if you need to reschedule.

- Maxi Team`, intent.CustomerName, when, intent.Summary)
}

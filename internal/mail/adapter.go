package mail

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"frontdesk/internal/config"
	"frontdesk/internal/intake"
	"frontdesk/internal/observability"
)

// Adapter sends the multipart confirmation email over SMTP with STARTTLS.
type Adapter struct {
	dialer   *gomail.Dialer
	from     string
	location *time.Location
	logger   *observability.Logger
}

// New builds the SMTP dialer from the configured credentials.
func New(cfg config.SMTP, location *time.Location, logger *observability.Logger) *Adapter {
	return &Adapter{
		dialer:   gomail.NewDialer(cfg.Server, cfg.Port, cfg.From, cfg.Password),
		from:     cfg.From,
		location: location,
		logger:   logger,
	}
}

// SendConfirmation dispatches the HTML+plain-text confirmation to the
// customer email. calendarLink may be empty, in which case the message
// simply omits the calendar button.
func (a *Adapter) SendConfirmation(ctx context.Context, intent intake.Intent, calendarLink string) error {
	text, html, err := RenderBodies(intent, calendarLink, a.location)
	if err != nil {
		return fmt.Errorf("render email bodies: %w", err)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", a.from)
	message.SetHeader("To", intent.CustomerEmail)
	message.SetHeader("Subject", "Appointment Confirmation - "+intent.CustomerName)
	message.SetBody("text/plain", text)
	message.AddAlternative("text/html", html)

	// gomail has no context support; run the dial in a goroutine so the
	// per-channel deadline still bounds the attempt.
	done := make(chan error, 1)
	go func() {
		done <- a.dialer.DialAndSend(message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("send email: %w", ctx.Err())
	}

	a.logger.Info("email confirmation sent", "to", intent.CustomerEmail)
	return nil
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontdesk/internal/calendar"
	"frontdesk/internal/config"
	"frontdesk/internal/mail"
	"frontdesk/internal/observability"
	"frontdesk/internal/orchestrator"
	"frontdesk/internal/server"
	"frontdesk/internal/sms"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
	})
	logger.Info("starting frontdesk webhook handler",
		"environment", settings.Environment,
		"timezone", settings.Timezone,
		"port", settings.Port,
	)

	// Channel configuration state is logged exactly once here, never per
	// request.
	if settings.WebhookSecret == "" {
		logger.Warn("WEBHOOK_SECRET not configured - webhook endpoint is unauthenticated")
	}
	if !settings.CalendarConfigured() {
		logger.Warn("Google Calendar credentials not configured - calendar bookings disabled")
	}
	if !settings.SMSConfigured() {
		logger.Warn("Twilio credentials not configured - SMS notifications disabled")
	}
	if !settings.EmailConfigured() {
		logger.Warn("email credentials not configured - email notifications disabled")
	}

	ctx := context.Background()

	var calendarSvc orchestrator.CalendarService
	if settings.CalendarConfigured() {
		adapter, err := calendar.New(ctx, settings.Google, settings.AppointmentDuration, settings.Location, logger.With("component", "calendar"))
		if err != nil {
			logger.Error("failed to initialize calendar adapter", "error", err)
		} else {
			calendarSvc = adapter
		}
	}

	var smsSvc orchestrator.SMSService
	if settings.SMSConfigured() {
		smsSvc = sms.New(settings.Twilio, settings.RequestTimeout, settings.Location, logger.With("component", "sms"))
	}

	var mailSvc orchestrator.MailService
	if settings.EmailConfigured() {
		mailSvc = mail.New(settings.SMTP, settings.Location, logger.With("component", "mail"))
	}

	metrics := observability.NewMetrics()
	orch := orchestrator.New(calendarSvc, smsSvc, mailSvc, settings.RequestTimeout, logger.With("component", "orchestrator"), metrics)

	srv := server.New(settings, orch, logger.With("component", "http"), metrics)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	logger.Info("server stopped")
}

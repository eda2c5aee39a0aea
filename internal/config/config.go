package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when the environment leaves a knob unset.
const (
	DefaultPort               = "8080"
	DefaultTimezone           = "America/New_York"
	DefaultSMTPServer         = "smtp.gmail.com"
	DefaultSMTPPort           = 587
	DefaultCalendarID         = "primary"
	DefaultDurationMinutes    = 30
	DefaultRequestTimeoutSecs = 15
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultEnvironment        = "development"
)

// Google holds the service-account credentials for the calendar collaborator.
type Google struct {
	ServiceAccountB64 string
	CalendarID        string
}

// Twilio holds the SMS collaborator credentials.
type Twilio struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// SMTP holds the email collaborator credentials.
type SMTP struct {
	From     string
	Password string
	Server   string
	Port     int
}

// Settings is the immutable process configuration, loaded once at startup
// and passed by reference into the collaborators that need it.
type Settings struct {
	Environment    string
	Port           string
	WebhookSecret  string
	AgentID        string
	AllowedOrigins []string

	Timezone            string
	Location            *time.Location
	AppointmentDuration time.Duration
	RequestTimeout      time.Duration

	LogLevel  string
	LogFormat string

	Google Google
	Twilio Twilio
	SMTP   SMTP
}

// Load reads process configuration from the environment, layering a local
// .env file (when present) under real environment variables.
func Load() (*Settings, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", DefaultEnvironment)
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("TIMEZONE", DefaultTimezone)
	v.SetDefault("GOOGLE_CALENDAR_ID", DefaultCalendarID)
	v.SetDefault("SMTP_SERVER", DefaultSMTPServer)
	v.SetDefault("SMTP_PORT", DefaultSMTPPort)
	v.SetDefault("APPOINTMENT_DURATION_MINUTES", DefaultDurationMinutes)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", DefaultRequestTimeoutSecs)
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("LOG_FORMAT", DefaultLogFormat)

	tz := strings.TrimSpace(v.GetString("TIMEZONE"))
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	duration := v.GetInt("APPOINTMENT_DURATION_MINUTES")
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}
	timeout := v.GetInt("REQUEST_TIMEOUT_SECONDS")
	if timeout <= 0 {
		timeout = DefaultRequestTimeoutSecs
	}

	settings := &Settings{
		Environment:    v.GetString("ENVIRONMENT"),
		Port:           v.GetString("PORT"),
		WebhookSecret:  strings.TrimSpace(v.GetString("WEBHOOK_SECRET")),
		AgentID:        strings.TrimSpace(v.GetString("AGENT_ID")),
		AllowedOrigins: splitOrigins(v.GetString("ALLOWED_ORIGINS")),

		Timezone:            tz,
		Location:            loc,
		AppointmentDuration: time.Duration(duration) * time.Minute,
		RequestTimeout:      time.Duration(timeout) * time.Second,

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		Google: Google{
			ServiceAccountB64: strings.TrimSpace(v.GetString("GOOGLE_SERVICE_ACCOUNT_JSON_B64")),
			CalendarID:        v.GetString("GOOGLE_CALENDAR_ID"),
		},
		Twilio: Twilio{
			AccountSID: strings.TrimSpace(v.GetString("TWILIO_SID")),
			AuthToken:  strings.TrimSpace(v.GetString("TWILIO_AUTH")),
			FromNumber: strings.TrimSpace(v.GetString("TWILIO_NUMBER")),
		},
		SMTP: SMTP{
			From:     strings.TrimSpace(v.GetString("EMAIL_FROM")),
			Password: v.GetString("EMAIL_PASSWORD"),
			Server:   v.GetString("SMTP_SERVER"),
			Port:     v.GetInt("SMTP_PORT"),
		},
	}

	return settings, nil
}

// CalendarConfigured reports whether the calendar collaborator has credentials.
func (s *Settings) CalendarConfigured() bool {
	return s.Google.ServiceAccountB64 != ""
}

// SMSConfigured reports whether the SMS collaborator has credentials.
func (s *Settings) SMSConfigured() bool {
	return s.Twilio.AccountSID != "" && s.Twilio.AuthToken != "" && s.Twilio.FromNumber != ""
}

// EmailConfigured reports whether the email collaborator has credentials.
func (s *Settings) EmailConfigured() bool {
	return s.SMTP.From != "" && s.SMTP.Password != ""
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

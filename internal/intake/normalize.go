package intake

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

const (
	minPhoneDigits = 10

	// Placeholders applied when the voice agent did not extract a value.
	DefaultCustomerName = "Valued Customer"
	DefaultSummary      = "Appointment scheduled via phone"
	DefaultIntentLabel  = "appointment"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Layouts accepted for callback_time. The offset-less forms are interpreted
// in the configured business timezone, not UTC.
var (
	offsetLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
)

// Normalize validates a raw payload and canonicalizes it into an Intent.
// Fields are checked in a fixed order and only the first failure is
// reported. A failed phone or timestamp aborts processing; every other
// field falls back to a placeholder.
func Normalize(p Payload, defaultLocation *time.Location) (Intent, error) {
	phone := strings.TrimSpace(p.Caller)
	if phone == "" {
		return Intent{}, &ValidationError{Field: "caller_phone", Reason: "caller phone number is required"}
	}
	if countDigits(phone) < minPhoneDigits {
		return Intent{}, &ValidationError{Field: "caller_phone", Reason: "phone number must contain at least 10 digits"}
	}

	scheduledAt, err := parseCallbackTime(p.CallbackTime, defaultLocation)
	if err != nil {
		return Intent{}, &ValidationError{Field: "callback_time", Reason: "must be a valid ISO 8601 datetime"}
	}

	email := strings.TrimSpace(p.Email)
	if email != "" && !emailPattern.MatchString(email) {
		return Intent{}, &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}

	name := strings.TrimSpace(p.CustomerName)
	if name == "" {
		name = DefaultCustomerName
	}
	summary := strings.TrimSpace(p.Summary)
	if summary == "" {
		summary = DefaultSummary
	}
	label := strings.TrimSpace(p.Intent)
	if label == "" {
		label = DefaultIntentLabel
	}

	return Intent{
		CallerPhone:   phone,
		CustomerName:  name,
		Summary:       summary,
		Transcript:    p.Transcript,
		IntentLabel:   label,
		ScheduledAt:   scheduledAt,
		CustomerEmail: email,
	}, nil
}

// parseCallbackTime accepts ISO 8601 with or without a UTC offset. A value
// carrying an offset keeps it; one without is interpreted in loc.
func parseCallbackTime(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, &ValidationError{Field: "callback_time", Reason: "callback time is required"}
	}

	var lastErr error
	for _, layout := range offsetLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

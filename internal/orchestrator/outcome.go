package orchestrator

import "frontdesk/internal/intake"

// Channel names used in logs, metrics and the response body.
const (
	ChannelCalendar = "calendar"
	ChannelSMS      = "sms"
	ChannelEmail    = "email"
)

// ChannelOutcome records one side-effect attempt. Attempted=false means
// the channel was deliberately skipped (unconfigured service or missing
// optional input) and is distinct from a failed attempt.
type ChannelOutcome struct {
	Attempted bool   `json:"attempted"`
	Succeeded bool   `json:"succeeded"`
	Detail    string `json:"detail,omitempty"`
	Error     string `json:"error,omitempty"`
}

func skipped(detail string) ChannelOutcome {
	return ChannelOutcome{Attempted: false, Detail: detail}
}

func failed(err error) ChannelOutcome {
	return ChannelOutcome{Attempted: true, Error: err.Error()}
}

func succeeded(detail string) ChannelOutcome {
	return ChannelOutcome{Attempted: true, Succeeded: true, Detail: detail}
}

// Result aggregates the three channel outcomes for one processed intent.
// It lives for a single request and is discarded once serialized.
type Result struct {
	Intent intake.Intent

	Calendar ChannelOutcome
	SMS      ChannelOutcome
	Email    ChannelOutcome

	EventID   string
	EventLink string
}

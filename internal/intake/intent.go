package intake

import (
	"fmt"
	"time"
)

// Payload is the raw webhook body sent by the voice platform after a call
// ends. Only caller and callback_time are required; everything else
// degrades to a placeholder.
type Payload struct {
	Caller       string `json:"caller"`
	CustomerName string `json:"customer_name"`
	Summary      string `json:"summary"`
	Transcript   string `json:"transcript"`
	Intent       string `json:"intent"`
	CallbackTime string `json:"callback_time"`
	Email        string `json:"email"`
}

// Intent is the normalized appointment extracted from a webhook payload.
// It is immutable once built; adapters only read from it.
type Intent struct {
	CallerPhone   string
	CustomerName  string
	Summary       string
	Transcript    string
	IntentLabel   string
	ScheduledAt   time.Time
	CustomerEmail string
}

// ValidationError names the first payload field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

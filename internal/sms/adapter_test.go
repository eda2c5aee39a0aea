package sms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/intake"
)

func TestFormatMessageRendersDisplayTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 15:00 Pacific is 18:00 Eastern; the message shows Eastern.
	scheduled, err := time.Parse(time.RFC3339, "2025-12-08T15:00:00-08:00")
	require.NoError(t, err)

	message := FormatMessage(intake.Intent{
		CustomerName: "Jane Smith",
		Summary:      "Consultation about premium package",
		ScheduledAt:  scheduled,
	}, loc)

	assert.Contains(t, message, "Hi Jane Smith!")
	assert.Contains(t, message, "Monday, December 8 at 6:00 PM")
	assert.Contains(t, message, "Details: Consultation about premium package")
	assert.Contains(t, message, "Reply CONFIRM")
}

func TestFormatMessageIsDeterministic(t *testing.T) {
	loc := time.UTC
	intent := intake.Intent{
		CustomerName: "Valued Customer",
		Summary:      intake.DefaultSummary,
		ScheduledAt:  time.Date(2025, time.December, 9, 14, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, FormatMessage(intent, loc), FormatMessage(intent, loc))
}

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/intake"
	"frontdesk/internal/observability"
	"frontdesk/internal/orchestrator"
)

// webhookResponse is the aggregate body returned for every processed
// intent. Per-channel failure is reported here, never via the status code.
type webhookResponse struct {
	Status          string                                 `json:"status"`
	Message         string                                 `json:"message"`
	Data            webhookData                            `json:"data"`
	Channels        map[string]orchestrator.ChannelOutcome `json:"channels"`
	Customer        customerInfo                           `json:"customer"`
	AppointmentTime string                                 `json:"appointment_time"`
}

type webhookData struct {
	CalendarCreated bool   `json:"calendar_created"`
	SMSSent         bool   `json:"sms_sent"`
	EmailSent       bool   `json:"email_sent"`
	CalendarEventID string `json:"calendar_event_id,omitempty"`
	CalendarLink    string `json:"calendar_link,omitempty"`
}

type customerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// WebhookHandler turns a voice-agent webhook into the three side effects.
type WebhookHandler struct {
	orchestrator *orchestrator.Orchestrator
	location     *time.Location
	logger       *observability.Logger
}

// NewWebhookHandler wires the intake location and the orchestrator.
func NewWebhookHandler(orch *orchestrator.Orchestrator, location *time.Location, logger *observability.Logger) *WebhookHandler {
	return &WebhookHandler{orchestrator: orch, location: location, logger: logger}
}

// Handle validates the payload, fans out the side effects and reports the
// per-channel outcomes. Only validation failures produce a non-200 here;
// authentication is handled by the SharedSecret middleware upstream.
func (h *WebhookHandler) Handle(c *gin.Context) {
	var payload intake.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("malformed webhook body", "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "request body must be valid JSON",
		})
		return
	}

	intent, err := intake.Normalize(payload, h.location)
	if err != nil {
		var validationErr *intake.ValidationError
		message := err.Error()
		if errors.As(err, &validationErr) {
			h.logger.Warn("webhook payload rejected", "field", validationErr.Field, "reason", validationErr.Reason)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": message,
		})
		return
	}

	result := h.orchestrator.Process(c.Request.Context(), intent)

	c.JSON(http.StatusOK, webhookResponse{
		Status:  "success",
		Message: "Appointment processed successfully",
		Data: webhookData{
			CalendarCreated: result.Calendar.Succeeded,
			SMSSent:         result.SMS.Succeeded,
			EmailSent:       result.Email.Succeeded,
			CalendarEventID: result.EventID,
			CalendarLink:    result.EventLink,
		},
		Channels: map[string]orchestrator.ChannelOutcome{
			orchestrator.ChannelCalendar: result.Calendar,
			orchestrator.ChannelSMS:      result.SMS,
			orchestrator.ChannelEmail:    result.Email,
		},
		Customer: customerInfo{
			Name:  intent.CustomerName,
			Phone: intent.CallerPhone,
			Email: intent.CustomerEmail,
		},
		AppointmentTime: intent.ScheduledAt.Format(time.RFC3339),
	})
}

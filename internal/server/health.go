package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/config"
)

const (
	serviceName    = "Maxi Telephony Webhook Handler"
	serviceVersion = "1.0.0"
)

// HealthHandler reports the static configuration state of each
// collaborator. It reads settings, not live provider health.
type HealthHandler struct {
	settings *config.Settings
}

// NewHealthHandler wires the settings snapshot.
func NewHealthHandler(settings *config.Settings) *HealthHandler {
	return &HealthHandler{settings: settings}
}

// HandleRoot serves the service banner.
func (h *HealthHandler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "operational",
		"endpoints": gin.H{
			"health":  "/health",
			"webhook": "/webhook",
			"call":    "/call",
			"metrics": "/metrics",
		},
	})
}

// HandleHealth reports healthy when every collaborator is configured,
// degraded otherwise.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	services := gin.H{
		"google_calendar": h.settings.CalendarConfigured(),
		"twilio_sms":      h.settings.SMSConfigured(),
		"email":           h.settings.EmailConfigured(),
	}

	status := "healthy"
	if !h.settings.CalendarConfigured() || !h.settings.SMSConfigured() || !h.settings.EmailConfigured() {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services":  services,
	})
}

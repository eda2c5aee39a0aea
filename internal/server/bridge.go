package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk/internal/observability"
)

// BridgeHandler answers the telephony platform's inbound-call webhook with
// the fixed-shape streaming-bridge response pointing at the configured
// voice agent. Pure templating, no orchestration.
type BridgeHandler struct {
	agentID string
	logger  *observability.Logger
}

// NewBridgeHandler wires the agent identifier from configuration.
func NewBridgeHandler(agentID string, logger *observability.Logger) *BridgeHandler {
	return &BridgeHandler{agentID: agentID, logger: logger}
}

// Handle accepts caller/callee/call_id form fields and returns the bridge
// body. Without a configured agent there is nothing to bridge to.
func (h *BridgeHandler) Handle(c *gin.Context) {
	if h.agentID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "no voice agent configured",
		})
		return
	}

	caller := c.PostForm("caller")
	callee := c.PostForm("callee")
	callID := c.PostForm("call_id")

	h.logger.Info("bridging inbound call", "caller", caller, "call_id", callID)

	c.JSON(http.StatusOK, gin.H{
		"type":     "websocket",
		"agent_id": h.agentID,
		"call": gin.H{
			"caller":  caller,
			"callee":  callee,
			"call_id": callID,
		},
	})
}

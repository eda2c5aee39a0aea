package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"frontdesk/internal/observability"
)

const requestIDKey = "request_id"

// RequestID tags every request with a unique identifier, echoed back in
// the X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs one line per finished request.
func RequestLogger(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", float64(time.Since(start).Microseconds())/1000.0,
			"request_id", c.GetString(requestIDKey),
			"client_ip", c.ClientIP(),
		)
	}
}

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// SharedSecret gates a route behind the configured webhook secret. The
// candidate is read from the X-Webhook-Secret header first, then the
// secret query parameter. An empty configured secret admits everything;
// that insecure mode is warned about once at startup, not here.
func SharedSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		candidate := strings.TrimSpace(c.GetHeader("X-Webhook-Secret"))
		if candidate == "" {
			candidate = strings.TrimSpace(c.Query("secret"))
		}

		if subtle.ConstantTimeCompare([]byte(candidate), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "invalid or missing webhook secret",
			})
			return
		}
		c.Next()
	}
}

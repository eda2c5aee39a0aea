package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/config"
)

func getPath(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestHealthDegradedWhenNothingConfigured(t *testing.T) {
	srv := newTestServer(t, testSettings(t), nil, nil, nil)

	rec := getPath(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])

	services := body["services"].(map[string]any)
	assert.Equal(t, false, services["google_calendar"])
	assert.Equal(t, false, services["twilio_sms"])
	assert.Equal(t, false, services["email"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthHealthyWhenAllConfigured(t *testing.T) {
	settings := testSettings(t)
	settings.Google = config.Google{ServiceAccountB64: "e30=", CalendarID: "primary"}
	settings.Twilio = config.Twilio{AccountSID: "AC123", AuthToken: "token", FromNumber: "+15550001111"}
	settings.SMTP = config.SMTP{From: "noreply@example.com", Password: "pw", Server: "smtp.example.com", Port: 587}
	srv := newTestServer(t, settings, nil, nil, nil)

	rec := getPath(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRootBanner(t *testing.T) {
	srv := newTestServer(t, testSettings(t), nil, nil, nil)

	rec := getPath(t, srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "operational", body["status"])
	endpoints := body["endpoints"].(map[string]any)
	assert.Equal(t, "/webhook", endpoints["webhook"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, testSettings(t), nil, nil, nil)

	rec := getPath(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	srv := newTestServer(t, testSettings(t), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	// A generated id is returned when the caller did not send one.
	rec = getPath(t, srv, "/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

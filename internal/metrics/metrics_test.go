package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDispatch(t *testing.T) {
	m := New("portal")

	m.ObserveDispatch("sms", "OTP", "delivered", 120*time.Millisecond)
	m.ObserveDispatch("sms", "OTP", "delivered", 80*time.Millisecond)
	m.ObserveDispatch("push", "OTP", "rejected", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.dispatches.WithLabelValues("sms", "OTP", "delivered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("push", "OTP", "rejected")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("/health", "GET", 200, time.Millisecond)
		m.ObserveDispatch("sms", "OTP", "delivered", time.Millisecond)
		m.AuditFailed()
		m.ObserveRelay("success")
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New("portal")
	m.ObserveHTTP("/api/logs", "GET", 200, 5*time.Millisecond)
	m.AuditFailed()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `portal_http_requests_total{method="GET",route="/api/logs",status="200"} 1`)
	assert.Contains(t, body, "portal_audit_append_failures_total 1")
	assert.Contains(t, body, "go_goroutines")
}

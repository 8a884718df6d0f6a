package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
	"github.com/khatabook/number-change-portal/internal/auditlog"
	"github.com/khatabook/number-change-portal/internal/db/memdb"
	"github.com/khatabook/number-change-portal/internal/dispatch"
	"github.com/khatabook/number-change-portal/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vendorStub struct {
	status int
	body   string
	calls  atomic.Int32
}

func newVendorStub(t *testing.T, status int, body string) (*vendorStub, *httptest.Server) {
	t.Helper()
	vs := &vendorStub{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vs.calls.Add(1)
		w.WriteHeader(vs.status)
		_, _ = w.Write([]byte(vs.body))
	}))
	t.Cleanup(srv.Close)
	return vs, srv
}

func vendorConfig(base string) gateway.Config {
	cfg := gateway.DefaultConfig()
	cfg.Push.URL = base + "/push"
	cfg.SMS.URL = base + "/sms"
	cfg.WhatsApp.URL = base + "/wa"
	return cfg
}

func setupDispatchRouter(t *testing.T, vendor *httptest.Server) (*gin.Engine, *auditlog.Service) {
	t.Helper()
	logs := auditlog.NewService(memdb.New())
	sender := gateway.NewDispatcher(vendorConfig(vendor.URL), vendor.Client())
	h := NewDispatchHandler(dispatch.NewService(sender, logs, nil))

	r := gin.New()
	r.Use(withActor("AG001", "Asha Rao"))
	r.POST("/api/send-push-notification", h.Send(gateway.KindPushOTP))
	r.POST("/api/send-sms", h.Send(gateway.KindSMSOTP))
	r.POST("/api/send-whatsapp", h.Send(gateway.KindWhatsAppOTP))
	r.POST("/api/send-whatsapp-form", h.Send(gateway.KindWhatsAppForm))
	r.POST("/api/send-sms-form", h.Send(gateway.KindSMSForm))
	return r, logs
}

func listLogs(t *testing.T, logs *auditlog.Service) []auditlog.Entry {
	t.Helper()
	entries, err := logs.List(context.Background(), auditlog.Filter{})
	require.NoError(t, err)
	return entries
}

func TestSendSMSSuccess(t *testing.T) {
	vs, srv := newVendorStub(t, http.StatusOK, `{"response":{"id":"4512","status":"success","details":""}}`)
	r, logs := setupDispatchRouter(t, srv)

	w := doJSON(t, r, http.MethodPost, "/api/send-sms", dto.DispatchRequest{
		CustomerID: "CUST-1",
		OldPhone:   "+91 98765 43210",
		OTP:        "4821",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.DispatchResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "SMS sent successfully", resp.Message)
	assert.Equal(t, "9876543210", resp.PhoneNumber)
	assert.Equal(t, "4512", resp.MessageID)
	assert.NotNil(t, resp.Data)
	assert.EqualValues(t, 1, vs.calls.Load())

	entries := listLogs(t, logs)
	require.Len(t, entries, 1)
	assert.Equal(t, "sms", entries[0].Channel)
	assert.Equal(t, "OTP", entries[0].MessageType)
	assert.Equal(t, "success", entries[0].Status)
	assert.Equal(t, "4821", entries[0].OTP)
	assert.Equal(t, "AG001", entries[0].AgentID)
}

func TestSendInvalidInputMakesNoCall(t *testing.T) {
	vs, srv := newVendorStub(t, http.StatusOK, `{}`)
	r, logs := setupDispatchRouter(t, srv)

	tests := []struct {
		name string
		path string
		body dto.DispatchRequest
		want string
	}{
		{"bad phone", "/api/send-sms", dto.DispatchRequest{OldPhone: "98765", OTP: "4821"},
			`{"error":"Invalid phone number format. Please enter a 10-digit number without +91 prefix"}`},
		{"missing otp", "/api/send-whatsapp", dto.DispatchRequest{OldPhone: "9876543210"},
			`{"error":"Phone number and OTP are required"}`},
		{"missing customer", "/api/send-push-notification", dto.DispatchRequest{OTP: "4821"},
			`{"error":"Customer ID and OTP are required"}`},
		{"missing new phone", "/api/send-sms-form", dto.DispatchRequest{OldPhone: "9876543210"},
			`{"error":"New phone number is required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}

	assert.Zero(t, vs.calls.Load())
	assert.Empty(t, listLogs(t, logs))
}

func TestSendInvalidVendorResponse(t *testing.T) {
	_, srv := newVendorStub(t, http.StatusBadGateway, "<html>bad gateway</html>")
	r, logs := setupDispatchRouter(t, srv)

	w := doJSON(t, r, http.MethodPost, "/api/send-whatsapp", dto.DispatchRequest{OldPhone: "9876543210", OTP: "4821"})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[dto.DispatchResponse](t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid response from WhatsApp API", resp.Message)
	assert.Equal(t, "Response is not valid JSON", resp.Error)
	assert.Equal(t, "<html>bad gateway</html>", resp.RawResponse)
	assert.Equal(t, http.StatusBadGateway, resp.Status)

	entries := listLogs(t, logs)
	require.Len(t, entries, 1)
	assert.Equal(t, "failed", entries[0].Status)
}

func TestSendPushRejected(t *testing.T) {
	_, srv := newVendorStub(t, http.StatusUnauthorized, `{"status":"fail","error":"Invalid credentials"}`)
	r, logs := setupDispatchRouter(t, srv)

	w := doJSON(t, r, http.MethodPost, "/api/send-push-notification", dto.DispatchRequest{CustomerID: "CUST-1", OTP: "4821"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decode[dto.DispatchResponse](t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to send push notification", resp.Message)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, map[string]any{"status": "fail", "error": "Invalid credentials"}, resp.Error)

	entries := listLogs(t, logs)
	require.Len(t, entries, 1)
	assert.Equal(t, "push", entries[0].Channel)
	assert.Equal(t, "failed", entries[0].Status)
}

func TestSendWhatsAppFormRejected(t *testing.T) {
	_, srv := newVendorStub(t, http.StatusOK, `{"response":{"status":"error","details":"Invalid number"}}`)
	r, logs := setupDispatchRouter(t, srv)

	w := doJSON(t, r, http.MethodPost, "/api/send-whatsapp-form", dto.DispatchRequest{
		OldPhone: "9876543210",
		NewPhone: "9123456780",
		Language: "hindi",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[dto.DispatchResponse](t, w)
	assert.Equal(t, "Failed to send WhatsApp form message", resp.Message)
	assert.Equal(t, "Invalid number", resp.Error)
	assert.Equal(t, "9123456780", resp.PhoneNumber)
	assert.Equal(t, "hindi", resp.Language)

	entries := listLogs(t, logs)
	require.Len(t, entries, 1)
	assert.Equal(t, "Form", entries[0].MessageType)
	assert.Equal(t, "hindi", entries[0].Language)
	assert.Equal(t, "N/A", entries[0].OTP)
}

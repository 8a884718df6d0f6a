package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/khatabook/number-change-portal/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVendor struct {
	status int
	body   string
	delay  time.Duration
	calls  atomic.Int32
	last   atomic.Pointer[http.Request]
}

func newFakeVendor(t *testing.T, status int, body string, delay time.Duration) (*fakeVendor, *httptest.Server) {
	t.Helper()
	fv := &fakeVendor{status: status, body: body, delay: delay}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fv.calls.Add(1)
		fv.last.Store(r.Clone(context.Background()))
		if fv.delay > 0 {
			select {
			case <-time.After(fv.delay):
			case <-r.Context().Done():
				return
			}
		}
		w.WriteHeader(fv.status)
		_, _ = w.Write([]byte(fv.body))
	}))
	t.Cleanup(srv.Close)
	return fv, srv
}

func TestDispatchSMSSuccess(t *testing.T) {
	fv, srv := newFakeVendor(t, http.StatusOK, `{"response":{"id":"4512","phone":"919876543210","details":"","status":"success"}}`, 0)
	d := NewDispatcher(testConfig(srv.URL), srv.Client())

	res := d.Dispatch(context.Background(), KindSMSOTP, Request{Phone: "+91 98765 43210", OTP: "4821"})

	assert.True(t, res.Success)
	assert.Equal(t, OutcomeDelivered, res.Outcome)
	assert.Equal(t, "SMS sent successfully", res.Message)
	assert.Equal(t, "4512", res.MessageID)
	assert.Equal(t, "9876543210", res.Phone)
	assert.Equal(t, http.StatusOK, res.HTTPStatus)
	assert.NotNil(t, res.Payload)
	assert.EqualValues(t, 1, fv.calls.Load())
	assert.Equal(t, "/sms", fv.last.Load().URL.Path)
}

func TestDispatchVendorRejection(t *testing.T) {
	_, srv := newFakeVendor(t, http.StatusOK, `{"response":{"status":"error","details":"bad template"}}`, 0)
	d := NewDispatcher(testConfig(srv.URL), srv.Client())

	res := d.Dispatch(context.Background(), KindWhatsAppOTP, Request{Phone: "9876543210", OTP: "4821"})

	assert.False(t, res.Success)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, "Failed to send WhatsApp message", res.Message)
	assert.Equal(t, "bad template", res.Error)
	assert.Equal(t, http.StatusBadRequest, res.HTTPStatus)
}

func TestDispatchNonJSONBody(t *testing.T) {
	_, srv := newFakeVendor(t, http.StatusBadGateway, "<html>gateway down</html>", 0)
	d := NewDispatcher(testConfig(srv.URL), srv.Client())

	res := d.Dispatch(context.Background(), KindSMSForm, Request{Phone: "9876543210", Language: LanguageHindi})

	assert.False(t, res.Success)
	assert.Equal(t, OutcomeInvalid, res.Outcome)
	assert.Equal(t, "Invalid response from SMS Form API", res.Message)
	assert.Equal(t, "Response is not valid JSON", res.Error)
	assert.Equal(t, "<html>gateway down</html>", res.Raw)
	assert.Equal(t, http.StatusBadGateway, res.VendorStatus)
	assert.Equal(t, http.StatusInternalServerError, res.HTTPStatus)
	assert.Equal(t, LanguageHindi, res.Language)

	var invalid *InvalidVendorResponseError
	require.ErrorAs(t, res.Cause, &invalid)
	assert.Equal(t, "<html>gateway down</html>", invalid.Raw)
	assert.Equal(t, http.StatusBadGateway, invalid.Status)
}

func TestDispatchUnexpectedShape(t *testing.T) {
	_, srv := newFakeVendor(t, http.StatusOK, `{"status":"success"}`, 0)
	d := NewDispatcher(testConfig(srv.URL), srv.Client())

	res := d.Dispatch(context.Background(), KindWhatsAppForm, Request{Phone: "9876543210"})

	assert.False(t, res.Success)
	assert.Equal(t, OutcomeUnexpected, res.Outcome)
	assert.Equal(t, "Unexpected response from WhatsApp Form API", res.Message)
	assert.Equal(t, http.StatusInternalServerError, res.HTTPStatus)
	assert.Equal(t, LanguageEnglish, res.Language)
}

func TestDispatchPush(t *testing.T) {
	t.Run("2xx is delivered", func(t *testing.T) {
		fv, srv := newFakeVendor(t, http.StatusOK, `{"status":"success","message":"Added to queue"}`, 0)
		d := NewDispatcher(testConfig(srv.URL), srv.Client())

		res := d.Dispatch(context.Background(), KindPushOTP, Request{CustomerID: "CUST-1", OTP: "4821"})

		assert.True(t, res.Success)
		assert.Equal(t, "Push notification sent successfully", res.Message)
		assert.Equal(t, http.MethodPost, fv.last.Load().Method)
		assert.Equal(t, "acct", fv.last.Load().Header.Get("X-CleverTap-Account-Id"))
	})

	t.Run("non-2xx echoes vendor status", func(t *testing.T) {
		_, srv := newFakeVendor(t, http.StatusUnauthorized, `{"status":"fail","error":"Invalid credentials"}`, 0)
		d := NewDispatcher(testConfig(srv.URL), srv.Client())

		res := d.Dispatch(context.Background(), KindPushOTP, Request{CustomerID: "CUST-1", OTP: "4821"})

		assert.False(t, res.Success)
		assert.Equal(t, OutcomeRejected, res.Outcome)
		assert.Equal(t, "Failed to send push notification", res.Message)
		assert.Equal(t, http.StatusUnauthorized, res.HTTPStatus)
		assert.Equal(t, map[string]any{"status": "fail", "error": "Invalid credentials"}, res.Error)
	})
}

func TestDispatchTimeout(t *testing.T) {
	_, srv := newFakeVendor(t, http.StatusOK, `{}`, 5*time.Second)
	cfg := testConfig(srv.URL)
	cfg.Timeout = 100 * time.Millisecond
	d := NewDispatcher(cfg, srv.Client())

	start := time.Now()
	res := d.Dispatch(context.Background(), KindSMSOTP, Request{Phone: "9876543210", OTP: "4821"})

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.False(t, res.Success)
	assert.Equal(t, OutcomeTransport, res.Outcome)
	assert.Equal(t, "Internal server error", res.Message)
	assert.Equal(t, upstream.CodeTimeout, res.ErrorCode)
	assert.Equal(t, http.StatusInternalServerError, res.HTTPStatus)
}

func TestDispatchIgnoresCallerCancellation(t *testing.T) {
	_, srv := newFakeVendor(t, http.StatusOK, `{"response":{"status":"success","id":"1"}}`, 100*time.Millisecond)
	d := NewDispatcher(testConfig(srv.URL), srv.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := d.Dispatch(ctx, KindSMSOTP, Request{Phone: "9876543210", OTP: "4821"})
	assert.True(t, res.Success)
}

func TestDispatchInvalidPhoneMakesNoCall(t *testing.T) {
	fv, srv := newFakeVendor(t, http.StatusOK, `{"response":{"status":"success"}}`, 0)
	d := NewDispatcher(testConfig(srv.URL), srv.Client())

	res := d.Dispatch(context.Background(), KindSMSOTP, Request{Phone: "12345", OTP: "4821"})

	assert.False(t, res.Attempted())
	assert.Equal(t, OutcomeInvalidInput, res.Outcome)
	assert.ErrorIs(t, res.Cause, ErrInvalidPhone)
	assert.Equal(t, http.StatusBadRequest, res.HTTPStatus)
	assert.Zero(t, fv.calls.Load())
}

func TestDispatchConnectionRefused(t *testing.T) {
	_, srv := newFakeVendor(t, http.StatusOK, `{}`, 0)
	cfg := testConfig(srv.URL)
	srv.Close()

	res := NewDispatcher(cfg, nil).Dispatch(context.Background(), KindWhatsAppOTP, Request{Phone: "9876543210", OTP: "1"})

	assert.Equal(t, OutcomeTransport, res.Outcome)
	assert.Equal(t, upstream.CodeConnectionRefused, res.ErrorCode)
}

func TestDispatchOversizeBody(t *testing.T) {
	fv, srv := newFakeVendor(t, http.StatusOK, `{"response":"`+strings.Repeat("x", maxBodySize)+`"}`, 0)
	d := NewDispatcher(testConfig(srv.URL), srv.Client())

	res := d.Dispatch(context.Background(), KindSMSOTP, Request{Phone: "9876543210", OTP: "4821"})

	assert.False(t, res.Success)
	assert.Equal(t, OutcomeTransport, res.Outcome)
	assert.Equal(t, upstream.CodeBodyTooLarge, res.ErrorCode)
	assert.Equal(t, http.StatusInternalServerError, res.HTTPStatus)
	assert.EqualValues(t, 1, fv.calls.Load())
}

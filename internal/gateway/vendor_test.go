package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(base string) Config {
	cfg := DefaultConfig()
	cfg.Push.URL = base + "/1/send/externaltrigger.json"
	cfg.Push.AccountID = "acct"
	cfg.Push.Passcode = "pass"
	cfg.SMS.URL = base + "/sms"
	cfg.SMS.UserID = "sms-user"
	cfg.SMS.Password = "sms-pass"
	cfg.WhatsApp.URL = base + "/wa"
	cfg.WhatsApp.UserID = "wa-user"
	cfg.WhatsApp.Password = "wa-pass"
	return cfg
}

func build(t *testing.T, kind Kind, req Request) *http.Request {
	t.Helper()
	spec, req, err := Prepare(kind, req)
	require.NoError(t, err)
	httpReq, err := spec.build(context.Background(), testConfig("http://vendor.test"), req)
	require.NoError(t, err)
	return httpReq
}

func TestBuildPush(t *testing.T) {
	req := build(t, KindPushOTP, Request{CustomerID: "CUST-1", OTP: "4821"})

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "http://vendor.test/1/send/externaltrigger.json", req.URL.String())
	assert.Equal(t, "acct", req.Header.Get("X-CleverTap-Account-Id"))
	assert.Equal(t, "pass", req.Header.Get("X-CleverTap-Passcode"))

	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":{"identity":["CUST-1"]},"campaign_id":"1750575722","ExternalTrigger":{"OTP":"4821"}}`, string(raw))
}

func TestBuildSMSOTP(t *testing.T) {
	req := build(t, KindSMSOTP, Request{Phone: "+91 98765 43210", OTP: "4821"})

	assert.Equal(t, http.MethodGet, req.Method)
	q := req.URL.Query()
	assert.Equal(t, "sms-user", q.Get("userid"))
	assert.Equal(t, "sms-pass", q.Get("password"))
	assert.Equal(t, "919876543210", q.Get("send_to"))
	assert.Equal(t, "Your Khatabook verification OTP is 4821", q.Get("msg"))
	assert.Equal(t, "SendMessage", q.Get("method"))
	assert.Equal(t, "JSON", q.Get("format"))
	assert.Equal(t, "1.1", q.Get("v"))
	assert.Equal(t, "Plain", q.Get("auth_scheme"))
	assert.Equal(t, "Text", q.Get("msg_type"))
	assert.Equal(t, "1601100000000000654", q.Get("principalEntityId"))
	assert.Equal(t, "1007194642344586649", q.Get("dltTemplateId"))
}

func TestBuildWhatsAppOTP(t *testing.T) {
	req := build(t, KindWhatsAppOTP, Request{Phone: "9876543210", OTP: "4821"})

	q := req.URL.Query()
	assert.Equal(t, "9876543210", q.Get("send_to"))
	assert.Equal(t, "4821 is your verification code.", q.Get("msg"))
	assert.Equal(t, "SENDMESSAGE", q.Get("method"))
	assert.Equal(t, "TEXT", q.Get("msg_type"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "true", q.Get("isTemplate"))
	assert.Equal(t, "This code expires in 10 minute.", q.Get("footer"))
}

func TestBuildWhatsAppFormHindiIsPercentEncoded(t *testing.T) {
	req := build(t, KindWhatsAppForm, Request{Phone: "9876543210", Language: LanguageHindi})

	assert.Contains(t, req.URL.RawQuery, "msg=%E0%A4%B9%E0%A4%AE%E0%A5%87%E0%A4%82+%E0%A4%86%E0%A4%AA%E0%A4%95%E0%A4%BE+Khatabook+")
	assert.Contains(t, req.URL.RawQuery, "%E0%A5%A4%0A%0A%E0%A4%95%E0%A5%83%E0%A4%AA%E0%A4%AF%E0%A4%BE")
	assert.Empty(t, req.URL.Query().Get("footer"))
	assert.Equal(t, whatsAppForms[LanguageHindi], req.URL.Query().Get("msg"))
}

func TestBuildWhatsAppFormDefaultsToEnglish(t *testing.T) {
	req := build(t, KindWhatsAppForm, Request{Phone: "9876543210"})

	assert.Contains(t, req.URL.RawQuery,
		"msg=We+have+recieved+your+request+to+change+your+registered+Khatabook+Phone+Number%0A%0APlease+click")
}

func TestBuildSMSFormEmbedsLanguageLink(t *testing.T) {
	hindi := build(t, KindSMSForm, Request{Phone: "9876543210", Language: LanguageHindi})
	english := build(t, KindSMSForm, Request{Phone: "9876543210", Language: LanguageEnglish})

	assert.True(t, strings.HasSuffix(hindi.URL.Query().Get("msg"), "https://forms.gle/RxSM1cFmpqJ5E5dp9"))
	assert.True(t, strings.HasSuffix(english.URL.Query().Get("msg"), "https://forms.gle/kXKU5HCtrjKDYZPH9"))
	assert.Equal(t, "1007657052465213311", english.URL.Query().Get("dltTemplateId"))
	assert.Equal(t, "919876543210", english.URL.Query().Get("send_to"))
}

func TestPrepareRejects(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		req  Request
		want string
	}{
		{"push without otp", KindPushOTP, Request{CustomerID: "C1"}, "Customer ID and OTP are required"},
		{"sms without phone", KindSMSOTP, Request{OTP: "1"}, "Phone number and OTP are required"},
		{"whatsapp without otp", KindWhatsAppOTP, Request{Phone: "9876543210"}, "Phone number and OTP are required"},
		{"form without phone", KindWhatsAppForm, Request{}, "New phone number is required"},
		{"short phone", KindSMSForm, Request{Phone: "12345"}, ErrInvalidPhone.Message},
		{"unknown language", KindSMSForm, Request{Phone: "9876543210", Language: "tamil"}, ErrInvalidLanguage.Message},
		{"unknown kind", Kind("fax"), Request{}, ErrUnknownKind.Message},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Prepare(tt.kind, tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Message)
		})
	}
}

func TestInterpretGupshup(t *testing.T) {
	decode := func(s string) any {
		var v any
		require.NoError(t, json.Unmarshal([]byte(s), &v))
		return v
	}

	v := interpretGupshup(200, decode(`{"response":{"status":"success","id":"X"}}`))
	assert.Equal(t, OutcomeDelivered, v.outcome)
	assert.Equal(t, "X", v.messageID)

	v = interpretGupshup(200, decode(`{"response":{"status":"error","details":"bad template"}}`))
	assert.Equal(t, OutcomeRejected, v.outcome)
	assert.Equal(t, "bad template", v.errText)
	assert.Equal(t, http.StatusBadRequest, v.httpStatus)

	v = interpretGupshup(200, decode(`{"response":{"status":"error"}}`))
	assert.Equal(t, "error", v.errText)

	v = interpretGupshup(200, decode(`{"response":{}}`))
	assert.Equal(t, "Unknown error", v.errText)

	v = interpretGupshup(200, decode(`{"status":"success"}`))
	assert.Equal(t, OutcomeUnexpected, v.outcome)
	assert.Equal(t, http.StatusInternalServerError, v.httpStatus)

	v = interpretGupshup(200, decode(`[1,2]`))
	assert.Equal(t, OutcomeUnexpected, v.outcome)
}

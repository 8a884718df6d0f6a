package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type Kind string

const (
	KindPushOTP      Kind = "push-otp"
	KindSMSOTP       Kind = "sms-otp"
	KindWhatsAppOTP  Kind = "whatsapp-otp"
	KindWhatsAppForm Kind = "whatsapp-form"
	KindSMSForm      Kind = "sms-form"
)

const (
	ChannelPush     = "push"
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"

	MessageTypeOTP  = "OTP"
	MessageTypeForm = "Form"

	LanguageEnglish = "english"
	LanguageHindi   = "hindi"
)

var whatsAppForms = map[string]string{
	LanguageEnglish: "We have recieved your request to change your registered Khatabook Phone Number\n\n" +
		"Please click on the link below to proceed with the process",
	LanguageHindi: "हमें आपका Khatabook मोबाइल नंबर बदलने का रिक्वेस्ट मिला है।\n\n" +
		"कृपया प्रोसेस शुरू करने के लिए नीचे दिए लिंक पर क्लिक करें।",
}

const smsFormText = "We have received your request to update your Khatabook phone number. " +
	"Click the link to complete the process: "

// Request is the channel-independent input of a dispatch. Phone is the
// recipient: the old number for OTP kinds and the new number for forms.
type Request struct {
	CustomerID string
	Phone      string
	OTP        string
	Language   string
}

// verdict is the vendor-specific reading of a parsed response body.
type verdict struct {
	outcome    Outcome
	httpStatus int
	errText    any
	messageID  string
}

// VendorSpec describes one (channel, purpose) pair: how to validate and
// build its request and how to read the vendor's answer.
type VendorSpec struct {
	Kind           Kind
	Channel        string
	MessageType    string
	// Label names the vendor API in caller-facing messages.
	Label          string
	SuccessMessage string
	FailureMessage string

	missing      string
	required     func(Request) bool
	normalizeNum bool
	localized    bool
	build        func(ctx context.Context, cfg Config, req Request) (*http.Request, error)
	interpret    func(status int, data any) verdict
}

var specs = map[Kind]VendorSpec{
	KindPushOTP: {
		Kind:           KindPushOTP,
		Channel:        ChannelPush,
		MessageType:    MessageTypeOTP,
		Label:          "CleverTap API",
		SuccessMessage: "Push notification sent successfully",
		FailureMessage: "Failed to send push notification",
		missing:        "Customer ID and OTP are required",
		required:       func(r Request) bool { return r.CustomerID != "" && r.OTP != "" },
		build:          buildPush,
		interpret:      interpretPush,
	},
	KindSMSOTP: {
		Kind:           KindSMSOTP,
		Channel:        ChannelSMS,
		MessageType:    MessageTypeOTP,
		Label:          "SMS API",
		SuccessMessage: "SMS sent successfully",
		FailureMessage: "Failed to send SMS",
		missing:        "Phone number and OTP are required",
		required:       func(r Request) bool { return r.Phone != "" && r.OTP != "" },
		normalizeNum:   true,
		build: func(ctx context.Context, cfg Config, r Request) (*http.Request, error) {
			return buildSMS(ctx, cfg.SMS, r.Phone, "Your Khatabook verification OTP is "+r.OTP, cfg.SMS.OTPTemplateID)
		},
		interpret: interpretGupshup,
	},
	KindWhatsAppOTP: {
		Kind:           KindWhatsAppOTP,
		Channel:        ChannelWhatsApp,
		MessageType:    MessageTypeOTP,
		Label:          "WhatsApp API",
		SuccessMessage: "WhatsApp message sent successfully",
		FailureMessage: "Failed to send WhatsApp message",
		missing:        "Phone number and OTP are required",
		required:       func(r Request) bool { return r.Phone != "" && r.OTP != "" },
		normalizeNum:   true,
		build: func(ctx context.Context, cfg Config, r Request) (*http.Request, error) {
			return buildWhatsApp(ctx, cfg.WhatsApp, r.Phone, r.OTP+" is your verification code.", "This code expires in 10 minute.")
		},
		interpret: interpretGupshup,
	},
	KindWhatsAppForm: {
		Kind:           KindWhatsAppForm,
		Channel:        ChannelWhatsApp,
		MessageType:    MessageTypeForm,
		Label:          "WhatsApp Form API",
		SuccessMessage: "WhatsApp form message sent successfully",
		FailureMessage: "Failed to send WhatsApp form message",
		missing:        "New phone number is required",
		required:       func(r Request) bool { return r.Phone != "" },
		normalizeNum:   true,
		localized:      true,
		build: func(ctx context.Context, cfg Config, r Request) (*http.Request, error) {
			return buildWhatsApp(ctx, cfg.WhatsApp, r.Phone, whatsAppForms[r.Language], "")
		},
		interpret: interpretGupshup,
	},
	KindSMSForm: {
		Kind:           KindSMSForm,
		Channel:        ChannelSMS,
		MessageType:    MessageTypeForm,
		Label:          "SMS Form API",
		SuccessMessage: "SMS form message sent successfully",
		FailureMessage: "Failed to send SMS form message",
		missing:        "New phone number is required",
		required:       func(r Request) bool { return r.Phone != "" },
		normalizeNum:   true,
		localized:      true,
		build: func(ctx context.Context, cfg Config, r Request) (*http.Request, error) {
			link := cfg.SMS.FormLinks[r.Language]
			if link == "" {
				return nil, fmt.Errorf("no form link configured for language %q", r.Language)
			}
			return buildSMS(ctx, cfg.SMS, r.Phone, smsFormText+link, cfg.SMS.FormTemplateID)
		},
		interpret: interpretGupshup,
	},
}

// Lookup returns the spec registered for kind.
func Lookup(kind Kind) (VendorSpec, bool) {
	spec, ok := specs[kind]
	return spec, ok
}

func buildPush(ctx context.Context, cfg Config, r Request) (*http.Request, error) {
	body, err := json.Marshal(map[string]any{
		"to":              map[string]any{"identity": []string{r.CustomerID}},
		"campaign_id":     cfg.Push.CampaignID,
		"ExternalTrigger": map[string]any{"OTP": r.OTP},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Push.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-CleverTap-Account-Id", cfg.Push.AccountID)
	req.Header.Set("X-CleverTap-Passcode", cfg.Push.Passcode)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func buildSMS(ctx context.Context, cfg SMSConfig, phone, msg, templateID string) (*http.Request, error) {
	q := url.Values{}
	q.Set("userid", cfg.UserID)
	q.Set("password", cfg.Password)
	q.Set("send_to", "91"+phone)
	q.Set("msg", msg)
	q.Set("method", "SendMessage")
	q.Set("format", "JSON")
	q.Set("v", "1.1")
	q.Set("auth_scheme", "Plain")
	q.Set("msg_type", "Text")
	q.Set("principalEntityId", cfg.PrincipalEntityID)
	q.Set("dltTemplateId", templateID)
	return newGet(ctx, cfg.URL, q)
}

func buildWhatsApp(ctx context.Context, cfg WhatsAppConfig, phone, msg, footer string) (*http.Request, error) {
	q := url.Values{}
	q.Set("userid", cfg.UserID)
	q.Set("password", cfg.Password)
	q.Set("send_to", phone)
	q.Set("v", "1.1")
	q.Set("format", "json")
	q.Set("msg_type", "TEXT")
	q.Set("method", "SENDMESSAGE")
	q.Set("msg", msg)
	q.Set("isTemplate", "true")
	if footer != "" {
		q.Set("footer", footer)
	}
	return newGet(ctx, cfg.URL, q)
}

func newGet(ctx context.Context, base string, q url.Values) (*http.Request, error) {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+sep+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// interpretPush treats any 2xx as delivered and echoes the vendor status
// and body otherwise.
func interpretPush(status int, data any) verdict {
	if status >= 200 && status < 300 {
		return verdict{outcome: OutcomeDelivered, httpStatus: http.StatusOK}
	}
	return verdict{outcome: OutcomeRejected, httpStatus: status, errText: data}
}

// interpretGupshup reads the nested response.status envelope shared by the
// SMS and WhatsApp gateways.
func interpretGupshup(_ int, data any) verdict {
	obj, _ := data.(map[string]any)
	resp, ok := obj["response"].(map[string]any)
	if !ok {
		return verdict{outcome: OutcomeUnexpected, httpStatus: http.StatusInternalServerError}
	}

	if status, _ := resp["status"].(string); status == "success" {
		return verdict{
			outcome:    OutcomeDelivered,
			httpStatus: http.StatusOK,
			messageID:  stringify(resp["id"]),
		}
	}

	errText := "Unknown error"
	if details := stringify(resp["details"]); details != "" {
		errText = details
	} else if status := stringify(resp["status"]); status != "" {
		errText = status
	}
	return verdict{outcome: OutcomeRejected, httpStatus: http.StatusBadRequest, errText: errText}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/khatabook/number-change-portal/internal/upstream"
)

type Outcome string

const (
	OutcomeDelivered    Outcome = "delivered"
	OutcomeRejected     Outcome = "rejected"
	OutcomeUnexpected   Outcome = "unexpected_response"
	OutcomeInvalid      Outcome = "invalid_response"
	OutcomeTransport    Outcome = "transport_error"
	OutcomeInvalidInput Outcome = "invalid_input"
)

const maxBodySize = 1 << 20

// Result is the normalized answer of a dispatch. HTTPStatus is the status
// the API should answer with; VendorStatus is what the vendor returned.
type Result struct {
	Kind         Kind
	Outcome      Outcome
	Success      bool
	Message      string
	Error        any
	Payload      any
	Raw          string
	HTTPStatus   int
	VendorStatus int
	MessageID    string
	Phone        string
	Language     string
	ErrorCode    string
	Duration     time.Duration
	// Cause is set on failures that carry a typed error.
	Cause        error
}

// Attempted reports whether a vendor call was issued.
func (r Result) Attempted() bool {
	return r.Outcome != OutcomeInvalidInput
}

// Dispatcher sends notifications through the vendor table. It never returns
// an error: every failure is folded into the Result.
type Dispatcher struct {
	config Config
	client *http.Client
}

func NewDispatcher(config Config, client *http.Client) *Dispatcher {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Dispatcher{
		config: config,
		client: client,
	}
}

// Prepare validates and normalizes req for kind without calling the vendor.
func Prepare(kind Kind, req Request) (VendorSpec, Request, error) {
	spec, ok := Lookup(kind)
	if !ok {
		return VendorSpec{}, req, ErrUnknownKind
	}
	if !spec.required(req) {
		return spec, req, &ValidationError{Message: spec.missing}
	}

	if spec.normalizeNum {
		phone, err := NormalizePhone(req.Phone)
		if err != nil {
			return spec, req, err
		}
		req.Phone = phone
	}

	if spec.localized {
		if req.Language == "" {
			req.Language = LanguageEnglish
		}
		if req.Language != LanguageEnglish && req.Language != LanguageHindi {
			return spec, req, ErrInvalidLanguage
		}
	} else {
		req.Language = ""
	}
	return spec, req, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, kind Kind, req Request) Result {
	spec, req, err := Prepare(kind, req)
	if err != nil {
		return Result{
			Kind:       kind,
			Outcome:    OutcomeInvalidInput,
			Message:    err.Error(),
			Error:      err.Error(),
			HTTPStatus: http.StatusBadRequest,
			Cause:      err,
		}
	}
	return d.call(ctx, spec, req)
}

// call issues exactly one vendor request. The caller's cancellation is
// detached so an issued call runs to completion or timeout.
func (d *Dispatcher) call(ctx context.Context, spec VendorSpec, req Request) Result {
	start := time.Now()
	result := Result{
		Kind:     spec.Kind,
		Phone:    req.Phone,
		Language: req.Language,
	}
	if spec.Kind == KindPushOTP {
		result.Phone = ""
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.config.Timeout)
	defer cancel()

	httpReq, err := spec.build(callCtx, d.config, req)
	if err != nil {
		slog.Error("Failed to build vendor request", "kind", spec.Kind, "error", err)
		return transportFailure(result, err, start)
	}

	slog.Info("Calling vendor", "kind", spec.Kind, "label", spec.Label, "method", httpReq.Method)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		slog.Error("Vendor call failed", "kind", spec.Kind, "error", err)
		return transportFailure(result, err, start)
	}
	defer resp.Body.Close()

	body, err := upstream.ReadBody(resp.Body, maxBodySize)
	if err != nil {
		slog.Error("Failed to read vendor response", "kind", spec.Kind, "error", err)
		return transportFailure(result, err, start)
	}

	result.VendorStatus = resp.StatusCode
	result.Raw = string(body)
	result.Duration = time.Since(start)

	data, err := decodeJSON(body)
	if err != nil {
		slog.Warn("Vendor response is not JSON", "kind", spec.Kind, "status", resp.StatusCode)
		result.Outcome = OutcomeInvalid
		result.Message = "Invalid response from " + spec.Label
		result.Error = "Response is not valid JSON"
		result.HTTPStatus = http.StatusInternalServerError
		result.Cause = &InvalidVendorResponseError{Status: resp.StatusCode, Raw: string(body)}
		return result
	}
	result.Payload = data

	v := spec.interpret(resp.StatusCode, data)
	result.Outcome = v.outcome
	result.HTTPStatus = v.httpStatus
	result.MessageID = v.messageID

	switch v.outcome {
	case OutcomeDelivered:
		result.Success = true
		result.Message = spec.SuccessMessage
	case OutcomeRejected:
		result.Message = spec.FailureMessage
		result.Error = v.errText
	default:
		result.Message = "Unexpected response from " + spec.Label
	}

	slog.Info("Vendor call completed",
		"kind", spec.Kind,
		"status", resp.StatusCode,
		"outcome", result.Outcome,
		"duration", result.Duration)
	return result
}

func transportFailure(result Result, err error, start time.Time) Result {
	result.Outcome = OutcomeTransport
	result.Message = "Internal server error"
	result.Error = err.Error()
	result.ErrorCode = upstream.Classify(err)
	result.Cause = err
	result.HTTPStatus = http.StatusInternalServerError
	result.Duration = time.Since(start)
	return result
}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return data, nil
}

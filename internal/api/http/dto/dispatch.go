package dto

// DispatchRequest carries the fields every send endpoint accepts. Each
// endpoint requires its own subset.
type DispatchRequest struct {
	CustomerID string `json:"customerId"`
	OldPhone   string `json:"oldPhone"`
	NewPhone   string `json:"newPhone"`
	OTP        string `json:"otp"`
	Language   string `json:"language"`
}

type DispatchResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Data        any    `json:"data,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Language    string `json:"language,omitempty"`
	MessageID   string `json:"messageId,omitempty"`
	Error       any    `json:"error,omitempty"`
	RawResponse string `json:"rawResponse,omitempty"`
	Status      int    `json:"status,omitempty"`
	ErrorCode   string `json:"errorCode,omitempty"`
}

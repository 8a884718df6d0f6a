package dto

import "time"

// CreateLogRequest is a manually submitted entry. Any timestamp sent by the
// client is ignored.
type CreateLogRequest struct {
	CustomerID  string `json:"customerId"`
	OldPhone    string `json:"oldPhone"`
	NewPhone    string `json:"newPhone"`
	OTP         string `json:"otp"`
	Channel     string `json:"channel"`
	MessageType string `json:"messageType"`
	Language    string `json:"language"`
	Status      string `json:"status"`
}

type LogEntryResponse struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	AgentName   string    `json:"agentName"`
	AgentID     string    `json:"agentId"`
	CustomerID  string    `json:"customerId"`
	OldPhone    string    `json:"oldPhone"`
	NewPhone    string    `json:"newPhone"`
	OTP         string    `json:"otp"`
	Channel     string    `json:"channel"`
	MessageType string    `json:"messageType"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
}

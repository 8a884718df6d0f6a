package auditlog

import "time"

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"

	// NotAvailable fills snapshot fields that were empty at dispatch time.
	NotAvailable = "N/A"
)

type Entry struct {
	ID          string
	Timestamp   time.Time
	AgentName   string
	AgentID     string
	CustomerID  string
	OldPhone    string
	NewPhone    string
	OTP         string
	Channel     string
	MessageType string
	Language    string
	Status      string
}

// NewEntry is an entry before the store assigns its id and timestamp.
type NewEntry struct {
	AgentName   string
	AgentID     string
	CustomerID  string
	OldPhone    string
	NewPhone    string
	OTP         string
	Channel     string
	MessageType string
	Language    string
	Status      string
}

// Filter narrows List. Date keeps entries of that UTC calendar day; Search
// matches agent name, agent id, customer id or channel case-insensitively.
type Filter struct {
	Date   *time.Time
	Search string
}

package auditlog

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// LegacyEntry is the record shape of the file-backed logs.json store.
type LegacyEntry struct {
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

// ImportLegacy copies legacy entries, keeping their original timestamps,
// into an empty log. It reports skipped when the log already has entries.
func (s *Service) ImportLegacy(ctx context.Context, legacy []LegacyEntry) (imported int, skipped bool, err error) {
	count, err := s.queries.CountActivityLogs(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to count log entries: %w", err)
	}
	if count > 0 {
		slog.Info("Log entries already exist, skipping import", "existing", count)
		return 0, true, nil
	}

	for i, l := range legacy {
		e := NewEntry{
			AgentName:   l.AgentName,
			AgentID:     l.AgentID,
			CustomerID:  l.CustomerID,
			OldPhone:    l.OldPhone,
			NewPhone:    l.NewPhone,
			OTP:         l.OTP,
			Channel:     l.Channel,
			MessageType: l.MessageType,
			Language:    l.Language,
			Status:      l.Status,
		}
		if err := validate(e); err != nil {
			return imported, false, fmt.Errorf("legacy entry %d: %w", i, err)
		}

		ts := l.Timestamp
		if ts.IsZero() {
			ts = s.now()
		}
		if _, err := s.insert(ctx, e, ts.UTC()); err != nil {
			return imported, false, err
		}
		imported++
	}

	slog.Info("Imported legacy log entries", "count", imported)
	return imported, false, nil
}

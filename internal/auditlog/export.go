package auditlog

import (
	"encoding/csv"
	"io"
	"time"
)

var csvHeader = []string{
	"Timestamp", "Agent Name", "Agent ID", "Customer ID", "Old Phone", "New Phone",
	"OTP", "Channel", "Message Type", "Language", "Status",
}

// WriteCSV writes entries in the column order of the activity log export.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			e.AgentName,
			e.AgentID,
			e.CustomerID,
			e.OldPhone,
			e.NewPhone,
			e.OTP,
			e.Channel,
			e.MessageType,
			e.Language,
			e.Status,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

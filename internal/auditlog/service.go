package auditlog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/khatabook/number-change-portal/internal/db/sqlc"
)

var (
	channels     = []string{"push", "sms", "whatsapp"}
	messageTypes = []string{"OTP", "Form"}
	languages    = []string{"", "english", "hindi"}
	statuses     = []string{StatusSuccess, StatusFailed}
)

// ValidationError lists every invalid field of an entry.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid log entry: " + strings.Join(e.Errors, "; ")
}

// Service appends to and reads the activity log. It exposes no update or
// delete operation.
type Service struct {
	queries sqlc.Querier
	now     func() time.Time
}

func NewService(queries sqlc.Querier) *Service {
	return &Service{
		queries: queries,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Append validates e, fills N/A defaults and stores it with a server
// assigned id and timestamp.
func (s *Service) Append(ctx context.Context, e NewEntry) (*Entry, error) {
	if err := validate(e); err != nil {
		return nil, err
	}
	return s.insert(ctx, e, s.now())
}

func (s *Service) insert(ctx context.Context, e NewEntry, ts time.Time) (*Entry, error) {
	row, err := s.queries.CreateActivityLog(ctx, sqlc.CreateActivityLogParams{
		ID:          pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Timestamp:   pgtype.Timestamptz{Time: ts, Valid: true},
		AgentName:   e.AgentName,
		AgentID:     e.AgentID,
		CustomerID:  orNA(e.CustomerID),
		OldPhone:    orNA(e.OldPhone),
		NewPhone:    orNA(e.NewPhone),
		Otp:         orNA(e.OTP),
		Channel:     e.Channel,
		MessageType: e.MessageType,
		Language:    e.Language,
		Status:      e.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append log entry: %w", err)
	}
	entry := toEntry(row)
	return &entry, nil
}

// List returns entries newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]Entry, error) {
	params := sqlc.ListActivityLogsParams{}
	if f.Date != nil {
		y, m, d := f.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		params.Since = pgtype.Timestamptz{Time: day, Valid: true}
		params.Until = pgtype.Timestamptz{Time: day.AddDate(0, 0, 1), Valid: true}
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		params.Search = pgtype.Text{String: search, Valid: true}
	}

	rows, err := s.queries.ListActivityLogs(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}

	result := make([]Entry, len(rows))
	for i, r := range rows {
		result[i] = toEntry(r)
	}
	return result, nil
}

func validate(e NewEntry) error {
	var errs []string
	if strings.TrimSpace(e.AgentName) == "" {
		errs = append(errs, "agentName is required")
	}
	if strings.TrimSpace(e.AgentID) == "" {
		errs = append(errs, "agentId is required")
	}
	if !slices.Contains(channels, e.Channel) {
		errs = append(errs, "channel must be one of push, sms, whatsapp")
	}
	if !slices.Contains(messageTypes, e.MessageType) {
		errs = append(errs, "messageType must be OTP or Form")
	}
	if !slices.Contains(languages, e.Language) {
		errs = append(errs, "language must be english, hindi or empty")
	}
	if !slices.Contains(statuses, e.Status) {
		errs = append(errs, "status must be success or failed")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func orNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotAvailable
	}
	return v
}

func toEntry(r sqlc.ActivityLog) Entry {
	return Entry{
		ID:          uuid.UUID(r.ID.Bytes).String(),
		Timestamp:   r.Timestamp.Time,
		AgentName:   r.AgentName,
		AgentID:     r.AgentID,
		CustomerID:  r.CustomerID,
		OldPhone:    r.OldPhone,
		NewPhone:    r.NewPhone,
		OTP:         r.Otp,
		Channel:     r.Channel,
		MessageType: r.MessageType,
		Language:    r.Language,
		Status:      r.Status,
	}
}

// IsValidation reports whether err rejected an entry's content.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

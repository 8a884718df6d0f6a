// Package dispatch runs a notification through the gateway and records the
// attempt in the activity log.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/khatabook/number-change-portal/internal/auditlog"
	"github.com/khatabook/number-change-portal/internal/gateway"
	"github.com/khatabook/number-change-portal/internal/metrics"
)

// Actor is the authenticated session a dispatch is attributed to.
type Actor struct {
	ID   string
	Name string
}

// Input is the request form snapshot at the moment of dispatch.
type Input struct {
	CustomerID string
	OldPhone   string
	NewPhone   string
	OTP        string
	Language   string
}

type Sender interface {
	Dispatch(ctx context.Context, kind gateway.Kind, req gateway.Request) gateway.Result
}

type AuditLog interface {
	Append(ctx context.Context, e auditlog.NewEntry) (*auditlog.Entry, error)
}

type Service struct {
	sender  Sender
	audit   AuditLog
	metrics *metrics.Metrics
}

func NewService(sender Sender, audit AuditLog, m *metrics.Metrics) *Service {
	return &Service{
		sender:  sender,
		audit:   audit,
		metrics: m,
	}
}

// Send dispatches one notification and appends exactly one log entry when a
// vendor call was attempted. A failed log write does not change the result.
func (s *Service) Send(ctx context.Context, actor Actor, kind gateway.Kind, in Input) (gateway.Result, *auditlog.Entry) {
	spec, ok := gateway.Lookup(kind)
	req := gateway.Request{
		CustomerID: in.CustomerID,
		OTP:        in.OTP,
		Language:   in.Language,
		Phone:      in.OldPhone,
	}
	if ok && spec.MessageType == gateway.MessageTypeForm {
		req.Phone = in.NewPhone
	}

	result := s.sender.Dispatch(ctx, kind, req)
	if !result.Attempted() {
		return result, nil
	}
	s.metrics.ObserveDispatch(spec.Channel, spec.MessageType, string(result.Outcome), result.Duration)

	status := auditlog.StatusFailed
	if result.Success {
		status = auditlog.StatusSuccess
	}
	entry := auditlog.NewEntry{
		AgentName:   actor.Name,
		AgentID:     actor.ID,
		CustomerID:  in.CustomerID,
		OldPhone:    in.OldPhone,
		NewPhone:    in.NewPhone,
		OTP:         in.OTP,
		Channel:     spec.Channel,
		MessageType: spec.MessageType,
		Language:    result.Language,
		Status:      status,
	}

	// The audit write must outlive a client disconnect, like the vendor call.
	logged, err := s.audit.Append(context.WithoutCancel(ctx), entry)
	if err != nil {
		s.metrics.AuditFailed()
		slog.Error("Failed to append activity log entry",
			"kind", kind,
			"agent_id", actor.ID,
			"status", status,
			"error", err)
		return result, nil
	}
	return result, logged
}

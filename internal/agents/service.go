package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/khatabook/number-change-portal/internal/auth"
	"github.com/khatabook/number-change-portal/internal/db"
	"github.com/khatabook/number-change-portal/internal/db/sqlc"
)

var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrEmailExists   = errors.New("email already exists")
	ErrAgentIDExists = errors.New("agent ID already exists")
	ErrInvalidStatus = errors.New("invalid status")
)

type Service struct {
	queries sqlc.Querier
}

func NewService(queries sqlc.Querier) *Service {
	return &Service{
		queries: queries,
	}
}

// List returns every agent ordered by ID
func (s *Service) List(ctx context.Context) ([]Agent, error) {
	dbAgents, err := s.queries.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	result := make([]Agent, len(dbAgents))
	for i, a := range dbAgents {
		result[i] = toAgent(a)
	}
	return result, nil
}

// Get retrieves an agent by ID
func (s *Service) Get(ctx context.Context, id string) (*Agent, error) {
	dbAgent, err := s.queries.GetAgentByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	agent := toAgent(dbAgent)
	return &agent, nil
}

// Create validates and persists a new agent. An empty input ID is replaced
// by the next AG### sequence number.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Agent, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	f := fields{id: in.ID, name: in.Name, email: in.Email, phone: in.Phone, password: in.Password}
	if err := validate(f, in.ID != "", true); err != nil {
		return nil, err
	}

	if _, err := s.queries.GetAgentIDByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !db.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if in.ID != "" {
		exists, err := s.queries.AgentExists(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check agent ID: %w", err)
		}
		if exists {
			return nil, ErrAgentIDExists
		}
	} else {
		ids, err := s.queries.ListAgentIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list agent IDs: %w", err)
		}
		in.ID = NextAgentID(ids)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	dbAgent, err := s.queries.CreateAgent(ctx, sqlc.CreateAgentParams{
		ID:           in.ID,
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         auth.RoleAgent,
		Status:       sqlc.AgentStatusActive,
		CreatedAt:    pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	})
	if err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	slog.Info("Agent created", "agent_id", dbAgent.ID)
	agent := toAgent(dbAgent)
	return &agent, nil
}

// Update replaces the editable fields of an existing agent
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Agent, error) {
	if _, err := s.queries.GetAgentByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	f := fields{name: in.Name, email: in.Email, phone: in.Phone, password: in.Password}
	if err := validate(f, false, in.Password != ""); err != nil {
		return nil, err
	}

	_, err := s.queries.GetAgentIDByEmailExcludingID(ctx, sqlc.GetAgentIDByEmailExcludingIDParams{
		Email: in.Email,
		ID:    id,
	})
	if err == nil {
		return nil, ErrEmailExists
	} else if !db.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	params := sqlc.UpdateAgentParams{
		ID:    id,
		Name:  strings.TrimSpace(in.Name),
		Email: in.Email,
		Phone: in.Phone,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		params.PasswordHash = pgtype.Text{String: hash, Valid: true}
	}

	dbAgent, err := s.queries.UpdateAgent(ctx, params)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrAgentNotFound
		}
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}

	agent := toAgent(dbAgent)
	return &agent, nil
}

// Delete removes an agent. Deleting an unknown ID is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.queries.DeleteAgent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}
	slog.Info("Agent deleted", "agent_id", id)
	return nil
}

// SetStatus activates or deactivates an agent
func (s *Service) SetStatus(ctx context.Context, id string, status string) (*Agent, error) {
	var agentStatus sqlc.AgentStatus
	switch status {
	case StatusActive:
		agentStatus = sqlc.AgentStatusActive
	case StatusInactive:
		agentStatus = sqlc.AgentStatusInactive
	default:
		return nil, ErrInvalidStatus
	}

	dbAgent, err := s.queries.UpdateAgentStatus(ctx, sqlc.UpdateAgentStatusParams{
		ID:     id,
		Status: agentStatus,
	})
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	slog.Info("Agent status updated", "agent_id", id, "status", status)
	agent := toAgent(dbAgent)
	return &agent, nil
}

// Authenticate verifies an agent's credentials and records the login time.
// Unknown and inactive agents are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, id, password string) (*Agent, error) {
	dbAgent, err := s.queries.GetActiveAgentByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, auth.ErrInactiveOrUnknown
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	if !auth.CheckPassword(password, dbAgent.PasswordHash) {
		return nil, auth.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.queries.UpdateAgentLastLogin(ctx, sqlc.UpdateAgentLastLoginParams{
		ID:        id,
		LastLogin: pgtype.Timestamptz{Time: now, Valid: true},
	}); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	dbAgent.LastLogin = pgtype.Timestamptz{Time: now, Valid: true}

	agent := toAgent(dbAgent)
	return &agent, nil
}

func conflictError(err error) error {
	constraint, ok := db.UniqueViolation(err)
	if !ok {
		return nil
	}
	if constraint == "agents_email_key" {
		return ErrEmailExists
	}
	return ErrAgentIDExists
}

func toAgent(a sqlc.Agent) Agent {
	agent := Agent{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Role:      a.Role,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.Time,
	}
	if a.LastLogin.Valid {
		t := a.LastLogin.Time
		agent.LastLogin = &t
	}
	return agent
}

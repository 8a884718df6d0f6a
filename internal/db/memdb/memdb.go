// Package memdb is an in-memory sqlc.Querier used by tests and local runs
// without PostgreSQL. It mirrors the constraint behaviour of the real schema.
package memdb

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/khatabook/number-change-portal/internal/db/sqlc"
)

type DB struct {
	mu     sync.RWMutex
	agents map[string]sqlc.Agent
	logs   []sqlc.ActivityLog
}

var _ sqlc.Querier = (*DB)(nil)

func New() *DB {
	return &DB{agents: make(map[string]sqlc.Agent)}
}

// InTx runs fn against d and restores the prior contents when fn fails.
// Writers outside fn are not isolated from it.
func (d *DB) InTx(fn func(q sqlc.Querier) error) error {
	d.mu.RLock()
	agents := make(map[string]sqlc.Agent, len(d.agents))
	for id, a := range d.agents {
		agents[id] = a
	}
	logs := slices.Clone(d.logs)
	d.mu.RUnlock()

	if err := fn(d); err != nil {
		d.mu.Lock()
		d.agents = agents
		d.logs = logs
		d.mu.Unlock()
		return err
	}
	return nil
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		ConstraintName: constraint,
	}
}

func (d *DB) emailTaken(email, exceptID string) (string, bool) {
	for id, a := range d.agents {
		if a.Email == email && id != exceptID {
			return id, true
		}
	}
	return "", false
}

func (d *DB) AgentExists(_ context.Context, id string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.agents[id]
	return ok, nil
}

func (d *DB) CountAgents(_ context.Context) (int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return int64(len(d.agents)), nil
}

func (d *DB) CreateAgent(_ context.Context, arg sqlc.CreateAgentParams) (sqlc.Agent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.agents[arg.ID]; ok {
		return sqlc.Agent{}, uniqueViolation("agents_pkey")
	}
	if _, ok := d.emailTaken(arg.Email, ""); ok {
		return sqlc.Agent{}, uniqueViolation("agents_email_key")
	}

	a := sqlc.Agent{
		ID:           arg.ID,
		Name:         arg.Name,
		Email:        arg.Email,
		Phone:        arg.Phone,
		PasswordHash: arg.PasswordHash,
		Role:         arg.Role,
		Status:       arg.Status,
		CreatedAt:    arg.CreatedAt,
		LastLogin:    arg.LastLogin,
	}
	d.agents[a.ID] = a
	return a, nil
}

func (d *DB) DeleteAgent(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.agents, id)
	return nil
}

func (d *DB) GetActiveAgentByID(_ context.Context, id string) (sqlc.Agent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.agents[id]
	if !ok || a.Status != sqlc.AgentStatusActive {
		return sqlc.Agent{}, pgx.ErrNoRows
	}
	return a, nil
}

func (d *DB) GetAgentByID(_ context.Context, id string) (sqlc.Agent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.agents[id]
	if !ok {
		return sqlc.Agent{}, pgx.ErrNoRows
	}
	return a, nil
}

func (d *DB) GetAgentIDByEmail(_ context.Context, email string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id, ok := d.emailTaken(email, ""); ok {
		return id, nil
	}
	return "", pgx.ErrNoRows
}

func (d *DB) GetAgentIDByEmailExcludingID(_ context.Context, arg sqlc.GetAgentIDByEmailExcludingIDParams) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id, ok := d.emailTaken(arg.Email, arg.ID); ok {
		return id, nil
	}
	return "", pgx.ErrNoRows
}

func (d *DB) ListAgentIDs(_ context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.agents))
	for id := range d.agents {
		ids = append(ids, id)
	}
	return ids, nil
}

func (d *DB) ListAgents(_ context.Context) ([]sqlc.Agent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]sqlc.Agent, 0, len(d.agents))
	for _, a := range d.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *DB) UpdateAgent(_ context.Context, arg sqlc.UpdateAgentParams) (sqlc.Agent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.agents[arg.ID]
	if !ok {
		return sqlc.Agent{}, pgx.ErrNoRows
	}
	if _, taken := d.emailTaken(arg.Email, arg.ID); taken {
		return sqlc.Agent{}, uniqueViolation("agents_email_key")
	}
	a.Name = arg.Name
	a.Email = arg.Email
	a.Phone = arg.Phone
	if arg.PasswordHash.Valid {
		a.PasswordHash = arg.PasswordHash.String
	}
	d.agents[a.ID] = a
	return a, nil
}

func (d *DB) UpdateAgentLastLogin(_ context.Context, arg sqlc.UpdateAgentLastLoginParams) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if a, ok := d.agents[arg.ID]; ok {
		a.LastLogin = arg.LastLogin
		d.agents[a.ID] = a
	}
	return nil
}

func (d *DB) UpdateAgentStatus(_ context.Context, arg sqlc.UpdateAgentStatusParams) (sqlc.Agent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.agents[arg.ID]
	if !ok {
		return sqlc.Agent{}, pgx.ErrNoRows
	}
	a.Status = arg.Status
	d.agents[a.ID] = a
	return a, nil
}

func (d *DB) CountActivityLogs(_ context.Context) (int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return int64(len(d.logs)), nil
}

func (d *DB) CreateActivityLog(_ context.Context, arg sqlc.CreateActivityLogParams) (sqlc.ActivityLog, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, l := range d.logs {
		if l.ID == arg.ID {
			return sqlc.ActivityLog{}, uniqueViolation("activity_logs_pkey")
		}
	}
	l := sqlc.ActivityLog(arg)
	d.logs = append(d.logs, l)
	return l, nil
}

func (d *DB) ListActivityLogs(_ context.Context, arg sqlc.ListActivityLogsParams) ([]sqlc.ActivityLog, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	search := ""
	if arg.Search.Valid {
		search = strings.ToLower(arg.Search.String)
	}

	out := make([]sqlc.ActivityLog, 0, len(d.logs))
	for _, l := range d.logs {
		ts := l.Timestamp.Time
		if arg.Since.Valid && ts.Before(arg.Since.Time) {
			continue
		}
		if arg.Until.Valid && !ts.Before(arg.Until.Time) {
			continue
		}
		if arg.Search.Valid && !matches(search, l.AgentName, l.AgentID, l.CustomerID, l.Channel) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Time.After(out[j].Timestamp.Time)
	})
	return out, nil
}

func matches(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

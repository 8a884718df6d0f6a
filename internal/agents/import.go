package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/khatabook/number-change-portal/internal/auth"
	"github.com/khatabook/number-change-portal/internal/db/sqlc"
)

// LegacyAgent is the record shape of the file-backed agents.json store.
// Password holds an existing bcrypt hash.
type LegacyAgent struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Password  string     `json:"password"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// ImportLegacy copies legacy agents into an empty store. It does nothing
// and reports skipped when agents already exist.
func (s *Service) ImportLegacy(ctx context.Context, legacy []LegacyAgent) (imported int, skipped bool, err error) {
	count, err := s.queries.CountAgents(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to count agents: %w", err)
	}
	if count > 0 {
		slog.Info("Agents already exist, skipping import", "existing", count)
		return 0, true, nil
	}

	for _, a := range legacy {
		status := sqlc.AgentStatusActive
		if a.Status == StatusInactive {
			status = sqlc.AgentStatusInactive
		}

		createdAt := a.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		var lastLogin pgtype.Timestamptz
		if a.LastLogin != nil {
			lastLogin = pgtype.Timestamptz{Time: *a.LastLogin, Valid: true}
		}

		if _, err := s.queries.CreateAgent(ctx, sqlc.CreateAgentParams{
			ID:           a.ID,
			Name:         strings.TrimSpace(a.Name),
			Email:        strings.ToLower(strings.TrimSpace(a.Email)),
			Phone:        a.Phone,
			PasswordHash: a.Password,
			Role:         auth.RoleAgent,
			Status:       status,
			CreatedAt:    pgtype.Timestamptz{Time: createdAt, Valid: true},
			LastLogin:    lastLogin,
		}); err != nil {
			if conflict := conflictError(err); conflict != nil {
				return imported, false, fmt.Errorf("import agent %s: %w", a.ID, conflict)
			}
			return imported, false, fmt.Errorf("import agent %s: %w", a.ID, err)
		}
		imported++
	}

	slog.Info("Imported legacy agents", "count", imported)
	return imported, false, nil
}

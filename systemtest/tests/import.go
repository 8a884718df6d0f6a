package tests

import (
	"context"
	"testing"

	"github.com/khatabook/number-change-portal/internal/auditlog"
	"github.com/khatabook/number-change-portal/internal/db"
	"github.com/khatabook/number-change-portal/internal/db/sqlc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestImportRollsBack runs against a log that already has entries, so the
// import is expected to stop at the invalid record and keep nothing.
func TestImportRollsBack(t *testing.T, store *db.Store) {
	ctx := context.Background()
	before, err := store.Queries.CountActivityLogs(ctx)
	require.NoError(t, err)

	err = store.InTx(ctx, func(q sqlc.Querier) error {
		svc := auditlog.NewService(q)
		if _, err := svc.Append(ctx, auditlog.NewEntry{
			AgentName: "Importer", AgentID: "ADMIN", Channel: "sms", MessageType: "OTP", Status: auditlog.StatusSuccess,
		}); err != nil {
			return err
		}
		_, err := svc.Append(ctx, auditlog.NewEntry{
			AgentName: "Importer", AgentID: "ADMIN", Channel: "fax", MessageType: "OTP", Status: auditlog.StatusSuccess,
		})
		return err
	})
	require.Error(t, err)
	assert.True(t, auditlog.IsValidation(err))

	after, err := store.Queries.CountActivityLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

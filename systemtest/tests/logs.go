package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchAudit(t *testing.T, router *gin.Engine, adminToken string) {
	rr := doJSONWithAuth(router, "POST", "/api/send-whatsapp-form", dto.DispatchRequest{
		CustomerID: "CUST-77",
		OldPhone:   "9000000001",
		NewPhone:   "+91 90000 00002",
		Language:   "hindi",
	}, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSONWithAuth(router, "POST", "/api/send-sms", dto.DispatchRequest{OldPhone: "123", OTP: "4821"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSONWithAuth(router, "GET", "/api/logs?q=cust-77", nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var logs []dto.LogEntryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "ADMIN", logs[0].AgentID)
	assert.Equal(t, "Administrator", logs[0].AgentName)
	assert.Equal(t, "whatsapp", logs[0].Channel)
	assert.Equal(t, "Form", logs[0].MessageType)
	assert.Equal(t, "hindi", logs[0].Language)
	assert.Equal(t, "N/A", logs[0].OTP)
	assert.Equal(t, "success", logs[0].Status)

	rr = doJSONWithAuth(router, "GET", "/api/logs", nil, adminToken)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &logs))
	assert.Len(t, logs, 1)

	// Search text is literal, LIKE wildcards match nothing here.
	for _, q := range []string{"_", "%25", "cust_77"} {
		rr = doJSONWithAuth(router, "GET", "/api/logs?q="+q, nil, adminToken)
		require.Equal(t, http.StatusOK, rr.Code)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &logs))
		assert.Empty(t, logs, "q=%s", q)
	}
}

func TestAuditLogAppendOnly(t *testing.T, dbURL, schema string) {
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	require.NoError(t, err)
	defer conn.Close(ctx)

	table := pgx.Identifier{schema, "activity_logs"}.Sanitize()

	_, err = conn.Exec(ctx, fmt.Sprintf("UPDATE %s SET status = 'failed'", table))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append-only")

	_, err = conn.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append-only")
}

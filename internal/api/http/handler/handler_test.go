package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/agents"
	"github.com/khatabook/number-change-portal/internal/api/http/middleware"
	"github.com/khatabook/number-change-portal/internal/db/memdb"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withActor stands in for JWTAuth in handler tests.
func withActor(id, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Set(middleware.UsernameKey, name)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func seedAgent(t *testing.T, svc *agents.Service, id, password string) *agents.Agent {
	t.Helper()
	a, err := svc.Create(context.Background(), agents.CreateInput{
		ID:       id,
		Name:     "Asha Rao",
		Email:    id + "@khatabook.com",
		Phone:    "9876543210",
		Password: password,
	})
	require.NoError(t, err)
	return a
}

func newAgentService() *agents.Service {
	return agents.NewService(memdb.New())
}

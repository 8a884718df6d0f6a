package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/agents"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
	"github.com/khatabook/number-change-portal/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupAuthRouter(t *testing.T, agentService *agents.Service) *gin.Engine {
	t.Helper()
	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)

	authService := auth.NewService(auth.Config{Secret: testSecret}, auth.AdminConfig{
		Username:     "admin",
		Email:        "admin@khatabook.com",
		PasswordHash: hash,
	})
	h := NewAuthHandler(agentService, authService)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/admin-login", h.AdminLogin)
	return r
}

func TestLogin(t *testing.T) {
	svc := newAgentService()
	seedAgent(t, svc, "AG001", "secret1")
	r := setupAuthRouter(t, svc)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", dto.LoginRequest{AgentID: "AG001", Password: "secret1"})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.AgentLoginResponse](t, w)
	assert.Equal(t, "AG001", resp.ID)
	assert.NotNil(t, resp.LastLogin)
	assert.NotContains(t, w.Body.String(), "password")

	claims, err := auth.ValidateToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "AG001", claims.UserID)
	assert.Equal(t, "Asha Rao", claims.Username)
	assert.Equal(t, auth.RoleAgent, claims.Role)
}

func TestLoginFailures(t *testing.T) {
	svc := newAgentService()
	seedAgent(t, svc, "AG001", "secret1")
	seedAgent(t, svc, "AG002", "secret1")
	_, err := svc.SetStatus(context.Background(), "AG002", agents.StatusInactive)
	require.NoError(t, err)
	r := setupAuthRouter(t, svc)

	tests := []struct {
		name     string
		body     any
		wantCode int
		wantBody string
	}{
		{"wrong password", dto.LoginRequest{AgentID: "AG001", Password: "nope12"}, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{"unknown agent", dto.LoginRequest{AgentID: "AG404", Password: "secret1"}, http.StatusUnauthorized, `{"error":"Invalid credentials or inactive account"}`},
		{"inactive agent", dto.LoginRequest{AgentID: "AG002", Password: "secret1"}, http.StatusUnauthorized, `{"error":"Invalid credentials or inactive account"}`},
		{"missing fields", map[string]string{"agentId": "AG001"}, http.StatusBadRequest, `{"error":"Agent ID and password are required"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/auth/login", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestAdminLogin(t *testing.T) {
	r := setupAuthRouter(t, newAgentService())

	w := doJSON(t, r, http.MethodPost, "/api/auth/admin-login", dto.AdminLoginRequest{Username: "admin", Password: "admin-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.AdminLoginResponse](t, w)
	assert.Equal(t, "ADMIN", resp.ID)
	assert.Equal(t, "Administrator", resp.Name)
	assert.Equal(t, auth.RoleAdmin, resp.Role)
	assert.Equal(t, "admin@khatabook.com", resp.Email)

	claims, err := auth.ValidateToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	w = doJSON(t, r, http.MethodPost, "/api/auth/admin-login", dto.AdminLoginRequest{Username: "admin", Password: "admin123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid admin credentials"}`, w.Body.String())
}

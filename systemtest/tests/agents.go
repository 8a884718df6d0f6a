package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
	"github.com/khatabook/number-change-portal/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentLifecycle(t *testing.T, router *gin.Engine, adminToken, jwtSecret string) {
	create := dto.CreateAgentRequest{
		AgentID:  "AG100",
		Name:     "Meera Nair",
		Email:    "Meera@Khatabook.com",
		Phone:    "9000000001",
		Password: "secret1",
	}

	t.Run("create", func(t *testing.T) {
		rr := doJSONWithAuth(router, "POST", "/api/agents", create, adminToken)
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp dto.AgentResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "AG100", resp.ID)
		assert.Equal(t, "meera@khatabook.com", resp.Email)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := create
		dup.AgentID = "AG101"
		rr := doJSONWithAuth(router, "POST", "/api/agents", dup, adminToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Email already exists"}`, rr.Body.String())
	})

	t.Run("duplicate id", func(t *testing.T) {
		dup := create
		dup.Email = "other@khatabook.com"
		rr := doJSONWithAuth(router, "POST", "/api/agents", dup, adminToken)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Agent ID already exists"}`, rr.Body.String())
	})

	t.Run("login", func(t *testing.T) {
		rr := doJSON(router, "POST", "/api/auth/login", dto.LoginRequest{AgentID: "AG100", Password: "secret1"})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp dto.AgentLoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotNil(t, resp.LastLogin)

		claims, err := auth.ValidateToken(jwtSecret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "AG100", claims.UserID)
		assert.Equal(t, auth.RoleAgent, claims.Role)
	})

	t.Run("deactivated agent cannot login", func(t *testing.T) {
		rr := doJSONWithAuth(router, "PATCH", "/api/agents/AG100/status", dto.UpdateAgentStatusRequest{Status: "inactive"}, adminToken)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doJSON(router, "POST", "/api/auth/login", dto.LoginRequest{AgentID: "AG100", Password: "secret1"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials or inactive account"}`, rr.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		rr := doJSONWithAuth(router, "DELETE", "/api/agents/AG100", nil, adminToken)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = doJSONWithAuth(router, "PUT", "/api/agents/AG100", dto.UpdateAgentRequest{
			Name: "Meera Nair", Email: "meera@khatabook.com", Phone: "9000000001",
		}, adminToken)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

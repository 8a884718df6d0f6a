package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/agents"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
	"github.com/khatabook/number-change-portal/internal/auth"
)

type AuthHandler struct {
	agentService *agents.Service
	authService  *auth.Service
}

func NewAuthHandler(agentService *agents.Service, authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		agentService: agentService,
		authService:  authService,
	}
}

// Login authenticates an agent
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Agent ID and password are required"})
		return
	}

	agent, err := h.agentService.Authenticate(c.Request.Context(), req.AgentID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInactiveOrUnknown):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials or inactive account"})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		default:
			slog.Error("Failed to authenticate agent", "error", err, "agent_id", req.AgentID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	token, err := h.authService.IssueToken(agent.ID, agent.Name, agent.Role)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	slog.Info("Agent logged in", "agent_id", agent.ID)
	c.JSON(http.StatusOK, dto.AgentLoginResponse{
		AgentResponse: toAgentResponse(*agent),
		Token:         token,
	})
}

// AdminLogin authenticates the configured administrator
// POST /api/auth/admin-login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		return
	}

	admin, err := h.authService.AuthenticateAdmin(req.Username, req.Password)
	if err != nil {
		slog.Warn("Admin login rejected", "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		return
	}

	token, err := h.authService.IssueToken(admin.ID, admin.Name, admin.Role)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin login failed"})
		return
	}

	c.JSON(http.StatusOK, dto.AdminLoginResponse{
		ID:    admin.ID,
		Name:  admin.Name,
		Role:  admin.Role,
		Email: admin.Email,
		Token: token,
	})
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/agents"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
)

type AgentsHandler struct {
	agentService *agents.Service
}

func NewAgentsHandler(agentService *agents.Service) *AgentsHandler {
	return &AgentsHandler{
		agentService: agentService,
	}
}

// ListAgents returns every agent without password hashes
// GET /api/agents
func (h *AgentsHandler) ListAgents(c *gin.Context) {
	agentList, err := h.agentService.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list agents", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch agents"})
		return
	}

	responses := make([]dto.AgentResponse, len(agentList))
	for i, a := range agentList {
		responses[i] = toAgentResponse(a)
	}
	c.JSON(http.StatusOK, responses)
}

// CreateAgent registers a new agent
// POST /api/agents
func (h *AgentsHandler) CreateAgent(c *gin.Context) {
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	agent, err := h.agentService.Create(c.Request.Context(), agents.CreateInput{
		ID:       req.AgentID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeAgentError(c, err, "Failed to create agent")
		return
	}

	c.JSON(http.StatusCreated, toAgentResponse(*agent))
}

// UpdateAgent replaces the editable fields of an agent
// PUT /api/agents/:id
func (h *AgentsHandler) UpdateAgent(c *gin.Context) {
	var req dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	agent, err := h.agentService.Update(c.Request.Context(), c.Param("id"), agents.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeAgentError(c, err, "Failed to update agent")
		return
	}

	c.JSON(http.StatusOK, toAgentResponse(*agent))
}

// DeleteAgent removes an agent
// DELETE /api/agents/:id
func (h *AgentsHandler) DeleteAgent(c *gin.Context) {
	if err := h.agentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		slog.Error("Failed to delete agent", "error", err, "agent_id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete agent"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Agent deleted successfully"})
}

// UpdateAgentStatus activates or deactivates an agent
// PATCH /api/agents/:id/status
func (h *AgentsHandler) UpdateAgentStatus(c *gin.Context) {
	var req dto.UpdateAgentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	agent, err := h.agentService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeAgentError(c, err, "Failed to update agent status")
		return
	}

	c.JSON(http.StatusOK, toAgentResponse(*agent))
}

func writeAgentError(c *gin.Context, err error, fallback string) {
	var validationErr *agents.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: validationErr.Errors})
	case errors.Is(err, agents.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	case errors.Is(err, agents.ErrAgentIDExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Agent ID already exists"})
	case errors.Is(err, agents.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, agents.ErrAgentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
	default:
		slog.Error(fallback, "error", err, "agent_id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func toAgentResponse(a agents.Agent) dto.AgentResponse {
	return dto.AgentResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Role:      a.Role,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
	}
}

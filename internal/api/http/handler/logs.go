package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
	"github.com/khatabook/number-change-portal/internal/api/http/middleware"
	"github.com/khatabook/number-change-portal/internal/auditlog"
)

const dateLayout = "2006-01-02"

type LogsHandler struct {
	logService *auditlog.Service
}

func NewLogsHandler(logService *auditlog.Service) *LogsHandler {
	return &LogsHandler{
		logService: logService,
	}
}

// ListLogs returns activity log entries newest first
// GET /api/logs?date=YYYY-MM-DD&q=
func (h *LogsHandler) ListLogs(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	entries, err := h.logService.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("Failed to list logs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}

	responses := make([]dto.LogEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = toLogEntryResponse(e)
	}
	c.JSON(http.StatusOK, responses)
}

// ExportLogs streams the filtered log as CSV
// GET /api/logs/export?date=YYYY-MM-DD&q=
func (h *LogsHandler) ExportLogs(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	entries, err := h.logService.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("Failed to list logs for export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export logs"})
		return
	}

	var buf bytes.Buffer
	if err := auditlog.WriteCSV(&buf, entries); err != nil {
		slog.Error("Failed to write CSV", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export logs"})
		return
	}

	filename := fmt.Sprintf("activity_logs_%s.csv", time.Now().UTC().Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// CreateLog appends a manually submitted entry attributed to the caller
// POST /api/logs
func (h *LogsHandler) CreateLog(c *gin.Context) {
	var req dto.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	agentID, agentName := middleware.Actor(c)
	entry, err := h.logService.Append(c.Request.Context(), auditlog.NewEntry{
		AgentName:   agentName,
		AgentID:     agentID,
		CustomerID:  req.CustomerID,
		OldPhone:    req.OldPhone,
		NewPhone:    req.NewPhone,
		OTP:         req.OTP,
		Channel:     req.Channel,
		MessageType: req.MessageType,
		Language:    req.Language,
		Status:      req.Status,
	})
	if err != nil {
		var validationErr *auditlog.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: validationErr.Errors})
			return
		}
		slog.Error("Failed to add log", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add log"})
		return
	}

	c.JSON(http.StatusCreated, toLogEntryResponse(*entry))
}

func bindFilter(c *gin.Context) (auditlog.Filter, bool) {
	filter := auditlog.Filter{Search: c.Query("q")}
	if date := c.Query("date"); date != "" {
		day, err := time.Parse(dateLayout, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return filter, false
		}
		filter.Date = &day
	}
	return filter, true
}

func toLogEntryResponse(e auditlog.Entry) dto.LogEntryResponse {
	return dto.LogEntryResponse{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		AgentName:   e.AgentName,
		AgentID:     e.AgentID,
		CustomerID:  e.CustomerID,
		OldPhone:    e.OldPhone,
		NewPhone:    e.NewPhone,
		OTP:         e.OTP,
		Channel:     e.Channel,
		MessageType: e.MessageType,
		Language:    e.Language,
		Status:      e.Status,
	}
}

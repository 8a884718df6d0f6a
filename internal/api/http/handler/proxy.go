package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
	"github.com/khatabook/number-change-portal/internal/metrics"
	"github.com/khatabook/number-change-portal/internal/relay"
)

type ProxyHandler struct {
	relay   *relay.Relay
	metrics *metrics.Metrics
}

func NewProxyHandler(r *relay.Relay, m *metrics.Metrics) *ProxyHandler {
	return &ProxyHandler{
		relay:   r,
		metrics: m,
	}
}

// ProxySMS relays a GET to the SMS gateway URL given in ?url=
// GET /proxy/sms
func (h *ProxyHandler) ProxySMS(c *gin.Context) {
	result, err := h.relay.Do(c.Request.Context(), c.Query("url"))
	if err != nil {
		h.metrics.ObserveRelay("rejected")
		c.JSON(http.StatusBadRequest, dto.RelayErrorResponse{Success: false, Error: err.Error()})
		return
	}

	if !result.Success {
		h.metrics.ObserveRelay("error")
		c.JSON(http.StatusInternalServerError, dto.RelayErrorResponse{
			Success:   false,
			Error:     result.Error,
			ErrorCode: result.ErrorCode,
		})
		return
	}

	h.metrics.ObserveRelay("ok")
	c.JSON(http.StatusOK, dto.RelaySuccessResponse{
		Success: true,
		Status:  result.Status,
		Data:    result.Data,
	})
}

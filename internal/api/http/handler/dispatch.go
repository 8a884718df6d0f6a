package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khatabook/number-change-portal/internal/api/http/dto"
	"github.com/khatabook/number-change-portal/internal/api/http/middleware"
	"github.com/khatabook/number-change-portal/internal/dispatch"
	"github.com/khatabook/number-change-portal/internal/gateway"
)

type DispatchHandler struct {
	dispatchService *dispatch.Service
}

func NewDispatchHandler(dispatchService *dispatch.Service) *DispatchHandler {
	return &DispatchHandler{
		dispatchService: dispatchService,
	}
}

// Send returns the endpoint for one message kind, e.g.
// POST /api/send-sms
func (h *DispatchHandler) Send(kind gateway.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.DispatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		agentID, agentName := middleware.Actor(c)
		result, _ := h.dispatchService.Send(c.Request.Context(),
			dispatch.Actor{ID: agentID, Name: agentName},
			kind,
			dispatch.Input{
				CustomerID: req.CustomerID,
				OldPhone:   req.OldPhone,
				NewPhone:   req.NewPhone,
				OTP:        req.OTP,
				Language:   req.Language,
			})

		if !result.Attempted() {
			c.JSON(result.HTTPStatus, gin.H{"error": result.Message})
			return
		}
		c.JSON(result.HTTPStatus, toDispatchResponse(result))
	}
}

func toDispatchResponse(r gateway.Result) dto.DispatchResponse {
	resp := dto.DispatchResponse{
		Success:     r.Success,
		Message:     r.Message,
		Data:        r.Payload,
		PhoneNumber: r.Phone,
		Language:    r.Language,
		MessageID:   r.MessageID,
		Error:       r.Error,
		ErrorCode:   r.ErrorCode,
	}

	switch r.Outcome {
	case gateway.OutcomeInvalid:
		resp.RawResponse = r.Raw
		resp.Status = r.VendorStatus
	case gateway.OutcomeRejected:
		if r.Kind == gateway.KindPushOTP {
			resp.Status = r.VendorStatus
		}
	}
	return resp
}

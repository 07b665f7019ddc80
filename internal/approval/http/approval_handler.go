// Package http provides HTTP handlers for the approval admin surface: the
// external user-approval UI realized as an API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/f107110126/rpc-cap/internal/approval/http/dto"
	approvalService "github.com/f107110126/rpc-cap/internal/approval/service"
	approvalUseCase "github.com/f107110126/rpc-cap/internal/approval/usecase"
	"github.com/f107110126/rpc-cap/internal/httputil"
	customValidation "github.com/f107110126/rpc-cap/internal/validation"
)

// ApprovalHandler handles HTTP requests for listing and deciding pending
// permission requests.
type ApprovalHandler struct {
	approvalUC approvalUseCase.UseCase
	broker     *approvalService.DecisionBroker
	logger     *slog.Logger
}

// NewApprovalHandler creates a new approval handler.
func NewApprovalHandler(
	approvalUC approvalUseCase.UseCase,
	broker *approvalService.DecisionBroker,
	logger *slog.Logger,
) *ApprovalHandler {
	return &ApprovalHandler{
		approvalUC: approvalUC,
		broker:     broker,
		logger:     logger,
	}
}

// ListHandler returns the pending permission requests.
// GET /v1/approvals?offset=0&limit=50
// Returns 200 OK with the paginated pending list, oldest first.
func (h *ApprovalHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	pending, err := h.approvalUC.Pending(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if offset > len(pending) {
		offset = len(pending)
	}
	end := offset + limit
	if end > len(pending) {
		end = len(pending)
	}

	c.JSON(http.StatusOK, dto.MapRequestsToListResponse(pending[offset:end]))
}

// DecideHandler delivers the user's decision on a pending request.
// POST /v1/approvals/:id/decision
// Returns 204 No Content once the decision is delivered to the waiting flow.
func (h *ApprovalHandler) DecideHandler(c *gin.Context) {
	requestID := c.Param("id")
	if err := customValidation.NotBlank.Validate(requestID); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var err error
	if req.Reject {
		err = h.broker.Reject(requestID, req.Reason)
	} else {
		err = h.broker.Decide(requestID, req.Approved)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("approval decision delivered",
		slog.String("request_id", requestID),
		slog.Bool("rejected", req.Reject),
	)

	c.Data(http.StatusNoContent, "application/json", nil)
}

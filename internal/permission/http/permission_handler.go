// Package http provides HTTP handlers for permission inspection.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/f107110126/rpc-cap/internal/httputil"
	"github.com/f107110126/rpc-cap/internal/permission/http/dto"
	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
	customValidation "github.com/f107110126/rpc-cap/internal/validation"
)

// PermissionHandler handles HTTP requests for inspecting domain permissions.
type PermissionHandler struct {
	permissionUC permissionUseCase.UseCase
	logger       *slog.Logger
}

// NewPermissionHandler creates a new permission handler.
func NewPermissionHandler(
	permissionUC permissionUseCase.UseCase,
	logger *slog.Logger,
) *PermissionHandler {
	return &PermissionHandler{
		permissionUC: permissionUC,
		logger:       logger,
	}
}

// ListHandler returns the permission list of a domain.
// GET /v1/domains/:domain/permissions
// Returns 200 OK with the (possibly empty) list.
func (h *PermissionHandler) ListHandler(c *gin.Context) {
	domainID := c.Param("domain")
	if err := customValidation.DomainIdentifier.Validate(domainID); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	perms, err := h.permissionUC.List(c.Request.Context(), domainID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPermissionsToListResponse(perms))
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
	"github.com/noah-isme/his-portal-api/pkg/response"
)

type permissionService interface {
	List(ctx context.Context, filter dto.PermissionFilter) ([]models.StudentPaymentPermission, error)
	Evaluate(ctx context.Context, studentID string, req dto.TogglePermissionRequest) (*dto.PermissionDecision, error)
}

// PermissionHandler exposes the grade-permission screen endpoints.
type PermissionHandler struct {
	service permissionService
}

// NewPermissionHandler builds a new handler.
func NewPermissionHandler(service permissionService) *PermissionHandler {
	return &PermissionHandler{service: service}
}

// List godoc
// @Summary List grade-view permission records
// @Tags Permissions
// @Produce json
// @Param semester query string false "Semester filter"
// @Param search query string false "Free-text search over id/name"
// @Success 200 {object} response.Envelope
// @Router /permissions [get]
func (h *PermissionHandler) List(c *gin.Context) {
	filter := dto.PermissionFilter{
		Semester: c.Query("semester"),
		Search:   c.Query("search"),
	}
	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Toggle godoc
// @Summary Request a grade-visibility change for one student
// @Tags Permissions
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param payload body dto.TogglePermissionRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "auto-grant protected"
// @Failure 412 {object} response.Envelope "confirmation required"
// @Router /permissions/{studentId} [put]
func (h *PermissionHandler) Toggle(c *gin.Context) {
	var req dto.TogglePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid permission payload"))
		return
	}

	decision, err := h.service.Evaluate(c.Request.Context(), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if decision.RequiresConfirmation {
		response.Reject(c, appErrors.ErrConfirmationRequired, decision)
		return
	}
	response.JSON(c, http.StatusOK, decision)
}

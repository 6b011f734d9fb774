package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/pkg/response"
)

type dashboardService interface {
	Student(ctx context.Context, claims *models.JWTClaims) (*dto.StudentDashboardResponse, error)
	Teacher(ctx context.Context, claims *models.JWTClaims) (*dto.TeacherDashboardResponse, error)
	Finance(ctx context.Context, claims *models.JWTClaims) (*dto.FinanceDashboardResponse, error)
}

// DashboardHandler exposes the role landing pages.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler builds a new handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Student godoc
// @Summary Student landing page aggregation
// @Tags Dashboards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/student [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	resp, err := h.service.Student(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Teacher godoc
// @Summary Teacher landing page aggregation
// @Tags Dashboards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/teacher [get]
func (h *DashboardHandler) Teacher(c *gin.Context) {
	resp, err := h.service.Teacher(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Finance godoc
// @Summary Finance landing page aggregation
// @Tags Dashboards
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/finance [get]
func (h *DashboardHandler) Finance(c *gin.Context) {
	resp, err := h.service.Finance(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
	"github.com/noah-isme/his-portal-api/pkg/response"
)

type scheduleService interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
	Grid(ctx context.Context, filter models.ScheduleFilter) (*dto.ScheduleGrid, error)
	Upsert(ctx context.Context, claims *models.JWTClaims, req dto.UpsertScheduleRequest) (*models.Schedule, error)
	Delete(ctx context.Context, claims *models.JWTClaims, id string) error
}

// ScheduleHandler exposes the weekly schedule endpoints.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler builds a new handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// List godoc
// @Summary List schedule entries
// @Tags Schedules
// @Produce json
// @Param courseCode query string false "Course code filter"
// @Param timeBucket query string false "Class-time bucket (morning|afternoon|evening)"
// @Param year query int false "School year filter"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), scheduleFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Grid godoc
// @Summary Project the filtered schedule into a day-by-timeslot grid
// @Tags Schedules
// @Produce json
// @Param courseCode query string false "Course code filter"
// @Param timeBucket query string false "Class-time bucket (morning|afternoon|evening)"
// @Param year query int false "School year filter"
// @Success 200 {object} response.Envelope
// @Router /schedules/grid [get]
func (h *ScheduleHandler) Grid(c *gin.Context) {
	grid, err := h.service.Grid(c.Request.Context(), scheduleFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}

// Upsert godoc
// @Summary Create or replace a schedule entry (teacher edit mode)
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.UpsertScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Upsert(c *gin.Context) {
	var req dto.UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	entry, err := h.service.Upsert(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Delete godoc
// @Summary Delete a schedule entry (teacher edit mode)
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func scheduleFilterFromQuery(c *gin.Context) models.ScheduleFilter {
	filter := models.ScheduleFilter{
		CourseCode: c.Query("courseCode"),
		TimeBucket: models.TimeBucket(c.Query("timeBucket")),
	}
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.Year = year
		}
	}
	return filter
}

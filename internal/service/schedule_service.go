package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/internal/repository"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
)

type scheduleStore interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	Upsert(ctx context.Context, entry models.Schedule) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService lists, filters and projects the weekly schedule, and
// handles the teacher-only edit mode. Overlapping entries are allowed;
// the grid stacks them in insertion order.
type ScheduleService struct {
	repo      scheduleStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService builds a ScheduleService.
func NewScheduleService(repo scheduleStore, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, logger: logger}
}

// List returns the filtered entries.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return entries, nil
}

// Grid projects the filtered entries into a day-by-timeslot matrix. Every
// weekday carries a cell per distinct start time so the client renders a
// rectangular grid; same-cell entries stack in insertion order.
func (s *ScheduleService) Grid(ctx context.Context, filter models.ScheduleFilter) (*dto.ScheduleGrid, error) {
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}

	slotSet := make(map[string]struct{})
	for _, e := range entries {
		slotSet[e.StartTime] = struct{}{}
	}
	slots := make([]string, 0, len(slotSet))
	for slot := range slotSet {
		slots = append(slots, slot)
	}
	// "HH:mm" sorts chronologically as text.
	sort.Strings(slots)

	grid := &dto.ScheduleGrid{TimeSlots: slots, Days: make([]dto.ScheduleGridDay, 7)}
	for day := 0; day < 7; day++ {
		cells := make([]dto.ScheduleGridCell, 0, len(slots))
		for _, slot := range slots {
			cell := dto.ScheduleGridCell{StartTime: slot, Entries: []models.Schedule{}}
			for _, e := range entries {
				if e.DayOfWeek == day && e.StartTime == slot {
					cell.Entries = append(cell.Entries, e)
				}
			}
			cells = append(cells, cell)
		}
		grid.Days[day] = dto.ScheduleGridDay{DayOfWeek: day, Cells: cells}
	}
	return grid, nil
}

// Upsert creates or replaces an entry. Edit mode is teacher-only; an empty
// ID mints a new one, a provided ID must exist. No overlap validation is
// performed.
func (s *ScheduleService) Upsert(ctx context.Context, claims *models.JWTClaims, req dto.UpsertScheduleRequest) (*models.Schedule, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleTeacher {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	entryType := models.ScheduleType(req.Type)
	if !models.ValidScheduleType(entryType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown schedule type")
	}

	now := time.Now().UTC()
	entry := models.Schedule{
		ID:           req.ID,
		CourseCode:   req.CourseCode,
		CourseName:   req.CourseName,
		CourseNameEn: req.CourseNameEn,
		Teacher:      req.Teacher,
		Room:         req.Room,
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Type:         entryType,
		Year:         req.Year,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if req.ID == "" {
		entry.ID = uuid.NewString()
	} else {
		existing, err := s.repo.FindByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch schedule entry")
		}
		entry.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save schedule entry")
	}

	s.logger.Sugar().Infow("schedule saved", "schedule_id", entry.ID, "course_code", entry.CourseCode)
	return &entry, nil
}

// Delete removes an entry by ID. Teacher-only.
func (s *ScheduleService) Delete(ctx context.Context, claims *models.JWTClaims, id string) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleTeacher {
		return appErrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule entry")
	}

	s.logger.Sugar().Infow("schedule deleted", "schedule_id", id)
	return nil
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/internal/repository"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
)

type dashboardScheduleReader interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
}

type dashboardMessageReader interface {
	CountUnread(ctx context.Context, userID string) (int, error)
}

type dashboardLedgerReader interface {
	FindByStudentID(ctx context.Context, studentID string) (*models.PaymentRecord, error)
	List(ctx context.Context, filter models.LedgerFilter) ([]models.PaymentRecord, error)
	Summary(ctx context.Context) (models.LedgerSummary, error)
}

// DashboardService assembles the role landing pages from the stores.
type DashboardService struct {
	schedules dashboardScheduleReader
	messages  dashboardMessageReader
	ledger    dashboardLedgerReader
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardService builds a DashboardService.
func NewDashboardService(schedules dashboardScheduleReader, messages dashboardMessageReader, ledger dashboardLedgerReader, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		schedules: schedules,
		messages:  messages,
		ledger:    ledger,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Student aggregates the student landing page.
func (s *DashboardService) Student(ctx context.Context, claims *models.JWTClaims) (*dto.StudentDashboardResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleStudent {
		return nil, appErrors.ErrForbidden
	}

	today, err := s.todaySchedule(ctx)
	if err != nil {
		return nil, err
	}

	unread, err := s.messages.CountUnread(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread messages")
	}

	resp := &dto.StudentDashboardResponse{TodaySchedule: today, UnreadMessages: unread}

	payment, err := s.ledger.FindByStudentID(ctx, claims.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch payment record")
	}
	resp.Payment = payment

	return resp, nil
}

// Teacher aggregates the teacher landing page.
func (s *DashboardService) Teacher(ctx context.Context, claims *models.JWTClaims) (*dto.TeacherDashboardResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleTeacher {
		return nil, appErrors.ErrForbidden
	}

	today, err := s.todaySchedule(ctx)
	if err != nil {
		return nil, err
	}
	slots := make([]models.Schedule, 0, len(today))
	for _, entry := range today {
		if entry.Teacher == claims.FullName {
			slots = append(slots, entry)
		}
	}

	unread, err := s.messages.CountUnread(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread messages")
	}

	return &dto.TeacherDashboardResponse{TodaySlots: slots, UnreadMessages: unread}, nil
}

// Finance aggregates the finance landing page.
func (s *DashboardService) Finance(ctx context.Context, claims *models.JWTClaims) (*dto.FinanceDashboardResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleFinance {
		return nil, appErrors.ErrForbidden
	}

	summary, err := s.ledger.Summary(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise ledger")
	}

	records, err := s.ledger.List(ctx, models.LedgerFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ledger")
	}

	const recentLimit = 5
	recent := records
	if len(recent) > recentLimit {
		recent = recent[len(recent)-recentLimit:]
	}

	return &dto.FinanceDashboardResponse{Summary: summary, RecentPayments: recent}, nil
}

func (s *DashboardService) todaySchedule(ctx context.Context) ([]models.Schedule, error) {
	entries, err := s.schedules.List(ctx, models.ScheduleFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	weekday := int(s.now().Weekday())
	today := make([]models.Schedule, 0)
	for _, entry := range entries {
		if entry.DayOfWeek == weekday {
			today = append(today, entry)
		}
	}
	return today, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/internal/repository"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
)

type ledgerStore interface {
	List(ctx context.Context, filter models.LedgerFilter) ([]models.PaymentRecord, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.PaymentRecord, error)
	Update(ctx context.Context, record models.PaymentRecord) error
	Summary(ctx context.Context) (models.LedgerSummary, error)
}

// PaymentService edits the payment-management ledger. Grade visibility on
// this screen follows the full-payment rule; it is a second policy distinct
// from the permission engine's ratio threshold.
type PaymentService struct {
	repo      ledgerStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService builds a PaymentService.
func NewPaymentService(repo ledgerStore, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, validator: validate, logger: logger}
}

// List returns ledger records with the optional status/search filter.
func (s *PaymentService) List(ctx context.Context, filter models.LedgerFilter) ([]models.PaymentRecord, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ledger")
	}
	return records, nil
}

// Get returns one ledger record.
func (s *PaymentService) Get(ctx context.Context, studentID string) (*models.PaymentRecord, error) {
	record, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch payment record")
	}
	return record, nil
}

// Summary aggregates the ledger for the finance dashboard.
func (s *PaymentService) Summary(ctx context.Context) (models.LedgerSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return models.LedgerSummary{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise ledger")
	}
	return summary, nil
}

// ApplyPayment sets a new paid amount and recomputes the derived fields.
// Out-of-range amounts are accepted as given; the UI carries the only
// min/max hints.
func (s *PaymentService) ApplyPayment(ctx context.Context, studentID string, req dto.ApplyPaymentRequest) (*models.PaymentRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	record, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch payment record")
	}

	newPaid := *req.PaidAmount
	record.PaidAmount = newPaid
	record.Remaining = record.TotalAmount - newPaid
	record.PaymentStatus = models.DerivePaymentStatus(record.TotalAmount, newPaid)
	record.CanViewGrades = record.Remaining <= 0
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update payment record")
	}

	s.logger.Sugar().Infow("payment updated",
		"student_id", studentID,
		"paid_amount", record.PaidAmount,
		"status", record.PaymentStatus,
	)
	return record, nil
}

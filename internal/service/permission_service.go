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

type permissionStore interface {
	List(ctx context.Context, filter dto.PermissionFilter) ([]models.StudentPaymentPermission, error)
	FindByStudentID(ctx context.Context, studentID string) (*models.StudentPaymentPermission, error)
	Update(ctx context.Context, record models.StudentPaymentPermission) error
}

// PermissionService implements the grade-view permission engine for the
// grade-permission screen: the payment-ratio auto-grant rule plus manual
// override semantics. The payment-management screen applies its own
// full-payment rule in PaymentService; the two policies stay separate.
type PermissionService struct {
	repo      permissionStore
	threshold float64
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPermissionService builds a PermissionService. Threshold is the paid
// ratio granting automatic access; values outside (0,1] fall back to 0.5.
func NewPermissionService(repo permissionStore, threshold float64, validate *validator.Validate, logger *zap.Logger) *PermissionService {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.5
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionService{repo: repo, threshold: threshold, validator: validate, logger: logger}
}

// QualifiesForAuto reports whether the paid ratio grants automatic access.
// A zero total never qualifies.
func (s *PermissionService) QualifiesForAuto(paid, total int64) bool {
	if total == 0 {
		return false
	}
	return float64(paid)/float64(total) >= s.threshold
}

// Initialize applies the seed-time policy: every qualifying record is
// force-set to visible with the auto-granted flag, overriding any seeded
// manual value. Non-qualifying records keep their seeded visibility but
// never carry the auto flag.
func (s *PermissionService) Initialize(ctx context.Context) error {
	records, err := s.repo.List(ctx, dto.PermissionFilter{})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load permission records")
	}

	granted := 0
	for _, rec := range records {
		auto := s.QualifiesForAuto(rec.PaidAmount, rec.TotalAmount)
		if auto {
			rec.CanViewGrades = true
			rec.IsAutoGranted = true
			granted++
		} else {
			rec.IsAutoGranted = false
		}
		rec.PaymentStatus = models.DerivePaymentStatus(rec.TotalAmount, rec.PaidAmount)
		if err := s.repo.Update(ctx, rec); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply initial permission policy")
		}
	}
	s.logger.Sugar().Infow("permission policy initialized", "records", len(records), "auto_granted", granted)
	return nil
}

// List returns the permission records for the grade-permission screen.
func (s *PermissionService) List(ctx context.Context, filter dto.PermissionFilter) ([]models.StudentPaymentPermission, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list permission records")
	}
	return records, nil
}

// Evaluate decides whether the requested grade-visibility change is
// applied. Revoking an auto-granted permission is rejected; granting
// against the automatic policy needs explicit confirmation. Evaluating the
// same request twice with unchanged payment data yields the same state.
func (s *PermissionService) Evaluate(ctx context.Context, studentID string, req dto.TogglePermissionRequest) (*dto.PermissionDecision, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid permission payload")
	}

	record, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student payment record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch permission record")
	}

	requested := *req.CanViewGrades
	autoQualifies := s.QualifiesForAuto(record.PaidAmount, record.TotalAmount)

	if !requested && autoQualifies {
		// The auto-grant is a floor: it only moves when the paid ratio
		// drops, never through the disable path.
		return nil, appErrors.ErrAutoGrantProtected
	}

	if requested && !autoQualifies && !req.Confirmed {
		return &dto.PermissionDecision{
			RequiresConfirmation: true,
			AutoQualifies:        autoQualifies,
			Record:               *record,
		}, nil
	}

	record.CanViewGrades = requested
	record.IsAutoGranted = requested && autoQualifies
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, *record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update permission record")
	}

	s.logger.Sugar().Infow("grade permission updated",
		"student_id", studentID,
		"can_view_grades", record.CanViewGrades,
		"is_auto_granted", record.IsAutoGranted,
	)

	return &dto.PermissionDecision{
		Accepted:      true,
		AutoQualifies: autoQualifies,
		Record:        *record,
	}, nil
}

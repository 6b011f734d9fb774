package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/internal/repository"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
)

type mockPermissionRepo struct {
	records map[string]*models.StudentPaymentPermission
	order   []string
	listErr error
}

func newMockPermissionRepo(records ...models.StudentPaymentPermission) *mockPermissionRepo {
	repo := &mockPermissionRepo{records: make(map[string]*models.StudentPaymentPermission)}
	for _, rec := range records {
		copy := rec
		repo.records[rec.StudentID] = &copy
		repo.order = append(repo.order, rec.StudentID)
	}
	return repo
}

func (m *mockPermissionRepo) List(ctx context.Context, filter dto.PermissionFilter) ([]models.StudentPaymentPermission, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.StudentPaymentPermission
	for _, id := range m.order {
		out = append(out, *m.records[id])
	}
	return out, nil
}

func (m *mockPermissionRepo) FindByStudentID(ctx context.Context, studentID string) (*models.StudentPaymentPermission, error) {
	if rec, ok := m.records[studentID]; ok {
		copy := *rec
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockPermissionRepo) Update(ctx context.Context, record models.StudentPaymentPermission) error {
	copy := record
	m.records[record.StudentID] = &copy
	return nil
}

func boolPtr(v bool) *bool { return &v }

func TestPermissionServiceQualifiesForAuto(t *testing.T) {
	svc := NewPermissionService(newMockPermissionRepo(), 0.5, nil, nil)

	assert.True(t, svc.QualifiesForAuto(500_000, 1_000_000))
	assert.True(t, svc.QualifiesForAuto(1_000_000, 1_000_000))
	assert.False(t, svc.QualifiesForAuto(499_999, 1_000_000))
	assert.False(t, svc.QualifiesForAuto(0, 1_000_000))
	assert.False(t, svc.QualifiesForAuto(0, 0))
	assert.False(t, svc.QualifiesForAuto(100, 0))
}

func TestPermissionServiceInitializeForcesAutoGrants(t *testing.T) {
	repo := newMockPermissionRepo(
		// Qualifying but seeded invisible: policy overrides the seed.
		models.StudentPaymentPermission{StudentID: "u-001", TotalAmount: 1_000_000, PaidAmount: 500_000, CanViewGrades: false},
		// Non-qualifying but seeded visible: visibility survives, the auto flag does not.
		models.StudentPaymentPermission{StudentID: "u-002", TotalAmount: 1_000_000, PaidAmount: 300_000, CanViewGrades: true, IsAutoGranted: true},
	)
	svc := NewPermissionService(repo, 0.5, nil, nil)

	require.NoError(t, svc.Initialize(context.Background()))

	qualifying := repo.records["u-001"]
	assert.True(t, qualifying.CanViewGrades)
	assert.True(t, qualifying.IsAutoGranted)
	assert.Equal(t, models.PaymentStatusPending, qualifying.PaymentStatus)

	manual := repo.records["u-002"]
	assert.True(t, manual.CanViewGrades)
	assert.False(t, manual.IsAutoGranted)
}

func TestPermissionServiceEvaluateRejectsRevokingAutoGrant(t *testing.T) {
	repo := newMockPermissionRepo(models.StudentPaymentPermission{
		StudentID: "u-001", TotalAmount: 1_000_000, PaidAmount: 500_000,
		CanViewGrades: true, IsAutoGranted: true,
	})
	svc := NewPermissionService(repo, 0.5, nil, nil)

	decision, err := svc.Evaluate(context.Background(), "u-001", dto.TogglePermissionRequest{CanViewGrades: boolPtr(false)})
	require.Error(t, err)
	assert.Nil(t, decision)
	assert.Equal(t, appErrors.ErrAutoGrantProtected.Code, appErrors.FromError(err).Code)

	// Nothing moved.
	assert.True(t, repo.records["u-001"].CanViewGrades)
	assert.True(t, repo.records["u-001"].IsAutoGranted)
}

func TestPermissionServiceEvaluateManualGrantNeedsConfirmation(t *testing.T) {
	repo := newMockPermissionRepo(models.StudentPaymentPermission{
		StudentID: "u-002", TotalAmount: 1_000_000, PaidAmount: 300_000,
	})
	svc := NewPermissionService(repo, 0.5, nil, nil)

	decision, err := svc.Evaluate(context.Background(), "u-002", dto.TogglePermissionRequest{CanViewGrades: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, decision.RequiresConfirmation)
	assert.False(t, decision.Accepted)
	assert.False(t, repo.records["u-002"].CanViewGrades, "unconfirmed request must not mutate")

	decision, err = svc.Evaluate(context.Background(), "u-002", dto.TogglePermissionRequest{CanViewGrades: boolPtr(true), Confirmed: true})
	require.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.True(t, repo.records["u-002"].CanViewGrades)
	assert.False(t, repo.records["u-002"].IsAutoGranted, "manual grant never carries the auto flag")
}

func TestPermissionServiceEvaluateDisableManualGrant(t *testing.T) {
	repo := newMockPermissionRepo(models.StudentPaymentPermission{
		StudentID: "u-002", TotalAmount: 1_000_000, PaidAmount: 300_000,
		CanViewGrades: true,
	})
	svc := NewPermissionService(repo, 0.5, nil, nil)

	decision, err := svc.Evaluate(context.Background(), "u-002", dto.TogglePermissionRequest{CanViewGrades: boolPtr(false)})
	require.NoError(t, err)
	assert.True(t, decision.Accepted)
	assert.False(t, repo.records["u-002"].CanViewGrades)
}

func TestPermissionServiceEvaluateIsIdempotent(t *testing.T) {
	repo := newMockPermissionRepo(models.StudentPaymentPermission{
		StudentID: "u-001", TotalAmount: 1_000_000, PaidAmount: 600_000,
		CanViewGrades: true, IsAutoGranted: true,
	})
	svc := NewPermissionService(repo, 0.5, nil, nil)

	for i := 0; i < 3; i++ {
		decision, err := svc.Evaluate(context.Background(), "u-001", dto.TogglePermissionRequest{CanViewGrades: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, decision.Accepted)
		assert.True(t, decision.Record.CanViewGrades)
		assert.True(t, decision.Record.IsAutoGranted)
	}
}

func TestPermissionServiceEvaluateUnknownStudent(t *testing.T) {
	svc := NewPermissionService(newMockPermissionRepo(), 0.5, nil, nil)

	_, err := svc.Evaluate(context.Background(), "ghost", dto.TogglePermissionRequest{CanViewGrades: boolPtr(true)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPermissionServiceEvaluateRejectsMissingField(t *testing.T) {
	svc := NewPermissionService(newMockPermissionRepo(), 0.5, nil, nil)

	_, err := svc.Evaluate(context.Background(), "u-001", dto.TogglePermissionRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

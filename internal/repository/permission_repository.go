package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
)

// PermissionRepository stores the grade-permission screen records.
type PermissionRepository struct {
	mu      sync.RWMutex
	records map[string]*models.StudentPaymentPermission
	order   []string
}

// NewPermissionRepository builds a store from the seed slice.
func NewPermissionRepository(seed []models.StudentPaymentPermission) *PermissionRepository {
	r := &PermissionRepository{records: make(map[string]*models.StudentPaymentPermission, len(seed))}
	for i := range seed {
		rec := seed[i]
		r.records[rec.StudentID] = &rec
		r.order = append(r.order, rec.StudentID)
	}
	return r
}

// List returns records in seed order, applying the optional filter.
func (r *PermissionRepository) List(ctx context.Context, filter dto.PermissionFilter) ([]models.StudentPaymentPermission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	result := make([]models.StudentPaymentPermission, 0, len(r.order))
	for _, id := range r.order {
		rec := r.records[id]
		if filter.Semester != "" && rec.Semester != filter.Semester {
			continue
		}
		if search != "" && !matchesSearch(search, rec.StudentID, rec.StudentName, rec.StudentNameEn) {
			continue
		}
		result = append(result, *rec)
	}
	return result, nil
}

// FindByStudentID returns one record.
func (r *PermissionRepository) FindByStudentID(ctx context.Context, studentID string) (*models.StudentPaymentPermission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[studentID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

// Update replaces a stored record.
func (r *PermissionRepository) Update(ctx context.Context, record models.StudentPaymentPermission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.StudentID]; !ok {
		return ErrNotFound
	}
	r.records[record.StudentID] = &record
	return nil
}

func matchesSearch(search string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

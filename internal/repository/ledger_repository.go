package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/noah-isme/his-portal-api/internal/models"
)

// LedgerRepository stores the payment-management screen records. It is a
// separate collection from the grade-permission records: the two screens
// apply different grade-visibility policies to their own data.
type LedgerRepository struct {
	mu      sync.RWMutex
	records map[string]*models.PaymentRecord
	order   []string
}

// NewLedgerRepository builds a store from the seed slice.
func NewLedgerRepository(seed []models.PaymentRecord) *LedgerRepository {
	r := &LedgerRepository{records: make(map[string]*models.PaymentRecord, len(seed))}
	for i := range seed {
		rec := seed[i]
		r.records[rec.StudentID] = &rec
		r.order = append(r.order, rec.StudentID)
	}
	return r
}

// List returns records in seed order, applying the optional filter.
func (r *LedgerRepository) List(ctx context.Context, filter models.LedgerFilter) ([]models.PaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	result := make([]models.PaymentRecord, 0, len(r.order))
	for _, id := range r.order {
		rec := r.records[id]
		if filter.Status != "" && rec.PaymentStatus != filter.Status {
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
func (r *LedgerRepository) FindByStudentID(ctx context.Context, studentID string) (*models.PaymentRecord, error) {
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
func (r *LedgerRepository) Update(ctx context.Context, record models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.StudentID]; !ok {
		return ErrNotFound
	}
	r.records[record.StudentID] = &record
	return nil
}

// Summary aggregates the whole ledger.
func (r *LedgerRepository) Summary(ctx context.Context) (models.LedgerSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summary models.LedgerSummary
	for _, id := range r.order {
		rec := r.records[id]
		summary.TotalBilled += rec.TotalAmount
		summary.TotalCollected += rec.PaidAmount
		if rec.Remaining > 0 {
			summary.TotalOutstanding += rec.Remaining
		}
		switch rec.PaymentStatus {
		case models.PaymentStatusPaid:
			summary.PaidCount++
		case models.PaymentStatusPending:
			summary.PendingCount++
		case models.PaymentStatusOverdue:
			summary.OverdueCount++
		}
	}
	return summary, nil
}

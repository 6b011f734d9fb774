package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/his-portal-api/internal/models"
)

// ScheduleRepository stores schedule entries in insertion order. Nothing is
// deduplicated by day/time/room; overlapping entries coexist and the grid
// renderer stacks them.
type ScheduleRepository struct {
	mu      sync.RWMutex
	entries map[string]*models.Schedule
	order   []string
}

// NewScheduleRepository builds a store from the seed slice.
func NewScheduleRepository(seed []models.Schedule) *ScheduleRepository {
	r := &ScheduleRepository{entries: make(map[string]*models.Schedule, len(seed))}
	for i := range seed {
		s := seed[i]
		r.entries[s.ID] = &s
		r.order = append(r.order, s.ID)
	}
	return r
}

// List returns the entries matching the filter, in insertion order.
func (r *ScheduleRepository) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Schedule, 0, len(r.order))
	for _, id := range r.order {
		if s := r.entries[id]; filter.Matches(*s) {
			result = append(result, *s)
		}
	}
	return result, nil
}

// FindByID returns one entry.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

// Upsert inserts a new entry or replaces an existing one by ID. Replaced
// entries keep their position; new entries append.
func (r *ScheduleRepository) Upsert(ctx context.Context, entry models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.ID]; !ok {
		r.order = append(r.order, entry.ID)
	}
	r.entries[entry.ID] = &entry
	return nil
}

// Delete removes an entry by ID.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

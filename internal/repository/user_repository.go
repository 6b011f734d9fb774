package repository

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/his-portal-api/internal/models"
)

// UserRepository stores seeded portal accounts.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
	order []string
}

// NewUserRepository builds a store from the seed slice.
func NewUserRepository(seed []models.User) *UserRepository {
	r := &UserRepository{users: make(map[string]*models.User, len(seed))}
	for i := range seed {
		u := seed[i]
		r.users[u.ID] = &u
		r.order = append(r.order, u.ID)
	}
	return r
}

// FindByID returns the user with the given ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// FindByUsername returns the user with the given username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.users[id].Username == username {
			copied := *r.users[id]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// List returns all users in seed order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.users[id])
	}
	return result, nil
}

// UpdateLastLogin stamps the last successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &ts
	return nil
}

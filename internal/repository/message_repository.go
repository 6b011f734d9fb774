package repository

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/his-portal-api/internal/models"
)

// MessageRepository stores portal messages in send order. The status
// transitions are applied under the store lock so a delayed delivery task
// and a concurrent read action cannot interleave.
type MessageRepository struct {
	mu       sync.RWMutex
	messages map[string]*models.Message
	order    []string
}

// NewMessageRepository builds a store from the seed slice.
func NewMessageRepository(seed []models.Message) *MessageRepository {
	r := &MessageRepository{messages: make(map[string]*models.Message, len(seed))}
	for i := range seed {
		m := seed[i]
		r.messages[m.ID] = &m
		r.order = append(r.order, m.ID)
	}
	return r
}

// Insert appends a new message.
func (r *MessageRepository) Insert(ctx context.Context, message models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[message.ID] = &message
	r.order = append(r.order, message.ID)
	return nil
}

// FindByID returns one message.
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *m
	return &copied, nil
}

// ListInbox returns the messages addressed to userID, newest last.
func (r *MessageRepository) ListInbox(ctx context.Context, userID string) ([]models.Message, error) {
	return r.list(func(m *models.Message) bool { return m.ReceiverID == userID })
}

// ListOutbox returns the messages sent by userID, newest last.
func (r *MessageRepository) ListOutbox(ctx context.Context, userID string) ([]models.Message, error) {
	return r.list(func(m *models.Message) bool { return m.SenderID == userID })
}

// CountUnread reports how many inbox messages have not been read yet.
func (r *MessageRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range r.order {
		m := r.messages[id]
		if m.ReceiverID == userID && m.Status != models.MessageStatusRead {
			count++
		}
	}
	return count, nil
}

// MarkDelivered advances sent -> delivered. It reports false without
// mutating when the message already moved past sent, so a late delivery
// task can never overwrite a read status.
func (r *MessageRepository) MarkDelivered(ctx context.Context, id string, ts time.Time) (*models.Message, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	if m.Status != models.MessageStatusSent {
		copied := *m
		return &copied, false, nil
	}
	m.Status = models.MessageStatusDelivered
	m.DeliveredAt = &ts
	copied := *m
	return &copied, true, nil
}

// MarkRead advances to the terminal read status. Reports false without
// mutating when the message was already read.
func (r *MessageRepository) MarkRead(ctx context.Context, id string, ts time.Time) (*models.Message, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	if m.Status == models.MessageStatusRead {
		copied := *m
		return &copied, false, nil
	}
	m.Status = models.MessageStatusRead
	m.ReadAt = &ts
	copied := *m
	return &copied, true, nil
}

func (r *MessageRepository) list(match func(*models.Message) bool) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Message, 0)
	for _, id := range r.order {
		if m := r.messages[id]; match(m) {
			result = append(result, *m)
		}
	}
	return result, nil
}

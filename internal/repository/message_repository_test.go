package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/his-portal-api/internal/models"
)

func TestMessageRepositoryDeliveredGuard(t *testing.T) {
	repo := NewMessageRepository([]models.Message{
		{ID: "m-001", SenderID: "u-101", ReceiverID: "u-001", Status: models.MessageStatusSent},
	})

	now := time.Now().UTC()

	read, advanced, err := repo.MarkRead(context.Background(), "m-001", now)
	require.NoError(t, err)
	assert.True(t, advanced)
	assert.Equal(t, models.MessageStatusRead, read.Status)

	// A delivery task firing after the read must not touch the record.
	late, advanced, err := repo.MarkDelivered(context.Background(), "m-001", now.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, models.MessageStatusRead, late.Status)
	assert.Nil(t, late.DeliveredAt)
}

func TestMessageRepositoryMarkDeliveredAdvancesOnce(t *testing.T) {
	repo := NewMessageRepository([]models.Message{
		{ID: "m-001", SenderID: "u-101", ReceiverID: "u-001", Status: models.MessageStatusSent},
	})

	first := time.Now().UTC()
	delivered, advanced, err := repo.MarkDelivered(context.Background(), "m-001", first)
	require.NoError(t, err)
	assert.True(t, advanced)
	require.NotNil(t, delivered.DeliveredAt)

	again, advanced, err := repo.MarkDelivered(context.Background(), "m-001", first.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, first, *again.DeliveredAt)
}

func TestMessageRepositoryMarkReadIdempotent(t *testing.T) {
	repo := NewMessageRepository([]models.Message{
		{ID: "m-001", SenderID: "u-101", ReceiverID: "u-001", Status: models.MessageStatusDelivered},
	})

	first := time.Now().UTC()
	_, advanced, err := repo.MarkRead(context.Background(), "m-001", first)
	require.NoError(t, err)
	assert.True(t, advanced)

	again, advanced, err := repo.MarkRead(context.Background(), "m-001", first.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, first, *again.ReadAt)
}

func TestMessageRepositoryMailboxQueries(t *testing.T) {
	repo := NewMessageRepository([]models.Message{
		{ID: "m-001", SenderID: "u-101", ReceiverID: "u-001", Status: models.MessageStatusRead},
		{ID: "m-002", SenderID: "u-101", ReceiverID: "u-001", Status: models.MessageStatusDelivered},
		{ID: "m-003", SenderID: "u-001", ReceiverID: "u-101", Status: models.MessageStatusSent},
	})

	inbox, err := repo.ListInbox(context.Background(), "u-001")
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "m-001", inbox[0].ID)

	outbox, err := repo.ListOutbox(context.Background(), "u-001")
	require.NoError(t, err)
	require.Len(t, outbox, 1)
	assert.Equal(t, "m-003", outbox[0].ID)

	unread, err := repo.CountUnread(context.Background(), "u-001")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	_, err = repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/internal/repository"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
	"github.com/noah-isme/his-portal-api/pkg/jobs"
)

type messageStore interface {
	Insert(ctx context.Context, message models.Message) error
	FindByID(ctx context.Context, id string) (*models.Message, error)
	ListInbox(ctx context.Context, userID string) ([]models.Message, error)
	ListOutbox(ctx context.Context, userID string) ([]models.Message, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkDelivered(ctx context.Context, id string, ts time.Time) (*models.Message, bool, error)
	MarkRead(ctx context.Context, id string, ts time.Time) (*models.Message, bool, error)
}

type messageUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type deliveryScheduler interface {
	After(id string, delay time.Duration, task jobs.Task) error
	Cancel(id string) bool
}

type deliveryObserver interface {
	IncMessagesDelivered()
}

// MessageService drives the sent -> delivered -> read lifecycle. Delivery
// is a deferred task simulating network latency; opening the detail view
// marks the message read and cancels the pending task. Read always wins:
// the store only advances sent -> delivered, so a task that already fired
// cannot regress a read message.
type MessageService struct {
	repo          messageStore
	users         messageUserReader
	scheduler     deliveryScheduler
	deliveryDelay time.Duration
	metrics       deliveryObserver
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewMessageService builds a MessageService. metrics may be nil.
func NewMessageService(
	repo messageStore,
	users messageUserReader,
	scheduler deliveryScheduler,
	deliveryDelay time.Duration,
	metrics deliveryObserver,
	validate *validator.Validate,
	logger *zap.Logger,
) *MessageService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		repo:          repo,
		users:         users,
		scheduler:     scheduler,
		deliveryDelay: deliveryDelay,
		metrics:       metrics,
		validator:     validate,
		logger:        logger,
	}
}

// Send constructs a message in sent state and schedules the delivery
// transition. A missing receiver aborts without touching the store.
func (s *MessageService) Send(ctx context.Context, claims *models.JWTClaims, req dto.SendMessageRequest) (*models.Message, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid message payload")
	}

	priority := models.MessagePriority(req.Priority)
	if req.Priority == "" {
		priority = models.MessagePriorityNormal
	}
	if !models.ValidPriority(priority) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown message priority")
	}

	receiver, err := s.users.FindByID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.ErrReceiverNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve receiver")
	}

	message := models.Message{
		ID:           uuid.NewString(),
		SenderID:     claims.UserID,
		SenderName:   claims.FullName,
		ReceiverID:   receiver.ID,
		ReceiverName: receiver.FullName,
		Subject:      req.Subject,
		Content:      req.Content,
		Priority:     priority,
		Status:       models.MessageStatusSent,
		SentAt:       time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store message")
	}

	// Fire-and-forget: a scheduling failure downgrades to an undelivered
	// message, it does not fail the send.
	if err := s.scheduler.After(deliveryTaskID(message.ID), s.deliveryDelay, s.deliverTask(message.ID)); err != nil {
		s.logger.Sugar().Warnw("failed to schedule delivery", "message_id", message.ID, "error", err)
	}

	return &message, nil
}

// View returns a message detail. When the receiver opens it, the message
// becomes read and the pending delivery task is cancelled. Senders see the
// detail without a transition; anyone else is rejected.
func (s *MessageService) View(ctx context.Context, claims *models.JWTClaims, messageID string) (*models.Message, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	message, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "message not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch message")
	}

	switch claims.UserID {
	case message.ReceiverID:
	case message.SenderID:
		return message, nil
	default:
		return nil, appErrors.ErrForbidden
	}

	updated, advanced, err := s.repo.MarkRead(ctx, messageID, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark message read")
	}
	if advanced {
		s.scheduler.Cancel(deliveryTaskID(messageID))
	}
	return updated, nil
}

// Inbox lists the messages addressed to the caller.
func (s *MessageService) Inbox(ctx context.Context, claims *models.JWTClaims) ([]models.Message, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	messages, err := s.repo.ListInbox(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inbox")
	}
	return messages, nil
}

// Outbox lists the messages the caller sent.
func (s *MessageService) Outbox(ctx context.Context, claims *models.JWTClaims) ([]models.Message, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	messages, err := s.repo.ListOutbox(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list outbox")
	}
	return messages, nil
}

// Counts reports the caller's mailbox totals.
func (s *MessageService) Counts(ctx context.Context, claims *models.JWTClaims) (*dto.MailboxCounts, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	messages, err := s.repo.ListInbox(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inbox")
	}
	unread, err := s.repo.CountUnread(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread")
	}
	return &dto.MailboxCounts{Total: len(messages), Unread: unread}, nil
}

func (s *MessageService) deliverTask(messageID string) jobs.Task {
	return func(ctx context.Context) {
		_, advanced, err := s.repo.MarkDelivered(ctx, messageID, time.Now().UTC())
		if err != nil {
			s.logger.Sugar().Warnw("delivery transition failed", "message_id", messageID, "error", err)
			return
		}
		if !advanced {
			// Already read; the guard keeps the terminal status.
			return
		}
		if s.metrics != nil {
			s.metrics.IncMessagesDelivered()
		}
		s.logger.Sugar().Debugw("message delivered", "message_id", messageID)
	}
}

func deliveryTaskID(messageID string) string {
	return "deliver:" + messageID
}

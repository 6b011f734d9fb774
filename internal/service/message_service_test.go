package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/internal/repository"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
	"github.com/noah-isme/his-portal-api/pkg/jobs"
)

type stubUserReader struct {
	users map[string]*models.User
}

func (s *stubUserReader) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

// stubScheduler captures scheduled tasks so tests can fire them on demand.
type stubScheduler struct {
	tasks     map[string]jobs.Task
	cancelled []string
}

func newStubScheduler() *stubScheduler {
	return &stubScheduler{tasks: make(map[string]jobs.Task)}
}

func (s *stubScheduler) After(id string, delay time.Duration, task jobs.Task) error {
	s.tasks[id] = task
	return nil
}

func (s *stubScheduler) Cancel(id string) bool {
	s.cancelled = append(s.cancelled, id)
	_, ok := s.tasks[id]
	delete(s.tasks, id)
	return ok
}

func (s *stubScheduler) fire(t *testing.T, id string) {
	t.Helper()
	task, ok := s.tasks[id]
	require.True(t, ok, "no pending task %s", id)
	delete(s.tasks, id)
	task(context.Background())
}

type stubDeliveryObserver struct {
	delivered int
}

func (s *stubDeliveryObserver) IncMessagesDelivered() { s.delivered++ }

func messagingFixture() (*MessageService, *repository.MessageRepository, *stubScheduler, *stubDeliveryObserver) {
	repo := repository.NewMessageRepository(nil)
	users := &stubUserReader{users: map[string]*models.User{
		"u-001": {ID: "u-001", FullName: "Nguyen Van An", Role: models.RoleStudent},
		"u-101": {ID: "u-101", FullName: "Tran Thi Mai", Role: models.RoleTeacher},
	}}
	scheduler := newStubScheduler()
	observer := &stubDeliveryObserver{}
	svc := NewMessageService(repo, users, scheduler, 2*time.Second, observer, nil, nil)
	return svc, repo, scheduler, observer
}

func teacherClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-101", Role: models.RoleTeacher, FullName: "Tran Thi Mai"}
}

func studentClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-001", Role: models.RoleStudent, FullName: "Nguyen Van An"}
}

func TestMessageServiceSendSchedulesDelivery(t *testing.T) {
	svc, repo, scheduler, observer := messagingFixture()

	msg, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
		ReceiverID: "u-001", Subject: "Tuition reminder", Content: "Please settle the remaining balance.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusSent, msg.Status)
	assert.Equal(t, models.MessagePriorityNormal, msg.Priority)
	assert.Equal(t, "Nguyen Van An", msg.ReceiverName)
	assert.Len(t, scheduler.tasks, 1)

	scheduler.fire(t, "deliver:"+msg.ID)

	stored, err := repo.FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusDelivered, stored.Status)
	require.NotNil(t, stored.DeliveredAt)
	assert.Equal(t, 1, observer.delivered)
}

func TestMessageServiceSendUnknownReceiverAborts(t *testing.T) {
	svc, repo, scheduler, _ := messagingFixture()

	_, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
		ReceiverID: "ghost", Subject: "Hello", Content: "There",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrReceiverNotFound.Code, appErrors.FromError(err).Code)

	outbox, err := repo.ListOutbox(context.Background(), "u-101")
	require.NoError(t, err)
	assert.Empty(t, outbox, "aborted send must not store anything")
	assert.Empty(t, scheduler.tasks)
}

func TestMessageServiceSendRejectsUnknownPriority(t *testing.T) {
	svc, _, _, _ := messagingFixture()

	_, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
		ReceiverID: "u-001", Subject: "Hello", Content: "There", Priority: "critical",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMessageServiceReceiverViewMarksReadAndCancelsDelivery(t *testing.T) {
	svc, repo, scheduler, observer := messagingFixture()

	msg, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
		ReceiverID: "u-001", Subject: "Quick note", Content: "Read me before delivery fires.",
	})
	require.NoError(t, err)

	viewed, err := svc.View(context.Background(), studentClaims(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusRead, viewed.Status)
	require.NotNil(t, viewed.ReadAt)
	assert.Contains(t, scheduler.cancelled, "deliver:"+msg.ID)
	assert.Empty(t, scheduler.tasks)

	stored, err := repo.FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusRead, stored.Status)
	assert.Equal(t, 0, observer.delivered)
}

func TestMessageServiceLateDeliveryNeverDemotesRead(t *testing.T) {
	svc, repo, scheduler, observer := messagingFixture()

	msg, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
		ReceiverID: "u-001", Subject: "Race", Content: "Delivery task fires after the read.",
	})
	require.NoError(t, err)

	// Keep a handle on the task so it can still fire after cancellation,
	// mimicking a timer that went off before Cancel won the lock.
	task := scheduler.tasks["deliver:"+msg.ID]

	_, err = svc.View(context.Background(), studentClaims(), msg.ID)
	require.NoError(t, err)

	task(context.Background())

	stored, err := repo.FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusRead, stored.Status)
	assert.Nil(t, stored.DeliveredAt)
	assert.Equal(t, 0, observer.delivered)
}

func TestMessageServiceSenderViewDoesNotTransition(t *testing.T) {
	svc, repo, scheduler, _ := messagingFixture()

	msg, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
		ReceiverID: "u-001", Subject: "Sent copy", Content: "Sender peeks at the outbox detail.",
	})
	require.NoError(t, err)

	viewed, err := svc.View(context.Background(), teacherClaims(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusSent, viewed.Status)
	assert.Len(t, scheduler.tasks, 1, "delivery stays pending")

	stored, err := repo.FindByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusSent, stored.Status)
}

func TestMessageServiceViewRejectsThirdParty(t *testing.T) {
	svc, _, _, _ := messagingFixture()

	msg, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
		ReceiverID: "u-001", Subject: "Private", Content: "Not for others.",
	})
	require.NoError(t, err)

	outsider := &models.JWTClaims{UserID: "u-201", Role: models.RoleFinance}
	_, err = svc.View(context.Background(), outsider, msg.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestMessageServiceRepeatedViewKeepsFirstReadTimestamp(t *testing.T) {
	svc, _, scheduler, _ := messagingFixture()

	msg, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
		ReceiverID: "u-001", Subject: "Once", Content: "Read twice.",
	})
	require.NoError(t, err)

	first, err := svc.View(context.Background(), studentClaims(), msg.ID)
	require.NoError(t, err)
	cancels := len(scheduler.cancelled)

	second, err := svc.View(context.Background(), studentClaims(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ReadAt, second.ReadAt)
	assert.Len(t, scheduler.cancelled, cancels, "already-read view cancels nothing")
}

func TestMessageServiceCounts(t *testing.T) {
	svc, _, _, _ := messagingFixture()

	for _, subject := range []string{"one", "two", "three"} {
		_, err := svc.Send(context.Background(), teacherClaims(), dto.SendMessageRequest{
			ReceiverID: "u-001", Subject: subject, Content: "body",
		})
		require.NoError(t, err)
	}

	inbox, err := svc.Inbox(context.Background(), studentClaims())
	require.NoError(t, err)
	require.Len(t, inbox, 3)

	_, err = svc.View(context.Background(), studentClaims(), inbox[0].ID)
	require.NoError(t, err)

	counts, err := svc.Counts(context.Background(), studentClaims())
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 2, counts.Unread)

	outbox, err := svc.Outbox(context.Background(), teacherClaims())
	require.NoError(t, err)
	assert.Len(t, outbox, 3)
}

func TestMessageServiceRequiresClaims(t *testing.T) {
	svc, _, _, _ := messagingFixture()

	_, err := svc.Send(context.Background(), nil, dto.SendMessageRequest{ReceiverID: "u-001", Subject: "s", Content: "c"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = svc.Inbox(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

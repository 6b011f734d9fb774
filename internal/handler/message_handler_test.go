package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/middleware"
	"github.com/noah-isme/his-portal-api/internal/models"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
)

type messageServiceMock struct {
	sendResp   *models.Message
	sendErr    error
	sendClaims *models.JWTClaims
	viewResp   *models.Message
	viewErr    error
	inboxResp  []models.Message
	outboxResp []models.Message
	countsResp *dto.MailboxCounts
}

func (m *messageServiceMock) Send(ctx context.Context, claims *models.JWTClaims, req dto.SendMessageRequest) (*models.Message, error) {
	m.sendClaims = claims
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return m.sendResp, nil
}

func (m *messageServiceMock) View(ctx context.Context, claims *models.JWTClaims, messageID string) (*models.Message, error) {
	if m.viewErr != nil {
		return nil, m.viewErr
	}
	return m.viewResp, nil
}

func (m *messageServiceMock) Inbox(ctx context.Context, claims *models.JWTClaims) ([]models.Message, error) {
	return m.inboxResp, nil
}

func (m *messageServiceMock) Outbox(ctx context.Context, claims *models.JWTClaims) ([]models.Message, error) {
	return m.outboxResp, nil
}

func (m *messageServiceMock) Counts(ctx context.Context, claims *models.JWTClaims) (*dto.MailboxCounts, error) {
	return m.countsResp, nil
}

func TestMessageHandlerSendCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &messageServiceMock{sendResp: &models.Message{ID: "m-001", Status: models.MessageStatusSent}}
	handler := NewMessageHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.SendMessageRequest{ReceiverID: "u-001", Subject: "Hello", Content: "World"})
	req, _ := http.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-101", Role: models.RoleTeacher})

	handler.Send(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mock.sendClaims)
	assert.Equal(t, "u-101", mock.sendClaims.UserID)
}

func TestMessageHandlerSendReceiverNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &messageServiceMock{sendErr: appErrors.ErrReceiverNotFound}
	handler := NewMessageHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.SendMessageRequest{ReceiverID: "ghost", Subject: "Hello", Content: "World"})
	req, _ := http.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-101", Role: models.RoleTeacher})

	handler.Send(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrReceiverNotFound.Code, envelope.Error.Code)
}

func TestMessageHandlerSendInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewMessageHandler(&messageServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/messages", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Send(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageHandlerView(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &messageServiceMock{viewResp: &models.Message{ID: "m-001", Status: models.MessageStatusRead}}
	handler := NewMessageHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/messages/m-001", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "m-001"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-001", Role: models.RoleStudent})

	handler.View(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.Message `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.MessageStatusRead, envelope.Data.Status)
}

func TestMessageHandlerViewForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &messageServiceMock{viewErr: appErrors.ErrForbidden}
	handler := NewMessageHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/messages/m-001", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "m-001"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-999", Role: models.RoleStudent})

	handler.View(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMessageHandlerCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &messageServiceMock{countsResp: &dto.MailboxCounts{Total: 4, Unread: 2}}
	handler := NewMessageHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/messages/counts", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-001", Role: models.RoleStudent})

	handler.Counts(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.MailboxCounts `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 4, envelope.Data.Total)
	assert.Equal(t, 2, envelope.Data.Unread)
}

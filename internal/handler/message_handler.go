package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/his-portal-api/internal/dto"
	"github.com/noah-isme/his-portal-api/internal/models"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
	"github.com/noah-isme/his-portal-api/pkg/response"
)

type messageService interface {
	Send(ctx context.Context, claims *models.JWTClaims, req dto.SendMessageRequest) (*models.Message, error)
	View(ctx context.Context, claims *models.JWTClaims, messageID string) (*models.Message, error)
	Inbox(ctx context.Context, claims *models.JWTClaims) ([]models.Message, error)
	Outbox(ctx context.Context, claims *models.JWTClaims) ([]models.Message, error)
	Counts(ctx context.Context, claims *models.JWTClaims) (*dto.MailboxCounts, error)
}

// MessageHandler exposes the portal messaging endpoints.
type MessageHandler struct {
	service messageService
}

// NewMessageHandler builds a new handler.
func NewMessageHandler(service messageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send godoc
// @Summary Send a message to another account
// @Tags Messages
// @Accept json
// @Produce json
// @Param payload body dto.SendMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}
	message, err := h.service.Send(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// View godoc
// @Summary Open a message detail; the receiver's view marks it read
// @Tags Messages
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Envelope
// @Router /messages/{id} [get]
func (h *MessageHandler) View(c *gin.Context) {
	message, err := h.service.View(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, message)
}

// Inbox godoc
// @Summary List received messages
// @Tags Messages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /messages/inbox [get]
func (h *MessageHandler) Inbox(c *gin.Context) {
	messages, err := h.service.Inbox(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages)
}

// Outbox godoc
// @Summary List sent messages
// @Tags Messages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /messages/outbox [get]
func (h *MessageHandler) Outbox(c *gin.Context) {
	messages, err := h.service.Outbox(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages)
}

// Counts godoc
// @Summary Report mailbox totals and unread count
// @Tags Messages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /messages/counts [get]
func (h *MessageHandler) Counts(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts)
}

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

type paymentService interface {
	List(ctx context.Context, filter models.LedgerFilter) ([]models.PaymentRecord, error)
	Get(ctx context.Context, studentID string) (*models.PaymentRecord, error)
	Summary(ctx context.Context) (models.LedgerSummary, error)
	ApplyPayment(ctx context.Context, studentID string, req dto.ApplyPaymentRequest) (*models.PaymentRecord, error)
}

// PaymentHandler exposes the payment-management screen endpoints.
type PaymentHandler struct {
	service paymentService
}

// NewPaymentHandler builds a new handler.
func NewPaymentHandler(service paymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List godoc
// @Summary List payment ledger records
// @Tags Payments
// @Produce json
// @Param status query string false "Status filter (paid|pending|overdue)"
// @Param search query string false "Free-text search over id/name"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	filter := models.LedgerFilter{
		Status: models.PaymentStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// Get godoc
// @Summary Get one payment ledger record
// @Tags Payments
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /payments/{studentId} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Summary godoc
// @Summary Aggregate the ledger for the finance dashboard
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/summary [get]
func (h *PaymentHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Apply godoc
// @Summary Set a new paid amount and recompute derived fields
// @Tags Payments
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param payload body dto.ApplyPaymentRequest true "Payment payload"
// @Success 200 {object} response.Envelope
// @Router /payments/{studentId} [put]
func (h *PaymentHandler) Apply(c *gin.Context) {
	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}
	record, err := h.service.ApplyPayment(c.Request.Context(), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/pkg/response"
)

type exportService interface {
	LedgerCSV(ctx context.Context, filter models.LedgerFilter) ([]byte, string, error)
	LedgerPDF(ctx context.Context, filter models.LedgerFilter) ([]byte, string, error)
}

// ExportHandler serves finance ledger statement downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// LedgerCSV godoc
// @Summary Download the ledger as CSV
// @Tags Exports
// @Produce text/csv
// @Param status query string false "Status filter (paid|pending|overdue)"
// @Success 200 {file} file
// @Router /exports/ledger.csv [get]
func (h *ExportHandler) LedgerCSV(c *gin.Context) {
	content, filename, err := h.service.LedgerCSV(c.Request.Context(), ledgerFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", content)
}

// LedgerPDF godoc
// @Summary Download the ledger as a PDF statement
// @Tags Exports
// @Produce application/pdf
// @Param status query string false "Status filter (paid|pending|overdue)"
// @Success 200 {file} file
// @Router /exports/ledger.pdf [get]
func (h *ExportHandler) LedgerPDF(c *gin.Context) {
	content, filename, err := h.service.LedgerPDF(c.Request.Context(), ledgerFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", content)
}

func ledgerFilterFromQuery(c *gin.Context) models.LedgerFilter {
	return models.LedgerFilter{
		Status: models.PaymentStatus(c.Query("status")),
		Search: c.Query("search"),
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/his-portal-api/internal/models"
	appErrors "github.com/noah-isme/his-portal-api/pkg/errors"
	"github.com/noah-isme/his-portal-api/pkg/export"
)

var ledgerExportHeaders = []string{"Student ID", "Student Name", "Semester", "Total Amount", "Paid Amount", "Remaining", "Status"}

type exportLedgerReader interface {
	List(ctx context.Context, filter models.LedgerFilter) ([]models.PaymentRecord, error)
}

// ExportService renders finance ledger statements as CSV or PDF downloads.
type ExportService struct {
	ledger exportLedgerReader
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService builds an ExportService.
func NewExportService(ledger exportLedgerReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		ledger: ledger,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// LedgerCSV renders the filtered ledger as CSV bytes plus a filename.
func (s *ExportService) LedgerCSV(ctx context.Context, filter models.LedgerFilter) ([]byte, string, error) {
	dataset, _, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	content, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return content, exportFilename("csv"), nil
}

// LedgerPDF renders the filtered ledger as a PDF statement with summary
// totals appended.
func (s *ExportService) LedgerPDF(ctx context.Context, filter models.LedgerFilter) ([]byte, string, error) {
	dataset, summary, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	lines := []string{
		fmt.Sprintf("Total collected: %d", summary.TotalCollected),
		fmt.Sprintf("Total outstanding: %d", summary.TotalOutstanding),
	}
	content, err := s.pdf.Render(dataset, "Tuition Ledger Statement", lines)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return content, exportFilename("pdf"), nil
}

// dataset lists the filtered records and aggregates the summary over the
// same rows, so a filtered statement's totals match its own table.
func (s *ExportService) dataset(ctx context.Context, filter models.LedgerFilter) (export.Dataset, models.LedgerSummary, error) {
	records, err := s.ledger.List(ctx, filter)
	if err != nil {
		return export.Dataset{}, models.LedgerSummary{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ledger")
	}
	summary := summarizeRecords(records)

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.StudentID,
			rec.StudentName,
			rec.Semester,
			fmt.Sprintf("%d", rec.TotalAmount),
			fmt.Sprintf("%d", rec.PaidAmount),
			fmt.Sprintf("%d", rec.Remaining),
			string(rec.PaymentStatus),
		})
	}
	return export.Dataset{Headers: ledgerExportHeaders, Rows: rows}, summary, nil
}

func summarizeRecords(records []models.PaymentRecord) models.LedgerSummary {
	var summary models.LedgerSummary
	for _, rec := range records {
		summary.TotalBilled += rec.TotalAmount
		summary.TotalCollected += rec.PaidAmount
		if rec.Remaining > 0 {
			summary.TotalOutstanding += rec.Remaining
		}
		switch rec.PaymentStatus {
		case models.PaymentStatusPaid:
			summary.PaidCount++
		case models.PaymentStatusPending:
			summary.PendingCount++
		case models.PaymentStatusOverdue:
			summary.OverdueCount++
		}
	}
	return summary
}

func exportFilename(ext string) string {
	return fmt.Sprintf("ledger-%s.%s", time.Now().UTC().Format("20060102-150405"), ext)
}

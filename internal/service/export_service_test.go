package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/his-portal-api/internal/models"
	"github.com/noah-isme/his-portal-api/internal/repository"
)

func exportFixture() *ExportService {
	ledger := repository.NewLedgerRepository([]models.PaymentRecord{
		{StudentID: "u-001", StudentName: "Nguyen Van An", Semester: "2024-1", TotalAmount: 1_000_000, PaidAmount: 500_000, Remaining: 500_000, PaymentStatus: models.PaymentStatusPending},
		{StudentID: "u-002", StudentName: "Tran Thi Binh", Semester: "2024-1", TotalAmount: 1_000_000, PaidAmount: 300_000, Remaining: 700_000, PaymentStatus: models.PaymentStatusPending},
		{StudentID: "u-003", StudentName: "Le Van Cuong", Semester: "2024-1", TotalAmount: 1_200_000, PaidAmount: 1_200_000, Remaining: 0, PaymentStatus: models.PaymentStatusPaid, CanViewGrades: true},
	})
	return NewExportService(ledger, nil)
}

func TestExportServiceLedgerCSVAppliesFilter(t *testing.T) {
	svc := exportFixture()

	content, filename, err := svc.LedgerCSV(context.Background(), models.LedgerFilter{Status: models.PaymentStatusPending})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "ledger-"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	rows, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus the two pending records")
	assert.Equal(t, ledgerExportHeaders, rows[0])
	assert.Equal(t, "u-001", rows[1][0])
	assert.Equal(t, "u-002", rows[2][0])
}

func TestExportServiceLedgerPDF(t *testing.T) {
	svc := exportFixture()

	content, filename, err := svc.LedgerPDF(context.Background(), models.LedgerFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	require.NotEmpty(t, content)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestExportServiceSummaryMatchesFilteredRows(t *testing.T) {
	svc := exportFixture()

	// The statement totals must describe the rows it carries, not the
	// whole ledger.
	dataset, summary, err := svc.dataset(context.Background(), models.LedgerFilter{Status: models.PaymentStatusPending})
	require.NoError(t, err)
	require.Len(t, dataset.Rows, 2)
	assert.Equal(t, int64(2_000_000), summary.TotalBilled)
	assert.Equal(t, int64(800_000), summary.TotalCollected)
	assert.Equal(t, int64(1_200_000), summary.TotalOutstanding)
	assert.Equal(t, 2, summary.PendingCount)
	assert.Zero(t, summary.PaidCount)
}

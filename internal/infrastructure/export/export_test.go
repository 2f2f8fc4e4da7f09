package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

var (
	_ usecase.ReportRenderer = (*PDFRenderer)(nil)
	_ usecase.ReportRenderer = (*XLSXRenderer)(nil)
)

func sampleReport() (*domain.Report, []*domain.LedgerEntry) {
	d := decimal.RequireFromString
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	report := &domain.Report{
		ID:           "report-1",
		OwnerID:      "owner-1",
		Name:         domain.ReportName(domain.PeriodWeekly, start),
		Period:       domain.PeriodWeekly,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 6),
		TotalCashIn:  d("1000"),
		TotalCashOut: d("300"),
		TotalFees:    d("26"),
		NetProfit:    d("674"),
	}
	entries := []*domain.LedgerEntry{
		{
			Date: start.AddDate(0, 0, 1), Kind: domain.KindCashIn,
			Amount: d("1000"), FeePercentage: d("2"), FeeAmount: d("20"),
			ElectronicBalanceAfter: d("0"), CashBalanceAfter: d("520"),
		},
		{
			Date: start.AddDate(0, 0, 2), Kind: domain.KindCashOut,
			Amount: d("300"), FeePercentage: d("2"), FeeAmount: d("6"),
			ElectronicBalanceAfter: d("300"), CashBalanceAfter: d("226"),
		},
	}
	return report, entries
}

func TestPDFRenderer(t *testing.T) {
	report, entries := sampleReport()
	r := NewPDFRenderer()

	data, err := r.Render(report, entries)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output is not a PDF")
	assert.Equal(t, "application/pdf", r.ContentType())

	empty, err := r.Render(report, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))
}

func TestXLSXRenderer(t *testing.T) {
	report, entries := sampleReport()

	data, err := NewXLSXRenderer().Render(report, entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Weekly Report - Jan 01, 2024", title)

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Contains(t, rows, []string{"Net Profit", "674.00"})

	txRows, err := f.GetRows(entriesSheet)
	require.NoError(t, err)
	require.Len(t, txRows, 3)
	assert.Equal(t, entryHeader, txRows[0])
	assert.Equal(t, []string{"2024-01-02", "cash-in", "1000.00", "2.00", "20.00", "0.00", "520.00"}, txRows[1])
	assert.Equal(t, "cash-out", txRows[2][1])
}

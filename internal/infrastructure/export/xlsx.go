package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iho/gcashledger/internal/domain"
)

const (
	summarySheet = "Summary"
	entriesSheet = "Transactions"
)

// XLSXRenderer renders a report as a workbook with a summary sheet and a
// transactions sheet.
type XLSXRenderer struct{}

// NewXLSXRenderer creates a new XLSXRenderer.
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Render(report *domain.Report, entries []*domain.LedgerEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(entriesSheet); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(summarySheet, "A1", report.Name); err != nil {
		return nil, err
	}
	for i, line := range summaryRows(report) {
		row := i + 3
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", row), &[]any{line[0], line[1]}); err != nil {
			return nil, err
		}
	}

	header := make([]any, len(entryHeader))
	for i, h := range entryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(entriesSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, e := range entries {
		values := entryRow(e)
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		if err := f.SetSheetRow(entriesSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

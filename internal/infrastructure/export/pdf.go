package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/iho/gcashledger/internal/domain"
)

// PDFRenderer renders a report as an A4 PDF statement.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// Render writes the summary followed by one table row per entry.
func (r *PDFRenderer) Render(report *domain.Report, entries []*domain.LedgerEntry) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(report.Name, false)
	pdf.SetCreator("gcashledger", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, report.Name)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, line := range summaryRows(report) {
		pdf.CellFormat(50, 6, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, line[1], "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	widths := []float64{24, 20, 26, 16, 22, 30, 30}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range entryHeader {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, e := range entries {
		row := entryRow(e)
		for i, v := range row {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(entries) == 0 {
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, "No transactions in this period.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

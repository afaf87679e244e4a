package report

import (
	"bytes"
	"fmt"

	"shipvoid-backend/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// TopLabelDates is how many label dates the PDF summary lists
const TopLabelDates = 15

// SummaryPDF renders the run summary and the busiest label dates
func SummaryPDF(r *models.LoadResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Shipvoid Reconciliation Summary", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 6, "Run "+r.RunID, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Overview", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, kv := range summaryLines(r) {
		pdf.CellFormat(60, 7, kv[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(130, 7, truncate(kv[1], 80), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	busiest := Busiest(Pivot(r.Data), TopLabelDates)
	if len(busiest) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Containers by Label Date", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(95, 7, "Label Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(95, 7, "Containers", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, p := range busiest {
			label := p.LabelDate
			if label == "" {
				label = "(none)"
			}
			pdf.CellFormat(95, 6, label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(95, 6, fmt.Sprintf("%d", p.Count), "1", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

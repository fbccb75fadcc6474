package compliance

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ReportPDF renders the current score with its category breakdown.
func (s *Service) ReportPDF(ctx context.Context) ([]byte, error) {
	score, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Compliance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Overall score: %d (%s)", score.Overall, score.Trend))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Computed: %s", score.ComputedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Categories")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, category := range score.Categories {
		pdf.Cell(80, 7, category.Name)
		pdf.Cell(40, 7, fmt.Sprintf("%.1f / %.1f", category.Score, category.MaxScore))
		pdf.Cell(30, 7, fmt.Sprintf("w=%.2f", category.Weight))
		pdf.Cell(0, 7, category.Trend)
		pdf.Ln(6)
	}

	if len(score.Recommendations) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Recommendations")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, recommendation := range score.Recommendations {
			pdf.MultiCell(0, 6, "- "+recommendation, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package payroll

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PayslipPDF renders the full earnings and deductions breakdown of a record.
func (s *Service) PayslipPDF(ctx context.Context, recordID string) ([]byte, error) {
	data, err := s.store.GetPayslipData(ctx, recordID)
	if err != nil {
		return nil, err
	}
	record := data.Record

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Guard: %s (%s)", data.GuardName, data.Badge))
	pdf.Ln(7)
	if data.SiteName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Site: %s", data.SiteName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", record.Month, record.Year))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", record.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []struct {
		label string
		value string
	}{
		{"Base salary", record.BaseSalary.StringFixed(2)},
		{"Overtime", record.OvertimeAmount.StringFixed(2)},
		{"Night shift", record.NightShiftAmount.StringFixed(2)},
		{"Weekend", record.WeekendAmount.StringFixed(2)},
		{"Holiday", record.HolidayAmount.StringFixed(2)},
		{"Total earnings", record.TotalEarnings.StringFixed(2)},
	} {
		pdf.Cell(90, 7, line.label)
		pdf.Cell(0, 7, line.value)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []struct {
		label string
		value string
	}{
		{"Absence", record.AbsentDeduction.StringFixed(2)},
		{"Late penalty", record.LatePenalty.StringFixed(2)},
		{"Advance", record.AdvanceDeduction.StringFixed(2)},
		{"Other", record.OtherDeduction.StringFixed(2)},
		{"Total deductions", record.TotalDeductions.StringFixed(2)},
	} {
		pdf.Cell(90, 7, line.label)
		pdf.Cell(0, 7, line.value)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(90, 8, "Net salary")
	pdf.Cell(0, 8, record.NetSalary.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF produces the downloadable PDF report: a summary block followed by
// the numbered transaction list. gofpdf handles page breaks itself.
func RenderPDF(d Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Expense Tracker Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Generated: "+d.GeneratedAt.Format("Jan 2, 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Period: %s to %s", d.periodLabel(d.StartDate), d.periodLabel(d.EndDate)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Total Income: $"+d.TotalIncome.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Total Expense: $"+d.TotalExpense.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Balance: $"+d.Balance.StringFixed(2), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 8, "Transactions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, t := range d.Transactions {
		line := fmt.Sprintf("%d. %s - $%s (%s) - %s",
			i+1, t.Title, t.Amount.StringFixed(2), t.Category.Name, t.Date.Format("Jan 2, 2006"))
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

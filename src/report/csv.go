package report

import (
	"bytes"
	"encoding/csv"
)

// RenderCSV produces the CSV report body, one row per transaction.
func RenderCSV(d Data) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"title", "amount", "type", "category", "date", "notes", "paymentMethod"}); err != nil {
		return "", err
	}
	for _, t := range d.Transactions {
		row := []string{
			t.Title,
			t.Amount.StringFixed(2),
			t.Type,
			t.Category.Name,
			t.Date.Format("2006-01-02"),
			t.Notes,
			t.PaymentMethod,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

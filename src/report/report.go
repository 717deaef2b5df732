// Package report turns one filtered, ordered transaction set into the three
// export formats: PDF bytes, CSV text, and an HTML email body.
package report

import (
	"time"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
)

// Data is the single shape every renderer consumes. Transactions are ordered
// newest first, with their category names already joined.
type Data struct {
	GeneratedAt  time.Time
	StartDate    *time.Time
	EndDate      *time.Time
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	Transactions []models.Transaction
}

// Build computes the report totals over the already-filtered transactions.
func Build(transactions []models.Transaction, startDate, endDate *time.Time, now time.Time) Data {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			income = income.Add(t.Amount)
		case models.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}

	return Data{
		GeneratedAt:  now,
		StartDate:    startDate,
		EndDate:      endDate,
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		Transactions: transactions,
	}
}

func (d Data) periodLabel(t *time.Time) string {
	if t == nil {
		return "All"
	}
	return t.Format("Jan 2, 2006")
}

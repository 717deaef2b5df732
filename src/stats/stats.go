// Package stats computes the summary payload served by the stats endpoint:
// income/expense totals, the per-category breakdown, and the trailing
// six-month trend. All aggregation is decimal arithmetic over already
// user-scoped transactions.
package stats

import (
	"sort"
	"time"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
)

// TrailingMonths is the fixed width of the monthly trend window.
const TrailingMonths = 6

// WindowStart returns the trend cutoff: now minus six calendar months.
func WindowStart(now time.Time) time.Time {
	return now.AddDate(0, -TrailingMonths, 0)
}

// Summarize builds the full summary. filtered feeds the totals and the
// breakdown; trailing feeds the monthly trend. Empty inputs produce zeros and
// empty slices, never nils.
func Summarize(filtered, trailing []models.Transaction) models.StatsSummary {
	s := models.StatsSummary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, t := range filtered {
		switch t.Type {
		case models.TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case models.TypeExpense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	s.CategoryBreakdown = Breakdown(filtered)
	s.MonthlyTrend = MonthlyTrend(trailing)
	return s
}

// Breakdown groups transactions by (category, type) and sums their amounts,
// largest total first. Transactions whose category was deleted are skipped.
func Breakdown(transactions []models.Transaction) []models.CategoryTotal {
	type key struct {
		categoryID string
		txType     string
	}

	index := map[key]int{}
	breakdown := []models.CategoryTotal{}
	for _, t := range transactions {
		if t.Category.ID == "" {
			continue
		}
		k := key{t.Category.ID, t.Type}
		i, ok := index[k]
		if !ok {
			index[k] = len(breakdown)
			breakdown = append(breakdown, models.CategoryTotal{
				Type:     t.Type,
				Category: t.Category.Name,
				Icon:     t.Category.Icon,
				Color:    t.Category.Color,
				Total:    t.Amount,
			})
			continue
		}
		breakdown[i].Total = breakdown[i].Total.Add(t.Amount)
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total.GreaterThan(breakdown[j].Total)
	})
	return breakdown
}

// MonthlyTrend groups transactions by (year, month, type) and sums their
// amounts, sorted chronologically ascending.
func MonthlyTrend(transactions []models.Transaction) []models.MonthlyTotal {
	type key struct {
		year   int
		month  int
		txType string
	}

	index := map[key]int{}
	trend := []models.MonthlyTotal{}
	for _, t := range transactions {
		k := key{t.Date.Year(), int(t.Date.Month()), t.Type}
		i, ok := index[k]
		if !ok {
			index[k] = len(trend)
			trend = append(trend, models.MonthlyTotal{
				Year:  k.year,
				Month: k.month,
				Type:  t.Type,
				Total: t.Amount,
			})
			continue
		}
		trend[i].Total = trend[i].Total.Add(t.Amount)
	}

	sort.SliceStable(trend, func(i, j int) bool {
		if trend[i].Year != trend[j].Year {
			return trend[i].Year < trend[j].Year
		}
		if trend[i].Month != trend[j].Month {
			return trend[i].Month < trend[j].Month
		}
		return trend[i].Type < trend[j].Type
	})
	return trend
}

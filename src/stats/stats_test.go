package stats

import (
	"testing"
	"time"

	"fintrack-server/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(txType, categoryID, categoryName string, amount int64, date time.Time) models.Transaction {
	return models.Transaction{
		Type:   txType,
		Amount: decimal.NewFromInt(amount),
		Date:   date,
		Category: models.CategoryRef{
			ID:   categoryID,
			Name: categoryName,
		},
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.True(t, s.Balance.IsZero())
	assert.NotNil(t, s.CategoryBreakdown)
	assert.NotNil(t, s.MonthlyTrend)
	assert.Empty(t, s.CategoryBreakdown)
	assert.Empty(t, s.MonthlyTrend)
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	now := time.Now()
	filtered := []models.Transaction{
		tx(models.TypeIncome, "c1", "Salary", 1000, now),
		tx(models.TypeExpense, "c2", "Food & Dining", 300, now),
		tx(models.TypeExpense, "c2", "Food & Dining", 150, now),
	}

	s := Summarize(filtered, nil)

	assert.Equal(t, "1000", s.TotalIncome.String())
	assert.Equal(t, "450", s.TotalExpense.String())
	assert.True(t, s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpense)))
	assert.Equal(t, "550", s.Balance.String())
}

func TestBreakdownSumsMatchTotals(t *testing.T) {
	now := time.Now()
	filtered := []models.Transaction{
		tx(models.TypeExpense, "c1", "Food & Dining", 50, now),
		tx(models.TypeExpense, "c1", "Food & Dining", 25, now),
		tx(models.TypeExpense, "c2", "Travel", 200, now),
		tx(models.TypeIncome, "c3", "Salary", 1000, now),
	}

	s := Summarize(filtered, nil)

	expenseSum := decimal.Zero
	incomeSum := decimal.Zero
	for _, entry := range s.CategoryBreakdown {
		switch entry.Type {
		case models.TypeExpense:
			expenseSum = expenseSum.Add(entry.Total)
		case models.TypeIncome:
			incomeSum = incomeSum.Add(entry.Total)
		}
	}
	assert.True(t, expenseSum.Equal(s.TotalExpense))
	assert.True(t, incomeSum.Equal(s.TotalIncome))
}

func TestBreakdownGroupsAndSorts(t *testing.T) {
	now := time.Now()
	breakdown := Breakdown([]models.Transaction{
		tx(models.TypeExpense, "c1", "Food & Dining", 50, now),
		tx(models.TypeExpense, "c2", "Travel", 200, now),
		tx(models.TypeExpense, "c1", "Food & Dining", 25, now),
		tx(models.TypeIncome, "c1", "Food & Dining", 10, now),
	})

	// (c1, expense), (c2, expense) and (c1, income) are distinct groups
	require.Len(t, breakdown, 3)
	assert.Equal(t, "Travel", breakdown[0].Category)
	assert.Equal(t, "200", breakdown[0].Total.String())
	assert.Equal(t, "Food & Dining", breakdown[1].Category)
	assert.Equal(t, models.TypeExpense, breakdown[1].Type)
	assert.Equal(t, "75", breakdown[1].Total.String())
	assert.Equal(t, models.TypeIncome, breakdown[2].Type)
}

func TestBreakdownSkipsDanglingCategories(t *testing.T) {
	now := time.Now()
	breakdown := Breakdown([]models.Transaction{
		tx(models.TypeExpense, "", "", 50, now),
		tx(models.TypeExpense, "c1", "Travel", 10, now),
	})

	require.Len(t, breakdown, 1)
	assert.Equal(t, "Travel", breakdown[0].Category)
}

func TestMonthlyTrendGroupsByMonthAndType(t *testing.T) {
	trailing := []models.Transaction{
		tx(models.TypeExpense, "c1", "Food & Dining", 30, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)),
		tx(models.TypeExpense, "c1", "Food & Dining", 20, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)),
		tx(models.TypeIncome, "c2", "Salary", 500, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		tx(models.TypeExpense, "c1", "Food & Dining", 15, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
	}

	trend := MonthlyTrend(trailing)

	require.Len(t, trend, 3)
	assert.Equal(t, 2024, trend[0].Year)
	assert.Equal(t, 3, trend[0].Month)
	assert.Equal(t, "15", trend[0].Total.String())
	assert.Equal(t, 4, trend[1].Month)
	assert.Equal(t, models.TypeIncome, trend[1].Type)
	assert.Equal(t, 5, trend[2].Month)
	assert.Equal(t, "50", trend[2].Total.String())
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC), WindowStart(now))
}

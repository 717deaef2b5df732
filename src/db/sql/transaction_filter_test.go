package db

import (
	"testing"
	"time"

	"fintrack-server/src/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildTransactionWhereUserScopeAlwaysFirst(t *testing.T) {
	where, args := BuildTransactionWhere(models.TransactionFilter{UserID: "u1"})
	assert.Equal(t, "t.user_id = $1", where)
	assert.Equal(t, []any{"u1"}, args)
}

func TestBuildTransactionWhereIgnoresUnknownType(t *testing.T) {
	where, args := BuildTransactionWhere(models.TransactionFilter{UserID: "u1", Type: "transfer"})
	assert.Equal(t, "t.user_id = $1", where)
	assert.Len(t, args, 1)
}

func TestBuildTransactionWhereConjoinsFilters(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	where, args := BuildTransactionWhere(models.TransactionFilter{
		UserID:     "u1",
		Type:       "expense",
		CategoryID: "c1",
		StartDate:  &start,
		EndDate:    &end,
		Search:     "gro",
	})

	assert.Equal(t,
		"t.user_id = $1 AND t.type = $2 AND t.category_id = $3 AND t.date >= $4 AND t.date <= $5 AND (t.title ILIKE $6 OR t.notes ILIKE $6)",
		where)
	assert.Equal(t, []any{"u1", "expense", "c1", start, end, "%gro%"}, args)
}

func TestBuildTransactionWhereSingleDateBound(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	where, args := BuildTransactionWhere(models.TransactionFilter{UserID: "u1", StartDate: &start})
	assert.Equal(t, "t.user_id = $1 AND t.date >= $2", where)
	assert.Len(t, args, 2)

	where, args = BuildTransactionWhere(models.TransactionFilter{UserID: "u1", EndDate: &start})
	assert.Equal(t, "t.user_id = $1 AND t.date <= $2", where)
	assert.Len(t, args, 2)
}

func TestBuildTransactionWhereSearchArgNumbering(t *testing.T) {
	// The title/notes disjunction reuses one placeholder
	where, args := BuildTransactionWhere(models.TransactionFilter{UserID: "u1", Search: "coffee"})
	assert.Equal(t, "t.user_id = $1 AND (t.title ILIKE $2 OR t.notes ILIKE $2)", where)
	assert.Equal(t, []any{"u1", "%coffee%"}, args)
}

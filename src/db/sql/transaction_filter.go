package db

import (
	"fmt"
	"strings"

	"fintrack-server/src/models"
)

// BuildTransactionWhere compiles a filter into a WHERE fragment and its
// positional args. The user scope is always the first conjunct; the optional
// narrows are ANDed after it. A type value outside income/expense is ignored.
func BuildTransactionWhere(f models.TransactionFilter) (string, []any) {
	clauses := []string{"t.user_id = $1"}
	args := []any{f.UserID}

	if f.Type == models.TypeIncome || f.Type == models.TypeExpense {
		args = append(args, f.Type)
		clauses = append(clauses, fmt.Sprintf("t.type = $%d", len(args)))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		clauses = append(clauses, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		clauses = append(clauses, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		clauses = append(clauses, fmt.Sprintf("t.date <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(t.title ILIKE $%d OR t.notes ILIKE $%d)", n, n))
	}

	return strings.Join(clauses, " AND "), args
}

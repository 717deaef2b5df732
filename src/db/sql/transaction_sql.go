package db

import (
	"context"
	"fmt"
	"time"

	"fintrack-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectTransaction = `
	SELECT t.id, t.user_id, t.title, t.amount, t.type, t.date, t.notes,
	       t.payment_method, t.tags, t.created_at, t.updated_at,
	       c.id, c.name, c.type, c.icon, c.color
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id
`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	var catID, catName, catType, catIcon, catColor *string
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Amount,
		&t.Type,
		&t.Date,
		&t.Notes,
		&t.PaymentMethod,
		&t.Tags,
		&t.CreatedAt,
		&t.UpdatedAt,
		&catID,
		&catName,
		&catType,
		&catIcon,
		&catColor,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		t.Category = models.CategoryRef{
			ID:    *catID,
			Name:  *catName,
			Type:  *catType,
			Icon:  *catIcon,
			Color: *catColor,
		}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

// ListTransactions returns the rows matching the filter in the given order.
// A non-positive limit disables paging.
func ListTransactions(ctx context.Context, pool *pgxpool.Pool, f models.TransactionFilter, orderBy string, limit, offset int) ([]models.Transaction, error) {
	where, args := BuildTransactionWhere(f)
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s", selectTransaction, where, orderBy)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

func CountTransactions(ctx context.Context, pool *pgxpool.Pool, f models.TransactionFilter) (int, error) {
	where, args := BuildTransactionWhere(f)
	query := fmt.Sprintf("SELECT COUNT(*) FROM transactions t WHERE %s", where)

	var total int
	if err := pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// GetTransaction fetches by id alone; ownership is the caller's concern so
// that a missing row and a foreign row produce different outcomes.
func GetTransaction(ctx context.Context, pool *pgxpool.Pool, id string) (*models.Transaction, error) {
	query := selectTransaction + " WHERE t.id = $1"
	return scanTransaction(pool.QueryRow(ctx, query, id))
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, userID string, req models.TransactionRequest, date time.Time) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, title, amount, type, category_id, date, notes, payment_method, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	var id string
	err := pool.QueryRow(ctx, query,
		uuid.New().String(),
		userID,
		req.Title,
		req.Amount,
		req.Type,
		req.Category,
		date,
		req.Notes,
		req.PaymentMethod,
		tags,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return GetTransaction(ctx, pool, id)
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, id string, req models.TransactionRequest, date time.Time) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET title = $1, amount = $2, type = $3, category_id = $4, date = $5,
		    notes = $6, payment_method = $7, tags = $8, updated_at = NOW()
		WHERE id = $9
	`
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := pool.Exec(ctx, query,
		req.Title,
		req.Amount,
		req.Type,
		req.Category,
		date,
		req.Notes,
		req.PaymentMethod,
		tags,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return GetTransaction(ctx, pool, id)
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, id string) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

package db

import (
	"context"
	"errors"
	"fmt"

	"fintrack-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectUser = `
	SELECT id, name, email, password_hash, currency, monthly_budget,
	       budget_alert_threshold, email_notifications, profile_picture,
	       created_at, updated_at
	FROM users
`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var hash string
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&hash,
		&u.Currency,
		&u.MonthlyBudget,
		&u.BudgetAlertThreshold,
		&u.EmailNotifications,
		&u.ProfilePicture,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = []byte(hash)
	return &u, nil
}

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id string) (*models.User, error) {
	u, err := scanUser(pool.QueryRow(ctx, selectUser+" WHERE id = $1", id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	u, err := scanUser(pool.QueryRow(ctx, selectUser+" WHERE email = $1", email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return u, nil
}

// CreateUserWithDefaults inserts the user row and the 14 default categories in
// one transaction, so a failed seeding never leaves a category-less account.
func CreateUserWithDefaults(ctx context.Context, pool *pgxpool.Pool, name, email, hashedPassword, currency string) (*models.User, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	userID := uuid.New().String()
	query := `
		INSERT INTO users (id, name, email, password_hash, currency)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, query, userID, name, email, hashedPassword, currency); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	for _, c := range DefaultCategories() {
		_, err := tx.Exec(ctx, `
			INSERT INTO categories (id, user_id, name, type, icon, color, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		`, uuid.New().String(), userID, c.Name, c.Type, c.Icon, c.Color)
		if err != nil {
			return nil, fmt.Errorf("failed to seed default categories: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return GetUserByID(ctx, pool, userID)
}

func UpdateUser(ctx context.Context, pool *pgxpool.Pool, u *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, currency = $3, monthly_budget = $4,
		    budget_alert_threshold = $5, email_notifications = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := pool.Exec(ctx, query,
		u.Name,
		u.Email,
		u.Currency,
		u.MonthlyBudget,
		u.BudgetAlertThreshold,
		u.EmailNotifications,
		u.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return GetUserByID(ctx, pool, u.ID)
}

func UpdateProfilePicture(ctx context.Context, pool *pgxpool.Pool, userID, path string) error {
	_, err := pool.Exec(ctx, `UPDATE users SET profile_picture = $1, updated_at = NOW() WHERE id = $2`, path, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	return nil
}

func DeleteUser(ctx context.Context, pool *pgxpool.Pool, userID string) error {
	_, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

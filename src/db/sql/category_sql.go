package db

import (
	"context"
	"fmt"

	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const selectCategory = `
	SELECT id, user_id, name, type, icon, color, is_default, created_at, updated_at
	FROM categories
`

// DefaultCategories returns the 14 fixed categories seeded for every new user.
func DefaultCategories() []models.Category {
	return []models.Category{
		{Name: "Food & Dining", Type: models.TypeExpense, Icon: "🍔", Color: "#EF4444", IsDefault: true},
		{Name: "Shopping", Type: models.TypeExpense, Icon: "🛍️", Color: "#F59E0B", IsDefault: true},
		{Name: "Transportation", Type: models.TypeExpense, Icon: "🚗", Color: "#10B981", IsDefault: true},
		{Name: "Entertainment", Type: models.TypeExpense, Icon: "🎬", Color: "#8B5CF6", IsDefault: true},
		{Name: "Healthcare", Type: models.TypeExpense, Icon: "🏥", Color: "#EC4899", IsDefault: true},
		{Name: "Bills & Utilities", Type: models.TypeExpense, Icon: "💡", Color: "#6366F1", IsDefault: true},
		{Name: "Education", Type: models.TypeExpense, Icon: "📚", Color: "#3B82F6", IsDefault: true},
		{Name: "Travel", Type: models.TypeExpense, Icon: "✈️", Color: "#06B6D4", IsDefault: true},
		{Name: "Other Expenses", Type: models.TypeExpense, Icon: "📦", Color: "#64748B", IsDefault: true},
		{Name: "Salary", Type: models.TypeIncome, Icon: "💼", Color: "#10B981", IsDefault: true},
		{Name: "Freelance", Type: models.TypeIncome, Icon: "💻", Color: "#3B82F6", IsDefault: true},
		{Name: "Investment", Type: models.TypeIncome, Icon: "📈", Color: "#8B5CF6", IsDefault: true},
		{Name: "Business", Type: models.TypeIncome, Icon: "🏢", Color: "#F59E0B", IsDefault: true},
		{Name: "Other Income", Type: models.TypeIncome, Icon: "💰", Color: "#14B8A6", IsDefault: true},
	}
}

func ListCategories(ctx context.Context, pool *pgxpool.Pool, userID, categoryType string) ([]models.Category, error) {
	query := selectCategory + " WHERE user_id = $1"
	args := []any{userID}
	if categoryType == models.TypeIncome || categoryType == models.TypeExpense {
		query += " AND type = $2"
		args = append(args, categoryType)
	}
	query += " ORDER BY name"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func GetCategory(ctx context.Context, pool *pgxpool.Pool, id string) (*models.Category, error) {
	var c models.Category
	err := pool.QueryRow(ctx, selectCategory+" WHERE id = $1", id).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, c *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name, type, icon, color, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, type, icon, color, is_default, created_at, updated_at
	`
	var created models.Category
	err := pool.QueryRow(ctx, query, c.ID, c.UserID, c.Name, c.Type, c.Icon, c.Color, c.IsDefault).
		Scan(&created.ID, &created.UserID, &created.Name, &created.Type, &created.Icon, &created.Color, &created.IsDefault, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &created, nil
}

func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, c *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, type = $2, icon = $3, color = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, user_id, name, type, icon, color, is_default, created_at, updated_at
	`
	var updated models.Category
	err := pool.QueryRow(ctx, query, c.Name, c.Type, c.Icon, c.Color, c.ID).
		Scan(&updated.ID, &updated.UserID, &updated.Name, &updated.Type, &updated.Icon, &updated.Color, &updated.IsDefault, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &updated, nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, id string) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	PasswordHash         []byte          `json:"-"`
	Currency             string          `json:"currency"`
	MonthlyBudget        decimal.Decimal `json:"monthlyBudget"`
	BudgetAlertThreshold int             `json:"budgetAlertThreshold"`
	EmailNotifications   bool            `json:"emailNotifications"`
	ProfilePicture       *string         `json:"profilePicture"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

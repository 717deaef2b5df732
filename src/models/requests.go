package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Currency string `json:"currency"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TransactionRequest struct {
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod"`
	Tags          []string        `json:"tags"`
}

type CategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// UpdateProfileRequest uses pointers so omitted fields leave the stored
// value untouched.
type UpdateProfileRequest struct {
	Name                 *string          `json:"name"`
	Email                *string          `json:"email"`
	Currency             *string          `json:"currency"`
	MonthlyBudget        *decimal.Decimal `json:"monthlyBudget"`
	BudgetAlertThreshold *int             `json:"budgetAlertThreshold"`
	EmailNotifications   *bool            `json:"emailNotifications"`
}

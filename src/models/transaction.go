package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// CategoryRef is the joined category summary embedded in transaction payloads.
type CategoryRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type Transaction struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      CategoryRef     `json:"category"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod"`
	Tags          []string        `json:"tags"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TransactionFilter narrows a transaction query. UserID is always set by the
// server from the authenticated identity, never from caller input.
type TransactionFilter struct {
	UserID     string
	Type       string
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

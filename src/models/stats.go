package models

import "github.com/shopspring/decimal"

// CategoryTotal is one (category, type) group of the stats breakdown.
type CategoryTotal struct {
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Icon     string          `json:"icon"`
	Color    string          `json:"color"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyTotal is one (year, month, type) group of the trailing trend.
type MonthlyTotal struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
}

type StatsSummary struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpense      decimal.Decimal `json:"totalExpense"`
	Balance           decimal.Decimal `json:"balance"`
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
	MonthlyTrend      []MonthlyTotal  `json:"monthlyTrend"`
}

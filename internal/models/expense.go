package models

import (
	"github.com/shopspring/decimal"

	"spendwise/internal/engine"
)

// ExpenseKind distinguishes monthly (dated) from yearly (undated) expenses.
type ExpenseKind string

const (
	ExpenseKindMonthly ExpenseKind = "monthly"
	ExpenseKindYearly  ExpenseKind = "yearly"
)

// Expense is an ad-hoc expense. Month is nil for yearly expenses.
type Expense struct {
	Base
	UserID string          `gorm:"type:uuid;not null;index:idx_expenses_user_year" json:"user_id"`
	Name   string          `gorm:"not null" json:"name"`
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Month  *int            `json:"month,omitempty"`
	Year   int             `gorm:"not null;index:idx_expenses_user_year" json:"year"`
	Kind   ExpenseKind     `gorm:"not null" json:"kind"`
}

// ToEngine converts the row into the aggregation record.
func (e *Expense) ToEngine() engine.Expense {
	month := 0
	if e.Month != nil {
		month = *e.Month
	}
	return engine.Expense{
		ID:     e.ID,
		Name:   e.Name,
		Amount: e.Amount,
		Month:  month,
		Year:   e.Year,
		Kind:   engine.Kind(e.Kind),
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeKey names the kind of base income stored for a year.
type IncomeKey string

const (
	IncomeKeyMonthly IncomeKey = "monthlyIncome"
	IncomeKeyYearly  IncomeKey = "yearlyIncome"
)

// Income is a user's base income for a year.
type Income struct {
	Base
	UserID string          `gorm:"type:uuid;not null;uniqueIndex:idx_income_user_key_year" json:"user_id"`
	Key    IncomeKey       `gorm:"not null;uniqueIndex:idx_income_user_key_year" json:"key"`
	Year   int             `gorm:"not null;uniqueIndex:idx_income_user_key_year" json:"year"`
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
}

// IncomeOverride replaces the monthly income for one month of one year.
type IncomeOverride struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_income_override_month" json:"user_id"`
	Month     int             `gorm:"not null;uniqueIndex:idx_income_override_month" json:"month"`
	Year      int             `gorm:"not null;uniqueIndex:idx_income_override_month" json:"year"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

package models

import "github.com/shopspring/decimal"

// SavingsGoal is an amount the user wants left over by the end of a year.
type SavingsGoal struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"not null" json:"name"`
	TargetAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"target_amount"`
	Year         int             `gorm:"not null" json:"year"`
	Notes        string          `json:"notes,omitempty"`
}

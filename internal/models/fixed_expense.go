package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/engine"
)

// MonthSet is a sorted list of month numbers stored as a JSON array.
type MonthSet []int

// NewMonthSet validates, deduplicates and sorts months.
func NewMonthSet(months []int) (MonthSet, error) {
	seen := make(map[int]bool, len(months))
	set := make(MonthSet, 0, len(months))
	for _, m := range months {
		if !engine.ValidMonth(m) {
			return nil, fmt.Errorf("month %d out of range", m)
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		set = append(set, m)
	}
	sort.Ints(set)
	return set, nil
}

// Value implements driver.Valuer.
func (s MonthSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *MonthSet) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = MonthSet{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported MonthSet source %T", value)
	}
	var months []int
	if err := json.Unmarshal(raw, &months); err != nil {
		return err
	}
	*s = months
	return nil
}

// FixedExpense is a recurring expense applied to a set of months of a year.
type FixedExpense struct {
	Base
	UserID    string                 `gorm:"type:uuid;not null;index:idx_fixed_expenses_user_year" json:"user_id"`
	Name      string                 `gorm:"not null" json:"name"`
	Amount    decimal.Decimal        `gorm:"type:numeric(14,2);not null" json:"amount"`
	Months    MonthSet               `gorm:"type:jsonb;not null" json:"months"`
	Year      int                    `gorm:"not null;index:idx_fixed_expenses_user_year" json:"year"`
	Overrides []FixedExpenseOverride `gorm:"foreignKey:FixedExpenseID" json:"overrides,omitempty"`
}

// FixedExpenseOverride replaces a fixed expense's amount for one month of one
// year. Rows are hard-deleted when cleared.
type FixedExpenseOverride struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	FixedExpenseID string          `gorm:"type:uuid;not null;uniqueIndex:idx_fixed_override_month" json:"fixed_expense_id"`
	UserID         string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Month          int             `gorm:"not null;uniqueIndex:idx_fixed_override_month" json:"month"`
	Year           int             `gorm:"not null;uniqueIndex:idx_fixed_override_month" json:"year"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	EffectiveDate  time.Time       `json:"effective_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToEngine converts the definition and its loaded overrides. Only overrides
// for the definition's year are kept.
func (f *FixedExpense) ToEngine() engine.FixedExpense {
	overrides := make([]engine.Override, 0, len(f.Overrides))
	for _, o := range f.Overrides {
		if o.Year != f.Year {
			continue
		}
		overrides = append(overrides, engine.Override{Month: o.Month, Amount: o.Amount})
	}
	return engine.FixedExpense{
		ID:        f.ID,
		Name:      f.Name,
		Amount:    f.Amount,
		Months:    append([]int(nil), f.Months...),
		Year:      f.Year,
		Overrides: overrides,
	}
}

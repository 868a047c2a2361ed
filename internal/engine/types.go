// Package engine computes monthly budget figures from an immutable snapshot of
// expenses, fixed expenses, income and their per-month overrides.
//
// Every function in this package is pure: inputs are never mutated, nothing is
// cached, and identical inputs always produce identical results. Records are
// expected to be scoped to a single year by the caller.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind distinguishes dated monthly expenses from undated yearly ones.
type Kind string

const (
	KindMonthly Kind = "monthly"
	KindYearly  Kind = "yearly"
)

// Valid reports whether k is a known expense kind.
func (k Kind) Valid() bool {
	return k == KindMonthly || k == KindYearly
}

// Expense is an ad-hoc expense entered by the user.
type Expense struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Month  int             `json:"month,omitempty"` // 0 when undated
	Year   int             `json:"year"`
	Kind   Kind            `json:"kind"`
}

// Override replaces a base value (fixed expense amount or income) for one month.
type Override struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// FixedExpense is a recurring expense applied to a set of months of a year.
type FixedExpense struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Months    []int           `json:"months"`
	Year      int             `json:"year"`
	Overrides []Override      `json:"overrides,omitempty"`
}

// AppliesTo reports whether the definition is applicable in month.
func (f FixedExpense) AppliesTo(month int) bool {
	for _, m := range f.Months {
		if m == month {
			return true
		}
	}
	return false
}

// Input is the snapshot every aggregation runs against.
type Input struct {
	Expenses        []Expense
	Fixed           []FixedExpense
	IncomeBase      decimal.Decimal
	IncomeOverrides []Override
}

func (in Input) validate() error {
	for i, e := range in.Expenses {
		if e.Month != 0 && !ValidMonth(e.Month) {
			return invalid(fmt.Sprintf("expenses[%d].month", i), e.Month, "month must be between 1 and 12")
		}
		if !e.Kind.Valid() {
			return invalid(fmt.Sprintf("expenses[%d].kind", i), e.Kind, "kind must be monthly or yearly")
		}
	}
	return nil
}

package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is matched by every ValidationError via errors.Is.
var ErrInvalidInput = errors.New("invalid aggregation input")

// ValidationError reports structurally invalid input. The engine returns it
// instead of coercing bad values to zero.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Is lets callers test for ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// AmountFromFloat converts a float64 read at the storage or transport boundary
// into a decimal amount. NaN and ±Inf are rejected.
func AmountFromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, invalid(field, f, "amount must be a finite number")
	}
	return decimal.NewFromFloat(f), nil
}

// ValidMonth reports whether m is a calendar month number (1-12).
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"spendwise/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	testutil.AssertAmount(t, want, got)
}

func intPtr(i int) *int { return &i }

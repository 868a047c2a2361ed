package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestResolve(t *testing.T) {
	base := d("100")

	t.Run("no overrides returns base", func(t *testing.T) {
		assertDecimal(t, "100", Resolve(base, nil, 5))
	})

	t.Run("matching month returns override", func(t *testing.T) {
		overrides := []Override{{Month: 5, Amount: d("250")}}
		assertDecimal(t, "250", Resolve(base, overrides, 5))
	})

	t.Run("other month returns base", func(t *testing.T) {
		overrides := []Override{{Month: 5, Amount: d("250")}}
		assertDecimal(t, "100", Resolve(base, overrides, 6))
	})

	t.Run("duplicates resolve to first entry", func(t *testing.T) {
		overrides := []Override{
			{Month: 5, Amount: d("250")},
			{Month: 5, Amount: d("300")},
		}
		amount, ok := ResolveOverride(base, overrides, 5)
		assert.True(t, ok)
		assertDecimal(t, "250", amount)
	})

	t.Run("zero override is honoured", func(t *testing.T) {
		amount, ok := ResolveOverride(base, []Override{{Month: 2, Amount: decimal.Zero}}, 2)
		assert.True(t, ok)
		assert.True(t, amount.IsZero())
	})

	t.Run("out of range override never matches", func(t *testing.T) {
		overrides := []Override{{Month: 13, Amount: d("1")}}
		for m := 1; m <= 12; m++ {
			_, ok := ResolveOverride(base, overrides, m)
			assert.False(t, ok, "month %d", m)
		}
	})
}

func TestIndexOverrides(t *testing.T) {
	overrides := []Override{
		{Month: 3, Amount: d("10")},
		{Month: 3, Amount: d("20")},
		{Month: 4, Amount: d("30")},
	}
	idx := IndexOverrides(overrides)

	assert.Len(t, idx, 2)
	assert.True(t, idx.Has(3))
	assert.False(t, idx.Has(5))
	assertDecimal(t, "10", idx.Resolve(d("1"), 3))
	assertDecimal(t, "30", idx.Resolve(d("1"), 4))
	assertDecimal(t, "1", idx.Resolve(d("1"), 5))

	for m := 1; m <= 12; m++ {
		assert.True(t, idx.Resolve(d("1"), m).Equal(Resolve(d("1"), overrides, m)), "month %d", m)
	}
}

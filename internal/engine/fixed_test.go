package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandForMonth(t *testing.T) {
	rent := FixedExpense{
		ID:        "rent",
		Name:      "Rent",
		Amount:    d("1000"),
		Months:    []int{1, 2, 3, 4},
		Overrides: []Override{{Month: 3, Amount: d("1200")}},
	}
	insurance := FixedExpense{ID: "ins", Name: "Insurance", Amount: d("300"), Months: []int{1, 2, 3}}
	defs := []FixedExpense{rent, insurance}

	t.Run("excludes non-applicable months", func(t *testing.T) {
		items := ExpandForMonth(defs, 4)
		require.Len(t, items, 1)
		assert.Equal(t, "rent", items[0].DefinitionID)
	})

	t.Run("override takes precedence", func(t *testing.T) {
		items := ExpandForMonth(defs, 3)
		require.Len(t, items, 2)
		assert.True(t, items[0].Overridden)
		assertDecimal(t, "1200", items[0].Amount)
		assert.False(t, items[1].Overridden)

		items = ExpandForMonth(defs, 4)
		assert.False(t, items[0].Overridden)
		assertDecimal(t, "1000", items[0].Amount)
	})

	t.Run("preserves input order", func(t *testing.T) {
		items := ExpandForMonth([]FixedExpense{insurance, rent}, 1)
		require.Len(t, items, 2)
		assert.Equal(t, "Insurance", items[0].Name)
		assert.Equal(t, "Rent", items[1].Name)
	})

	t.Run("empty month set never appears", func(t *testing.T) {
		empty := FixedExpense{ID: "x", Name: "Orphan", Amount: d("50")}
		for m := 1; m <= 12; m++ {
			assert.Empty(t, ExpandForMonth([]FixedExpense{empty}, m))
		}
	})

	t.Run("no months", func(t *testing.T) {
		assert.Empty(t, ExpandForMonth(defs, 12))
		assertDecimal(t, "0", FixedTotal(defs, 12))
	})

	t.Run("total", func(t *testing.T) {
		assertDecimal(t, "1500", FixedTotal(defs, 3))
	})
}

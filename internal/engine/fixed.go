package engine

import "github.com/shopspring/decimal"

// FixedItem is the effective amount of one fixed expense in one month.
type FixedItem struct {
	DefinitionID string          `json:"definition_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Overridden   bool            `json:"overridden"`
}

// ExpandForMonth returns the fixed expenses applicable in month with their
// overrides resolved. Order follows defs; definitions without applicable
// months never appear.
func ExpandForMonth(defs []FixedExpense, month int) []FixedItem {
	items := make([]FixedItem, 0, len(defs))
	for _, def := range defs {
		if !def.AppliesTo(month) {
			continue
		}
		amount, overridden := ResolveOverride(def.Amount, def.Overrides, month)
		items = append(items, FixedItem{
			DefinitionID: def.ID,
			Name:         def.Name,
			Amount:       amount,
			Overridden:   overridden,
		})
	}
	return items
}

// FixedTotal sums the effective fixed expenses for month.
func FixedTotal(defs []FixedExpense, month int) decimal.Decimal {
	total := decimal.Zero
	for _, item := range ExpandForMonth(defs, month) {
		total = total.Add(item.Amount)
	}
	return total
}

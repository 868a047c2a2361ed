package engine

import "github.com/shopspring/decimal"

// Resolve returns the amount of the override for month, or base when none
// exists.
func Resolve(base decimal.Decimal, overrides []Override, month int) decimal.Decimal {
	amount, _ := ResolveOverride(base, overrides, month)
	return amount
}

// ResolveOverride is Resolve that also reports whether an override applied.
//
// At most one override per month is expected. When duplicates exist the first
// one in slice order wins; storage reads overrides oldest first, so the
// earliest created override is the effective one.
func ResolveOverride(base decimal.Decimal, overrides []Override, month int) (decimal.Decimal, bool) {
	for _, o := range overrides {
		if o.Month == month {
			return o.Amount, true
		}
	}
	return base, false
}

// OverrideIndex maps a month to its effective override amount.
type OverrideIndex map[int]decimal.Decimal

// IndexOverrides builds an OverrideIndex. Duplicate months keep the first
// entry, matching ResolveOverride.
func IndexOverrides(overrides []Override) OverrideIndex {
	idx := make(OverrideIndex, len(overrides))
	for _, o := range overrides {
		if _, seen := idx[o.Month]; seen {
			continue
		}
		idx[o.Month] = o.Amount
	}
	return idx
}

// Resolve returns the indexed override for month, or base.
func (idx OverrideIndex) Resolve(base decimal.Decimal, month int) decimal.Decimal {
	if amount, ok := idx[month]; ok {
		return amount
	}
	return base
}

// Has reports whether month carries an override.
func (idx OverrideIndex) Has(month int) bool {
	_, ok := idx[month]
	return ok
}

package engine

import "github.com/shopspring/decimal"

// Band is the color band a usage ratio falls into.
type Band string

const (
	BandHealthy    Band = "healthy"
	BandModerate   Band = "moderate"
	BandElevated   Band = "elevated"
	BandCritical   Band = "critical"
	BandOverBudget Band = "over_budget"
)

var (
	hundred      = decimal.NewFromInt(100)
	moderateFrom = decimal.NewFromInt(50)
	elevatedFrom = decimal.NewFromInt(70)
	criticalFrom = decimal.NewFromInt(85)
)

// Usage describes how much of the income was spent.
//
// Ratio is the raw percentage and may exceed 100. Percent is Ratio clamped to
// [0, 100] for display.
type Usage struct {
	Ratio      decimal.Decimal `json:"ratio"`
	Percent    decimal.Decimal `json:"percent"`
	Band       Band            `json:"band"`
	OverBudget bool            `json:"over_budget"`
}

// NewUsage computes usage of income by spent. Income of zero or less yields a
// zero ratio.
func NewUsage(spent, income decimal.Decimal) Usage {
	ratio := decimal.Zero
	if income.IsPositive() {
		ratio = spent.Div(income).Mul(hundred)
	}
	return Usage{
		Ratio:      ratio,
		Percent:    clampPercent(ratio),
		Band:       bandFor(ratio),
		OverBudget: ratio.GreaterThan(hundred),
	}
}

func clampPercent(ratio decimal.Decimal) decimal.Decimal {
	switch {
	case ratio.IsNegative():
		return decimal.Zero
	case ratio.GreaterThan(hundred):
		return hundred
	}
	return ratio
}

func bandFor(ratio decimal.Decimal) Band {
	switch {
	case ratio.LessThan(moderateFrom):
		return BandHealthy
	case ratio.LessThan(elevatedFrom):
		return BandModerate
	case ratio.LessThan(criticalFrom):
		return BandElevated
	case ratio.LessThanOrEqual(hundred):
		return BandCritical
	}
	return BandOverBudget
}

package engine

import "github.com/shopspring/decimal"

// MonthFigure holds the computed figures of one month.
type MonthFigure struct {
	Month     int             `json:"month"`
	AdHoc     decimal.Decimal `json:"ad_hoc"`
	Fixed     decimal.Decimal `json:"fixed"`
	Spent     decimal.Decimal `json:"spent"`
	Income    decimal.Decimal `json:"income"`
	Remaining decimal.Decimal `json:"remaining"`
	Usage     Usage           `json:"usage"`
}

// WindowFigure sums MonthFigures across a window. Usage is derived from the
// totals, not averaged from the months.
type WindowFigure struct {
	Months         []MonthFigure   `json:"months"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	Usage          Usage           `json:"usage"`
}

// Month returns the figure for m and whether m is part of the window.
func (w WindowFigure) Month(m int) (MonthFigure, bool) {
	for _, f := range w.Months {
		if f.Month == m {
			return f, true
		}
	}
	return MonthFigure{}, false
}

// YearFigure is the whole-year summary. Yearly expenses are added on top of
// the twelve monthly figures and appear in no month.
type YearFigure struct {
	Year           int             `json:"year"`
	Months         WindowFigure    `json:"months"`
	YearlyExpenses decimal.Decimal `json:"yearly_expenses"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	Usage          Usage           `json:"usage"`
}

// Aggregate computes per-month and total figures for months. Duplicate months
// are counted once; an empty window yields zero totals.
func Aggregate(months []int, in Input) (WindowFigure, error) {
	window, err := normalizeMonths("window", months)
	if err != nil {
		return WindowFigure{}, err
	}
	if err := in.validate(); err != nil {
		return WindowFigure{}, err
	}

	incomeIdx := IndexOverrides(in.IncomeOverrides)
	adHoc := monthlyAdHoc(in.Expenses)

	out := WindowFigure{
		Months:         make([]MonthFigure, 0, len(window)),
		TotalSpent:     decimal.Zero,
		TotalIncome:    decimal.Zero,
		TotalRemaining: decimal.Zero,
	}
	for _, m := range window {
		fig := monthFigure(m, adHoc[m], FixedTotal(in.Fixed, m), incomeIdx.Resolve(in.IncomeBase, m))
		out.Months = append(out.Months, fig)
		out.TotalSpent = out.TotalSpent.Add(fig.Spent)
		out.TotalIncome = out.TotalIncome.Add(fig.Income)
	}
	out.TotalRemaining = out.TotalIncome.Sub(out.TotalSpent)
	out.Usage = NewUsage(out.TotalSpent, out.TotalIncome)
	return out, nil
}

// SummarizeYear aggregates months 1 through 12 and adds the yearly expenses.
func SummarizeYear(year int, in Input) (YearFigure, error) {
	months, err := Aggregate(AllMonths(), in)
	if err != nil {
		return YearFigure{}, err
	}

	yearly := YearlyTotal(in.Expenses)
	spent := months.TotalSpent.Add(yearly)
	return YearFigure{
		Year:           year,
		Months:         months,
		YearlyExpenses: yearly,
		TotalSpent:     spent,
		TotalIncome:    months.TotalIncome,
		TotalRemaining: months.TotalIncome.Sub(spent),
		Usage:          NewUsage(spent, months.TotalIncome),
	}, nil
}

// YearlyTotal sums yearly expenses regardless of month.
func YearlyTotal(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Kind == KindYearly {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func monthlyAdHoc(expenses []Expense) map[int]decimal.Decimal {
	totals := make(map[int]decimal.Decimal)
	for _, e := range expenses {
		if e.Kind != KindMonthly || e.Month == 0 {
			continue
		}
		totals[e.Month] = totals[e.Month].Add(e.Amount)
	}
	return totals
}

func monthFigure(month int, adHoc, fixed, income decimal.Decimal) MonthFigure {
	spent := adHoc.Add(fixed)
	return MonthFigure{
		Month:     month,
		AdHoc:     adHoc,
		Fixed:     fixed,
		Spent:     spent,
		Income:    income,
		Remaining: income.Sub(spent),
		Usage:     NewUsage(spent, income),
	}
}

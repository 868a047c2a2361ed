package engine

import (
	"sort"
	"time"
)

// Period names a time window relative to a reference month.
type Period string

const (
	ThisMonth   Period = "this_month"
	LastMonth   Period = "last_month"
	Past3Months Period = "past_3_months"
	Past6Months Period = "past_6_months"
	EntireYear  Period = "entire_year"
)

// Periods lists every supported period.
var Periods = []Period{ThisMonth, LastMonth, Past3Months, Past6Months, EntireYear}

// Valid reports whether p is a supported period.
func (p Period) Valid() bool {
	for _, known := range Periods {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePeriod parses a period name such as "past_3_months".
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.Valid() {
		return "", invalid("period", s, "unknown period")
	}
	return p, nil
}

// MonthsForPeriod returns the months p denotes relative to referenceMonth.
// Rolling windows start at the reference month and walk backwards, wrapping
// from January to December; no year boundary is modelled.
func MonthsForPeriod(p Period, referenceMonth int) ([]int, error) {
	if !ValidMonth(referenceMonth) {
		return nil, invalid("reference_month", referenceMonth, "month must be between 1 and 12")
	}

	switch p {
	case ThisMonth:
		return []int{referenceMonth}, nil
	case LastMonth:
		return pastMonths(referenceMonth, 2)[1:], nil
	case Past3Months:
		return pastMonths(referenceMonth, 3), nil
	case Past6Months:
		return pastMonths(referenceMonth, 6), nil
	case EntireYear:
		return AllMonths(), nil
	}
	return nil, invalid("period", string(p), "unknown period")
}

// ChartMonths returns the months of p in plotting order: ascending for the
// entire year, otherwise oldest first ending at the reference month.
func ChartMonths(p Period, referenceMonth int) ([]int, error) {
	months, err := MonthsForPeriod(p, referenceMonth)
	if err != nil {
		return nil, err
	}
	if p == EntireYear {
		sort.Ints(months)
		return months, nil
	}
	sort.SliceStable(months, func(i, j int) bool {
		return distance(referenceMonth, months[i]) > distance(referenceMonth, months[j])
	})
	return months, nil
}

// AllMonths returns 1 through 12.
func AllMonths() []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

func pastMonths(referenceMonth, n int) []int {
	months := make([]int, n)
	for i := 0; i < n; i++ {
		months[i] = (referenceMonth-i-1+12)%12 + 1
	}
	return months
}

// distance is how many months back m lies from ref, in [0, 11].
func distance(ref, m int) int {
	return (ref - m + 12) % 12
}

// Window is an ordered, duplicate-free set of months under analysis.
type Window struct {
	Months    []int     `json:"months"`
	Reference time.Time `json:"reference"`
}

// NewWindow validates months and drops duplicates, keeping first occurrences.
func NewWindow(months []int, reference time.Time) (Window, error) {
	normalized, err := normalizeMonths("window", months)
	if err != nil {
		return Window{}, err
	}
	return Window{Months: normalized, Reference: reference}, nil
}

// WindowForPeriod builds the window of p relative to reference's month.
func WindowForPeriod(p Period, reference time.Time) (Window, error) {
	months, err := MonthsForPeriod(p, int(reference.Month()))
	if err != nil {
		return Window{}, err
	}
	return Window{Months: months, Reference: reference}, nil
}

func normalizeMonths(field string, months []int) ([]int, error) {
	out := make([]int, 0, len(months))
	seen := make(map[int]bool, len(months))
	for _, m := range months {
		if !ValidMonth(m) {
			return nil, invalid(field, m, "month must be between 1 and 12")
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}

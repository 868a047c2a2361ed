package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() Input {
	return Input{
		Expenses: []Expense{
			{ID: "e1", Name: "Groceries", Amount: d("5000"), Month: 1, Kind: KindMonthly},
			{ID: "e2", Name: "Fuel", Amount: d("3000"), Month: 1, Kind: KindMonthly},
			{ID: "e3", Name: "Car tax", Amount: d("8000"), Kind: KindYearly},
		},
		Fixed: []FixedExpense{{
			ID:        "f1",
			Name:      "Rent",
			Amount:    d("15000"),
			Months:    []int{1, 2, 3},
			Overrides: []Override{{Month: 1, Amount: d("18000")}},
		}},
		IncomeBase: d("40000"),
	}
}

func TestAggregate_MatchesManualSum(t *testing.T) {
	fig, err := Aggregate([]int{1}, sampleInput())
	require.NoError(t, err)
	require.Len(t, fig.Months, 1)

	m := fig.Months[0]
	assert.Equal(t, 1, m.Month)
	assertDecimal(t, "8000", m.AdHoc)
	assertDecimal(t, "18000", m.Fixed)
	assertDecimal(t, "26000", m.Spent)
	assertDecimal(t, "40000", m.Income)
	assertDecimal(t, "14000", m.Remaining)
	assertDecimal(t, "26000", fig.TotalSpent)
	assertDecimal(t, "14000", fig.TotalRemaining)
}

func TestAggregate_YearlyExpensesExcluded(t *testing.T) {
	in := sampleInput()
	in.Expenses = append(in.Expenses, Expense{ID: "e4", Name: "Dated yearly", Amount: d("777"), Month: 2, Kind: KindYearly})

	fig, err := Aggregate(AllMonths(), in)
	require.NoError(t, err)

	feb, ok := fig.Month(2)
	require.True(t, ok)
	assertDecimal(t, "15000", feb.Spent)
	// 26000 in January, 15000 in February and March.
	assertDecimal(t, "56000", fig.TotalSpent)
}

func TestAggregate_IncomeOverrides(t *testing.T) {
	in := sampleInput()
	in.IncomeOverrides = []Override{{Month: 2, Amount: d("10000")}}

	fig, err := Aggregate([]int{1, 2}, in)
	require.NoError(t, err)
	assertDecimal(t, "50000", fig.TotalIncome)
	assertDecimal(t, "41000", fig.TotalSpent)
	assertDecimal(t, "9000", fig.TotalRemaining)

	feb, _ := fig.Month(2)
	assertDecimal(t, "150", feb.Usage.Ratio)
	assertDecimal(t, "100", feb.Usage.Percent)
	assert.True(t, feb.Usage.OverBudget)
}

func TestAggregate_UsageFromTotals(t *testing.T) {
	in := Input{
		Expenses: []Expense{
			{Amount: d("90"), Month: 1, Kind: KindMonthly},
			{Amount: d("10"), Month: 2, Kind: KindMonthly},
		},
		IncomeBase:      d("100"),
		IncomeOverrides: []Override{{Month: 2, Amount: d("300")}},
	}

	fig, err := Aggregate([]int{1, 2}, in)
	require.NoError(t, err)
	// 100 / 400, not the mean of 90% and 3.33%.
	assertDecimal(t, "25", fig.Usage.Ratio)
}

func TestAggregate_EmptyWindow(t *testing.T) {
	fig, err := Aggregate(nil, sampleInput())
	require.NoError(t, err)
	assert.Empty(t, fig.Months)
	assert.True(t, fig.TotalSpent.IsZero())
	assert.True(t, fig.TotalIncome.IsZero())
	assert.True(t, fig.TotalRemaining.IsZero())
}

func TestAggregate_DuplicateMonthsCountedOnce(t *testing.T) {
	once, err := Aggregate([]int{1}, sampleInput())
	require.NoError(t, err)
	twice, err := Aggregate([]int{1, 1}, sampleInput())
	require.NoError(t, err)

	assert.Len(t, twice.Months, 1)
	assert.True(t, once.TotalSpent.Equal(twice.TotalSpent))
}

func TestAggregate_Idempotent(t *testing.T) {
	in := sampleInput()
	first, err := Aggregate([]int{3, 1, 2}, in)
	require.NoError(t, err)
	second, err := Aggregate([]int{3, 1, 2}, in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleInput(), in)
}

func TestAggregate_InvalidInput(t *testing.T) {
	t.Run("window month out of range", func(t *testing.T) {
		_, err := Aggregate([]int{1, 13}, sampleInput())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("expense month out of range", func(t *testing.T) {
		in := sampleInput()
		in.Expenses[0].Month = 14
		_, err := Aggregate([]int{1}, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown kind", func(t *testing.T) {
		in := sampleInput()
		in.Expenses[0].Kind = "weekly"
		_, err := Aggregate([]int{1}, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSummarizeYear(t *testing.T) {
	fig, err := SummarizeYear(2024, sampleInput())
	require.NoError(t, err)

	assert.Equal(t, 2024, fig.Year)
	assert.Len(t, fig.Months.Months, 12)
	assertDecimal(t, "8000", fig.YearlyExpenses)
	assertDecimal(t, "56000", fig.Months.TotalSpent)
	assertDecimal(t, "64000", fig.TotalSpent)
	assertDecimal(t, "480000", fig.TotalIncome)
	assertDecimal(t, "416000", fig.TotalRemaining)
}

func TestYearlyTotal(t *testing.T) {
	assertDecimal(t, "8000", YearlyTotal(sampleInput().Expenses))
	assertDecimal(t, "0", YearlyTotal(nil))
}

func TestAmountFromFloat(t *testing.T) {
	amount, err := AmountFromFloat("amount", 12.5)
	require.NoError(t, err)
	assertDecimal(t, "12.5", amount)

	_, err = AmountFromFloat("amount", math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

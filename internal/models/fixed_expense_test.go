package models

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMonthSet(t *testing.T) {
	t.Run("sorts and deduplicates", func(t *testing.T) {
		set, err := NewMonthSet([]int{12, 3, 3, 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(set, MonthSet{1, 3, 12}) {
			t.Errorf("expected [1 3 12], got %v", set)
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		if _, err := NewMonthSet([]int{0}); err == nil {
			t.Error("expected error for month 0")
		}
		if _, err := NewMonthSet([]int{13}); err == nil {
			t.Error("expected error for month 13")
		}
	})
}

func TestMonthSet_ValueScan(t *testing.T) {
	v, err := MonthSet{1, 2, 3}.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "[1,2,3]" {
		t.Errorf("expected [1,2,3], got %v", v)
	}

	var fromBytes MonthSet
	if err := fromBytes.Scan([]byte("[4,5]")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(fromBytes, MonthSet{4, 5}) {
		t.Errorf("expected [4 5], got %v", fromBytes)
	}

	var fromNil MonthSet
	if err := fromNil.Scan(nil); err != nil || len(fromNil) != 0 {
		t.Errorf("expected empty set from NULL, got %v (%v)", fromNil, err)
	}

	var bad MonthSet
	if err := bad.Scan(42); err == nil {
		t.Error("expected error for unsupported source")
	}
}

func TestFixedExpense_ToEngine(t *testing.T) {
	f := FixedExpense{
		Base:   Base{ID: "fx"},
		Name:   "Rent",
		Amount: decimal.NewFromInt(1000),
		Months: MonthSet{1, 2},
		Year:   2024,
		Overrides: []FixedExpenseOverride{
			{Month: 1, Year: 2024, Amount: decimal.NewFromInt(1200)},
			{Month: 2, Year: 2023, Amount: decimal.NewFromInt(900)},
		},
	}

	got := f.ToEngine()
	if got.ID != "fx" || len(got.Months) != 2 {
		t.Fatalf("unexpected conversion: %+v", got)
	}
	if len(got.Overrides) != 1 || got.Overrides[0].Month != 1 {
		t.Errorf("expected only the 2024 override, got %+v", got.Overrides)
	}
}

func TestExpense_ToEngine(t *testing.T) {
	month := 4
	e := Expense{Amount: decimal.NewFromInt(5), Month: &month, Kind: ExpenseKindMonthly}
	if got := e.ToEngine(); got.Month != 4 || got.Kind != "monthly" {
		t.Errorf("unexpected conversion: %+v", got)
	}

	yearly := Expense{Amount: decimal.NewFromInt(5), Kind: ExpenseKindYearly}
	if got := yearly.ToEngine(); got.Month != 0 {
		t.Errorf("expected month 0 for undated expense, got %d", got.Month)
	}
}

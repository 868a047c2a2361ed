package services

import (
	"testing"

	"spendwise/internal/models"
	"spendwise/internal/testutil"
	"spendwise/internal/uuid"
)

func TestCreateFixedExpense(t *testing.T) {
	t.Run("months_normalized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		fixed, err := svc.CreateFixedExpense(user.ID, FixedExpenseInput{
			Name: "Rent", Amount: dec("1200"), Months: []int{6, 1, 6, 3}, Year: 2024,
		})
		testutil.AssertNoError(t, err)

		want := []int{1, 3, 6}
		if len(fixed.Months) != len(want) {
			t.Fatalf("expected months %v, got %v", want, fixed.Months)
		}
		for i := range want {
			if fixed.Months[i] != want[i] {
				t.Errorf("expected months %v, got %v", want, fixed.Months)
				break
			}
		}
	})

	t.Run("empty_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFixedExpense(user.ID, FixedExpenseInput{Name: "Rent", Amount: dec("1200"), Year: 2024})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("month_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateFixedExpense(user.ID, FixedExpenseInput{
			Name: "Rent", Amount: dec("1200"), Months: []int{0, 1}, Year: 2024,
		})
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})
}

func TestGetUserFixedExpenses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFixedExpenseService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	rent := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "1200", 1, 2, 3)
	testutil.CreateTestFixedOverride(t, db, rent, 2, "1000")
	testutil.CreateTestFixedExpense(t, db, user.ID, 2023, "50", 1)
	testutil.CreateTestFixedExpense(t, db, other.ID, 2024, "70", 1)

	fixed, err := svc.GetUserFixedExpenses(user.ID, 2024)
	testutil.AssertNoError(t, err)

	if len(fixed) != 1 {
		t.Fatalf("expected 1 fixed expense for 2024, got %d", len(fixed))
	}
	if len(fixed[0].Overrides) != 1 {
		t.Fatalf("expected overrides to be preloaded, got %d", len(fixed[0].Overrides))
	}
	assertAmount(t, "1000", fixed[0].Overrides[0].Amount)
}

func TestUpdateFixedExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFixedExpenseService(db)
	user := testutil.CreateTestUser(t, db)
	fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1)

	updated, err := svc.UpdateFixedExpense(user.ID, fixed.ID, FixedExpenseInput{
		Name: "Gym", Amount: dec("45.50"), Months: []int{12, 1}, Year: 2024,
	})
	testutil.AssertNoError(t, err)

	if updated.Name != "Gym" {
		t.Errorf("expected name Gym, got %s", updated.Name)
	}
	if len(updated.Months) != 2 || updated.Months[0] != 1 || updated.Months[1] != 12 {
		t.Errorf("expected months [1 12], got %v", updated.Months)
	}
	assertAmount(t, "45.50", updated.Amount)

	_, err = svc.UpdateFixedExpense(user.ID, uuid.New(), FixedExpenseInput{
		Name: "Gym", Amount: dec("1"), Months: []int{1}, Year: 2024,
	})
	testutil.AssertAppError(t, err, "FIXED_EXPENSE_NOT_FOUND")
}

func TestDeleteFixedExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFixedExpenseService(db)
	user := testutil.CreateTestUser(t, db)
	fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1, 2)
	testutil.CreateTestFixedOverride(t, db, fixed, 2, "0")

	testutil.AssertNoError(t, svc.DeleteFixedExpense(user.ID, fixed.ID))

	_, err := svc.GetFixedExpenseByID(user.ID, fixed.ID)
	testutil.AssertAppError(t, err, "FIXED_EXPENSE_NOT_FOUND")

	var count int64
	db.Model(&models.FixedExpenseOverride{}).Where("fixed_expense_id = ?", fixed.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected overrides removed, got %d", count)
	}
}

func TestSetOverride(t *testing.T) {
	t.Run("upsert_keeps_one_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1, 2, 3)

		first, err := svc.SetOverride(user.ID, fixed.ID, 2, 2024, dec("80"))
		testutil.AssertNoError(t, err)
		second, err := svc.SetOverride(user.ID, fixed.ID, 2, 0, dec("60"))
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected the same override row, got %s and %s", first.ID, second.ID)
		}
		assertAmount(t, "60", second.Amount)

		var count int64
		db.Model(&models.FixedExpenseOverride{}).Where("fixed_expense_id = ?", fixed.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 override row, got %d", count)
		}
	})

	t.Run("zero_amount_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1)

		override, err := svc.SetOverride(user.ID, fixed.ID, 1, 2024, dec("0"))
		testutil.AssertNoError(t, err)
		if !override.Amount.IsZero() {
			t.Errorf("expected zero override, got %s", override.Amount)
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1)

		_, err := svc.SetOverride(user.ID, fixed.ID, 1, 2024, dec("-1"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("month_not_applicable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1)

		_, err := svc.SetOverride(user.ID, fixed.ID, 5, 2024, dec("10"))
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1)

		_, err := svc.SetOverride(user.ID, fixed.ID, 13, 2024, dec("10"))
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})

	t.Run("year_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1)

		_, err := svc.SetOverride(user.ID, fixed.ID, 1, 2025, dec("10"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("other_users_fixed_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFixedExpenseService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		fixed := testutil.CreateTestFixedExpense(t, db, owner.ID, 2024, "100", 1)

		_, err := svc.SetOverride(other.ID, fixed.ID, 1, 2024, dec("10"))
		testutil.AssertAppError(t, err, "FIXED_EXPENSE_NOT_FOUND")
	})
}

func TestClearOverride(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFixedExpenseService(db)
	user := testutil.CreateTestUser(t, db)
	fixed := testutil.CreateTestFixedExpense(t, db, user.ID, 2024, "100", 1, 2)
	testutil.CreateTestFixedOverride(t, db, fixed, 2, "50")

	testutil.AssertNoError(t, svc.ClearOverride(user.ID, fixed.ID, 2, 2024))

	reloaded, err := svc.GetFixedExpenseByID(user.ID, fixed.ID)
	testutil.AssertNoError(t, err)
	if len(reloaded.Overrides) != 0 {
		t.Errorf("expected no overrides, got %d", len(reloaded.Overrides))
	}

	err = svc.ClearOverride(user.ID, fixed.ID, 2, 2024)
	testutil.AssertAppError(t, err, "OVERRIDE_NOT_FOUND")
}

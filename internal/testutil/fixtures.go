package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Amount parses a decimal literal and fails the test on bad input.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates a monthly expense dated to month of year.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, year, month int, amount string) *models.Expense {
	t.Helper()

	m := month
	expense := &models.Expense{
		UserID: userID,
		Name:   fmt.Sprintf("Expense %d", nextID()),
		Amount: Amount(t, amount),
		Month:  &m,
		Year:   year,
		Kind:   models.ExpenseKindMonthly,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestYearlyExpense creates an undated yearly expense.
func CreateTestYearlyExpense(t *testing.T, db *gorm.DB, userID string, year int, amount string) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID: userID,
		Name:   fmt.Sprintf("Yearly %d", nextID()),
		Amount: Amount(t, amount),
		Year:   year,
		Kind:   models.ExpenseKindYearly,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test yearly expense: %v", err)
	}
	return expense
}

// CreateTestFixedExpense creates a fixed expense applied to months of year.
func CreateTestFixedExpense(t *testing.T, db *gorm.DB, userID string, year int, amount string, months ...int) *models.FixedExpense {
	t.Helper()

	set, err := models.NewMonthSet(months)
	if err != nil {
		t.Fatalf("bad month set: %v", err)
	}
	fixed := &models.FixedExpense{
		UserID: userID,
		Name:   fmt.Sprintf("Fixed %d", nextID()),
		Amount: Amount(t, amount),
		Months: set,
		Year:   year,
	}
	if err := db.Create(fixed).Error; err != nil {
		t.Fatalf("failed to create test fixed expense: %v", err)
	}
	return fixed
}

// CreateTestFixedOverride overrides a fixed expense's amount for one month.
func CreateTestFixedOverride(t *testing.T, db *gorm.DB, fixed *models.FixedExpense, month int, amount string) *models.FixedExpenseOverride {
	t.Helper()

	override := &models.FixedExpenseOverride{
		FixedExpenseID: fixed.ID,
		UserID:         fixed.UserID,
		Month:          month,
		Year:           fixed.Year,
		Amount:         Amount(t, amount),
	}
	if err := db.Create(override).Error; err != nil {
		t.Fatalf("failed to create test fixed override: %v", err)
	}
	return override
}

// CreateTestIncome stores a base income value for year.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID string, key models.IncomeKey, year int, amount string) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID: userID,
		Key:    key,
		Year:   year,
		Amount: Amount(t, amount),
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestIncomeOverride replaces the income for one month of year.
func CreateTestIncomeOverride(t *testing.T, db *gorm.DB, userID string, year, month int, amount string) *models.IncomeOverride {
	t.Helper()

	override := &models.IncomeOverride{
		UserID: userID,
		Month:  month,
		Year:   year,
		Amount: Amount(t, amount),
	}
	if err := db.Create(override).Error; err != nil {
		t.Fatalf("failed to create test income override: %v", err)
	}
	return override
}

// CreateTestSavingsGoal creates a savings goal for year.
func CreateTestSavingsGoal(t *testing.T, db *gorm.DB, userID string, year int, target string) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:       userID,
		Name:         fmt.Sprintf("Goal %d", nextID()),
		TargetAmount: Amount(t, target),
		Year:         year,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test savings goal: %v", err)
	}
	return goal
}

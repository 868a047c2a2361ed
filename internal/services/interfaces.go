package services

import (
	"context"

	"github.com/shopspring/decimal"

	"spendwise/internal/engine"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ExpenseInput carries the writable fields of an ad-hoc expense.
type ExpenseInput struct {
	Name   string
	Amount decimal.Decimal
	Kind   models.ExpenseKind
	Month  *int
	Year   int
}

// ExpenseFilter holds optional filters for listing expenses.
type ExpenseFilter struct {
	Year  *int
	Kind  *models.ExpenseKind
	Month *int
}

// ExpenseServicer defines the contract for ad-hoc expense management.
type ExpenseServicer interface {
	CreateExpense(userID string, in ExpenseInput) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, in ExpenseInput) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

// FixedExpenseInput carries the writable fields of a fixed expense.
type FixedExpenseInput struct {
	Name   string
	Amount decimal.Decimal
	Months []int
	Year   int
}

// FixedExpenseServicer defines the contract for recurring expenses and their
// per-month overrides.
type FixedExpenseServicer interface {
	CreateFixedExpense(userID string, in FixedExpenseInput) (*models.FixedExpense, error)
	GetUserFixedExpenses(userID string, year int) ([]models.FixedExpense, error)
	GetFixedExpenseByID(userID, fixedExpenseID string) (*models.FixedExpense, error)
	UpdateFixedExpense(userID, fixedExpenseID string, in FixedExpenseInput) (*models.FixedExpense, error)
	DeleteFixedExpense(userID, fixedExpenseID string) error
	SetOverride(userID, fixedExpenseID string, month, year int, amount decimal.Decimal) (*models.FixedExpenseOverride, error)
	ClearOverride(userID, fixedExpenseID string, month, year int) error
}

// IncomeSummary is a user's income configuration for one year.
type IncomeSummary struct {
	Year          int                     `json:"year"`
	MonthlyIncome *decimal.Decimal        `json:"monthly_income,omitempty"`
	YearlyIncome  *decimal.Decimal        `json:"yearly_income,omitempty"`
	EffectiveBase decimal.Decimal         `json:"effective_base"`
	Overrides     []models.IncomeOverride `json:"overrides"`
}

// IncomeServicer defines the contract for base income and monthly overrides.
type IncomeServicer interface {
	SetIncome(userID string, key models.IncomeKey, year int, amount decimal.Decimal) (*models.Income, error)
	GetIncome(userID string, year int) (*IncomeSummary, error)
	SetIncomeOverride(userID string, month, year int, amount decimal.Decimal) (*models.IncomeOverride, error)
	ClearIncomeOverride(userID string, month, year int) error
}

// SavingsGoalProgress compares a goal with what the year leaves over.
type SavingsGoalProgress struct {
	GoalID    string          `json:"goal_id"`
	Name      string          `json:"name"`
	Year      int             `json:"year"`
	Target    decimal.Decimal `json:"target"`
	Saved     decimal.Decimal `json:"saved"`
	Remaining decimal.Decimal `json:"remaining"`
	Percent   decimal.Decimal `json:"percent"`
	Reached   bool            `json:"reached"`
}

// SavingsGoalServicer defines the contract for savings goals.
type SavingsGoalServicer interface {
	CreateSavingsGoal(userID, name string, target decimal.Decimal, year int, notes string) (*models.SavingsGoal, error)
	GetUserSavingsGoals(userID string, year *int) ([]models.SavingsGoal, error)
	GetSavingsGoalByID(userID, goalID string) (*models.SavingsGoal, error)
	DeleteSavingsGoal(userID, goalID string) error
	GetSavingsGoalProgress(ctx context.Context, userID, goalID string) (*SavingsGoalProgress, error)
}

// Dashboard is the window summary shown on the home page.
type Dashboard struct {
	Year           int                 `json:"year"`
	Period         engine.Period       `json:"period"`
	ReferenceMonth int                 `json:"reference_month"`
	Summary        engine.WindowFigure `json:"summary"`
	YearlyExpenses decimal.Decimal     `json:"yearly_expenses"`
}

// MonthDetail is everything the month page needs for one month.
type MonthDetail struct {
	Year             int                `json:"year"`
	Figure           engine.MonthFigure `json:"figure"`
	Expenses         []engine.Expense   `json:"expenses"`
	FixedItems       []engine.FixedItem `json:"fixed_items"`
	IncomeOverridden bool               `json:"income_overridden"`
}

// ChartPoint is one month of a chart series.
type ChartPoint struct {
	Month     int             `json:"month"`
	Spent     decimal.Decimal `json:"spent"`
	Income    decimal.Decimal `json:"income"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Chart is a plotting-ordered series plus its totals.
type Chart struct {
	Year   int           `json:"year"`
	Period engine.Period `json:"period"`
	Points []ChartPoint  `json:"points"`
	Usage  engine.Usage  `json:"usage"`
}

// SummaryServicer computes aggregated figures from one snapshot per call.
type SummaryServicer interface {
	GetDashboard(ctx context.Context, userID string, year int, period engine.Period) (*Dashboard, error)
	GetWindow(ctx context.Context, userID string, year int, months []int) (*engine.WindowFigure, error)
	GetMonth(ctx context.Context, userID string, year, month int) (*MonthDetail, error)
	GetChart(ctx context.Context, userID string, year int, period engine.Period) (*Chart, error)
	GetYear(ctx context.Context, userID string, year int) (*engine.YearFigure, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"spendwise/internal/engine"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// expenseService handles ad-hoc expense business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// validateExpense enforces the kind/month pairing: monthly expenses carry a
// month, yearly ones never do.
func validateExpense(in ExpenseInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !in.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Year < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "year is required")
	}

	switch in.Kind {
	case models.ExpenseKindMonthly:
		if in.Month == nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required for monthly expenses")
		}
		if !engine.ValidMonth(*in.Month) {
			return apperrors.ErrInvalidMonth
		}
	case models.ExpenseKindYearly:
		if in.Month != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "yearly expenses cannot have a month")
		}
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be monthly or yearly")
	}
	return nil
}

// CreateExpense records a new ad-hoc expense.
func (s *expenseService) CreateExpense(userID string, in ExpenseInput) (*models.Expense, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID: userID,
		Name:   strings.TrimSpace(in.Name),
		Amount: in.Amount,
		Month:  in.Month,
		Year:   in.Year,
		Kind:   in.Kind,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetUserExpenses returns a paginated list of expenses with optional filters.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if filter.Year != nil {
		base = base.Where("year = ?", *filter.Year)
	}
	if filter.Kind != nil {
		base = base.Where("kind = ?", *filter.Kind)
	}
	if filter.Month != nil {
		base = base.Where("month = ?", *filter.Month)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("year DESC, month DESC, created_at DESC").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID returns an expense if it belongs to the user.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense replaces every writable field of an expense.
func (s *expenseService) UpdateExpense(userID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	if err := validateExpense(in); err != nil {
		return nil, err
	}

	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	expense.Name = strings.TrimSpace(in.Name)
	expense.Amount = in.Amount
	expense.Month = in.Month
	expense.Year = in.Year
	expense.Kind = in.Kind
	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/engine"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// fixedExpenseService handles recurring expenses and their overrides.
type fixedExpenseService struct {
	db *gorm.DB
}

// NewFixedExpenseService creates a new FixedExpenseServicer.
func NewFixedExpenseService(db *gorm.DB) FixedExpenseServicer {
	return &fixedExpenseService{db: db}
}

func validateFixedExpense(in FixedExpenseInput) (models.MonthSet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Year < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year is required")
	}
	if len(in.Months) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one month is required")
	}
	months, err := models.NewMonthSet(in.Months)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidMonth, err.Error())
	}
	return months, nil
}

func preloadOverrides(tx *gorm.DB) *gorm.DB {
	return tx.Order("year, month")
}

// CreateFixedExpense creates a fixed expense applied to the given months.
func (s *fixedExpenseService) CreateFixedExpense(userID string, in FixedExpenseInput) (*models.FixedExpense, error) {
	months, err := validateFixedExpense(in)
	if err != nil {
		return nil, err
	}

	fixed := &models.FixedExpense{
		UserID: userID,
		Name:   strings.TrimSpace(in.Name),
		Amount: in.Amount,
		Months: months,
		Year:   in.Year,
	}
	if err := s.db.Create(fixed).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return fixed, nil
}

// GetUserFixedExpenses lists the user's fixed expenses for year with their
// overrides.
func (s *fixedExpenseService) GetUserFixedExpenses(userID string, year int) ([]models.FixedExpense, error) {
	fixed := make([]models.FixedExpense, 0)
	err := s.db.Preload("Overrides", preloadOverrides).
		Where("user_id = ? AND year = ?", userID, year).
		Order("created_at, id").
		Find(&fixed).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return fixed, nil
}

// GetFixedExpenseByID returns a fixed expense if it belongs to the user.
func (s *fixedExpenseService) GetFixedExpenseByID(userID, fixedExpenseID string) (*models.FixedExpense, error) {
	var fixed models.FixedExpense
	err := s.db.Preload("Overrides", preloadOverrides).
		Where("id = ? AND user_id = ?", fixedExpenseID, userID).
		First(&fixed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFixedExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &fixed, nil
}

// UpdateFixedExpense replaces the definition's fields. Existing overrides are
// kept; those for another year stop applying.
func (s *fixedExpenseService) UpdateFixedExpense(userID, fixedExpenseID string, in FixedExpenseInput) (*models.FixedExpense, error) {
	months, err := validateFixedExpense(in)
	if err != nil {
		return nil, err
	}

	fixed, err := s.GetFixedExpenseByID(userID, fixedExpenseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":   strings.TrimSpace(in.Name),
		"amount": in.Amount,
		"months": months,
		"year":   in.Year,
	}
	if err := s.db.Model(fixed).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetFixedExpenseByID(userID, fixedExpenseID)
}

// DeleteFixedExpense soft-deletes the definition and removes its overrides.
func (s *fixedExpenseService) DeleteFixedExpense(userID, fixedExpenseID string) error {
	fixed, err := s.GetFixedExpenseByID(userID, fixedExpenseID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fixed_expense_id = ?", fixed.ID).Delete(&models.FixedExpenseOverride{}).Error; err != nil {
			return err
		}
		return tx.Delete(fixed).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SetOverride sets the amount of a fixed expense for one month, replacing any
// existing override for that month. A year of zero means the definition's year.
func (s *fixedExpenseService) SetOverride(userID, fixedExpenseID string, month, year int, amount decimal.Decimal) (*models.FixedExpenseOverride, error) {
	if !engine.ValidMonth(month) {
		return nil, apperrors.ErrInvalidMonth
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "override amount cannot be negative")
	}

	fixed, err := s.GetFixedExpenseByID(userID, fixedExpenseID)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = fixed.Year
	}
	if year != fixed.Year {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "override year must match the fixed expense year")
	}
	if !fixed.ToEngine().AppliesTo(month) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidMonth, "fixed expense does not apply in that month")
	}

	var override models.FixedExpenseOverride
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("fixed_expense_id = ? AND month = ? AND year = ?", fixed.ID, month, year).
			First(&override).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			override = models.FixedExpenseOverride{
				FixedExpenseID: fixed.ID,
				UserID:         userID,
				Month:          month,
				Year:           year,
				Amount:         amount,
				EffectiveDate:  time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
			}
			return tx.Create(&override).Error
		case err != nil:
			return err
		}
		override.Amount = amount
		return tx.Save(&override).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &override, nil
}

// ClearOverride removes the override for one month so the base amount applies
// again.
func (s *fixedExpenseService) ClearOverride(userID, fixedExpenseID string, month, year int) error {
	if !engine.ValidMonth(month) {
		return apperrors.ErrInvalidMonth
	}

	fixed, err := s.GetFixedExpenseByID(userID, fixedExpenseID)
	if err != nil {
		return err
	}
	if year == 0 {
		year = fixed.Year
	}

	result := s.db.Where("fixed_expense_id = ? AND month = ? AND year = ?", fixed.ID, month, year).
		Delete(&models.FixedExpenseOverride{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOverrideNotFound
	}
	return nil
}

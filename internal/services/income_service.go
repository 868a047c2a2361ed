package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/engine"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// incomeService handles base income and monthly income overrides.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// SetIncome stores the base income of kind key for year, replacing any
// previous value.
func (s *incomeService) SetIncome(userID string, key models.IncomeKey, year int, amount decimal.Decimal) (*models.Income, error) {
	if key != models.IncomeKeyMonthly && key != models.IncomeKeyYearly {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "key must be monthlyIncome or yearlyIncome")
	}
	if year < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year is required")
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income cannot be negative")
	}

	var income models.Income
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND key = ? AND year = ?", userID, key, year).First(&income).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			income = models.Income{UserID: userID, Key: key, Year: year, Amount: amount}
			return tx.Create(&income).Error
		case err != nil:
			return err
		}
		income.Amount = amount
		return tx.Save(&income).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// GetIncome returns the base values and overrides configured for year.
func (s *incomeService) GetIncome(userID string, year int) (*IncomeSummary, error) {
	var rows []models.Income
	if err := s.db.Where("user_id = ? AND year = ?", userID, year).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	overrides := make([]models.IncomeOverride, 0)
	if err := s.db.Where("user_id = ? AND year = ?", userID, year).Order("month").Find(&overrides).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &IncomeSummary{
		Year:          year,
		EffectiveBase: incomeBase(rows),
		Overrides:     overrides,
	}
	for i := range rows {
		amount := rows[i].Amount
		switch rows[i].Key {
		case models.IncomeKeyMonthly:
			summary.MonthlyIncome = &amount
		case models.IncomeKeyYearly:
			summary.YearlyIncome = &amount
		}
	}
	return summary, nil
}

// SetIncomeOverride replaces the income of one month.
func (s *incomeService) SetIncomeOverride(userID string, month, year int, amount decimal.Decimal) (*models.IncomeOverride, error) {
	if !engine.ValidMonth(month) {
		return nil, apperrors.ErrInvalidMonth
	}
	if year < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year is required")
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income cannot be negative")
	}

	var override models.IncomeOverride
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).First(&override).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			override = models.IncomeOverride{UserID: userID, Month: month, Year: year, Amount: amount}
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

// ClearIncomeOverride removes the override for one month.
func (s *incomeService) ClearIncomeOverride(userID string, month, year int) error {
	if !engine.ValidMonth(month) {
		return apperrors.ErrInvalidMonth
	}

	result := s.db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Delete(&models.IncomeOverride{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOverrideNotFound
	}
	return nil
}

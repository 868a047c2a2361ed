package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/engine"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// savingsGoalService handles savings goals and their progress.
type savingsGoalService struct {
	db      *gorm.DB
	summary SummaryServicer
}

// NewSavingsGoalService creates a new SavingsGoalServicer. Progress is
// measured against the year summary computed by summary.
func NewSavingsGoalService(db *gorm.DB, summary SummaryServicer) SavingsGoalServicer {
	return &savingsGoalService{db: db, summary: summary}
}

// CreateSavingsGoal creates a goal for year.
func (s *savingsGoalService) CreateSavingsGoal(userID, name string, target decimal.Decimal, year int, notes string) (*models.SavingsGoal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !target.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target must be greater than zero")
	}
	if year < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year is required")
	}

	goal := &models.SavingsGoal{
		UserID:       userID,
		Name:         strings.TrimSpace(name),
		TargetAmount: target,
		Year:         year,
		Notes:        notes,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserSavingsGoals lists goals, optionally for one year.
func (s *savingsGoalService) GetUserSavingsGoals(userID string, year *int) ([]models.SavingsGoal, error) {
	query := s.db.Where("user_id = ?", userID)
	if year != nil {
		query = query.Where("year = ?", *year)
	}

	goals := make([]models.SavingsGoal, 0)
	if err := query.Order("year DESC, created_at").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetSavingsGoalByID returns a goal if it belongs to the user.
func (s *savingsGoalService) GetSavingsGoalByID(userID, goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingsGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// DeleteSavingsGoal soft-deletes a goal.
func (s *savingsGoalService) DeleteSavingsGoal(userID, goalID string) error {
	goal, err := s.GetSavingsGoalByID(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSavingsGoalProgress compares the goal with what the goal's year leaves
// over after all expenses.
func (s *savingsGoalService) GetSavingsGoalProgress(ctx context.Context, userID, goalID string) (*SavingsGoalProgress, error) {
	goal, err := s.GetSavingsGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	year, err := s.summary.GetYear(ctx, userID, goal.Year)
	if err != nil {
		return nil, err
	}

	saved := year.TotalRemaining
	remaining := goal.TargetAmount.Sub(saved)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &SavingsGoalProgress{
		GoalID:    goal.ID,
		Name:      goal.Name,
		Year:      goal.Year,
		Target:    goal.TargetAmount,
		Saved:     saved,
		Remaining: remaining,
		Percent:   engine.NewUsage(saved, goal.TargetAmount).Percent,
		Reached:   saved.GreaterThanOrEqual(goal.TargetAmount),
	}, nil
}

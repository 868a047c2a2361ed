package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"spendwise/internal/engine"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/metrics"
	"spendwise/internal/models"
)

var twelve = decimal.NewFromInt(12)

// snapshotLoader reads everything one aggregation needs for a user and year.
type snapshotLoader struct {
	db *gorm.DB
}

func newSnapshotLoader(db *gorm.DB) *snapshotLoader {
	return &snapshotLoader{db: db}
}

// load reads the user's records for year concurrently and converts them into
// a single engine input. Overrides are ordered by creation so the earliest
// wins when duplicates exist.
func (l *snapshotLoader) load(ctx context.Context, userID string, year int) (engine.Input, error) {
	start := time.Now()
	defer func() { metrics.SnapshotDuration.Observe(time.Since(start).Seconds()) }()

	var (
		expenses        []models.Expense
		fixed           []models.FixedExpense
		incomes         []models.Income
		incomeOverrides []models.IncomeOverride
	)

	g, gctx := errgroup.WithContext(ctx)
	db := l.db.WithContext(gctx)

	g.Go(func() error {
		return db.Where("user_id = ? AND year = ?", userID, year).
			Order("created_at, id").
			Find(&expenses).Error
	})
	g.Go(func() error {
		return db.Preload("Overrides", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("year = ?", year).Order("created_at, id")
		}).
			Where("user_id = ? AND year = ?", userID, year).
			Order("created_at, id").
			Find(&fixed).Error
	})
	g.Go(func() error {
		return db.Where("user_id = ? AND year = ?", userID, year).Find(&incomes).Error
	})
	g.Go(func() error {
		return db.Where("user_id = ? AND year = ?", userID, year).
			Order("created_at, id").
			Find(&incomeOverrides).Error
	})

	if err := g.Wait(); err != nil {
		return engine.Input{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	in := engine.Input{
		Expenses:        make([]engine.Expense, 0, len(expenses)),
		Fixed:           make([]engine.FixedExpense, 0, len(fixed)),
		IncomeBase:      incomeBase(incomes),
		IncomeOverrides: make([]engine.Override, 0, len(incomeOverrides)),
	}
	for i := range expenses {
		in.Expenses = append(in.Expenses, expenses[i].ToEngine())
	}
	for i := range fixed {
		in.Fixed = append(in.Fixed, fixed[i].ToEngine())
	}
	for _, o := range incomeOverrides {
		in.IncomeOverrides = append(in.IncomeOverrides, engine.Override{Month: o.Month, Amount: o.Amount})
	}
	return in, nil
}

// incomeBase picks the monthly base income: the monthly value when set,
// otherwise a twelfth of the yearly value, otherwise zero.
func incomeBase(rows []models.Income) decimal.Decimal {
	var yearly *decimal.Decimal
	for i := range rows {
		switch rows[i].Key {
		case models.IncomeKeyMonthly:
			return rows[i].Amount
		case models.IncomeKeyYearly:
			yearly = &rows[i].Amount
		}
	}
	if yearly != nil {
		return yearly.Div(twelve).Round(2)
	}
	return decimal.Zero
}

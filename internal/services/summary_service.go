package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"spendwise/internal/engine"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/metrics"
)

// summaryService computes budget figures. Every operation loads one snapshot
// and runs all of its engine calls against it.
type summaryService struct {
	loader *snapshotLoader
	now    func() time.Time
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{loader: newSnapshotLoader(db), now: time.Now}
}

// referenceMonth is the month rolling periods count back from: the current
// month for the current year, December for past years and January for
// future ones.
func (s *summaryService) referenceMonth(year int) int {
	now := s.now()
	switch {
	case year < now.Year():
		return 12
	case year > now.Year():
		return 1
	}
	return int(now.Month())
}

// GetDashboard aggregates the months of period within year.
func (s *summaryService) GetDashboard(ctx context.Context, userID string, year int, period engine.Period) (_ *Dashboard, err error) {
	defer func() { metrics.ObserveAggregation("dashboard", err) }()

	if !period.Valid() {
		return nil, apperrors.ErrInvalidPeriod
	}
	ref := s.referenceMonth(year)
	months, err := engine.MonthsForPeriod(period, ref)
	if err != nil {
		return nil, engineError(err)
	}

	in, err := s.loader.load(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	figure, err := engine.Aggregate(months, in)
	if err != nil {
		return nil, engineError(err)
	}

	return &Dashboard{
		Year:           year,
		Period:         period,
		ReferenceMonth: ref,
		Summary:        figure,
		YearlyExpenses: engine.YearlyTotal(in.Expenses),
	}, nil
}

// GetWindow aggregates an explicit list of months.
func (s *summaryService) GetWindow(ctx context.Context, userID string, year int, months []int) (_ *engine.WindowFigure, err error) {
	defer func() { metrics.ObserveAggregation("window", err) }()

	window, err := engine.NewWindow(months, s.now())
	if err != nil {
		return nil, engineError(err)
	}

	in, err := s.loader.load(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	figure, err := engine.Aggregate(window.Months, in)
	if err != nil {
		return nil, engineError(err)
	}
	return &figure, nil
}

// GetMonth returns the figures of one month together with the records that
// make them up.
func (s *summaryService) GetMonth(ctx context.Context, userID string, year, month int) (_ *MonthDetail, err error) {
	defer func() { metrics.ObserveAggregation("month", err) }()

	if !engine.ValidMonth(month) {
		return nil, apperrors.ErrInvalidMonth
	}

	in, err := s.loader.load(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	figure, err := engine.Aggregate([]int{month}, in)
	if err != nil {
		return nil, engineError(err)
	}

	expenses := make([]engine.Expense, 0)
	for _, e := range in.Expenses {
		if e.Month == month {
			expenses = append(expenses, e)
		}
	}

	return &MonthDetail{
		Year:             year,
		Figure:           figure.Months[0],
		Expenses:         expenses,
		FixedItems:       engine.ExpandForMonth(in.Fixed, month),
		IncomeOverridden: engine.IndexOverrides(in.IncomeOverrides).Has(month),
	}, nil
}

// GetChart returns the months of period in plotting order.
func (s *summaryService) GetChart(ctx context.Context, userID string, year int, period engine.Period) (_ *Chart, err error) {
	defer func() { metrics.ObserveAggregation("chart", err) }()

	if !period.Valid() {
		return nil, apperrors.ErrInvalidPeriod
	}
	months, err := engine.ChartMonths(period, s.referenceMonth(year))
	if err != nil {
		return nil, engineError(err)
	}

	in, err := s.loader.load(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	figure, err := engine.Aggregate(months, in)
	if err != nil {
		return nil, engineError(err)
	}

	points := make([]ChartPoint, 0, len(figure.Months))
	for _, m := range figure.Months {
		points = append(points, ChartPoint{
			Month:     m.Month,
			Spent:     m.Spent,
			Income:    m.Income,
			Remaining: m.Remaining,
		})
	}
	return &Chart{Year: year, Period: period, Points: points, Usage: figure.Usage}, nil
}

// GetYear summarizes the whole year including yearly expenses.
func (s *summaryService) GetYear(ctx context.Context, userID string, year int) (_ *engine.YearFigure, err error) {
	defer func() { metrics.ObserveAggregation("year", err) }()

	in, err := s.loader.load(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	figure, err := engine.SummarizeYear(year, in)
	if err != nil {
		return nil, engineError(err)
	}
	return &figure, nil
}

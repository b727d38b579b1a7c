package tracker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
)

// RollingAverage is the derived output of one rolling-window computation.
// Average is nil, not zero, when the window contains no eligible days;
// callers render that as "N/A" to distinguish "no data yet" from "zero
// calories logged".
type RollingAverage struct {
	WindowStart   string             `json:"windowStart"`
	WindowEnd     string             `json:"windowEnd"`
	Average       *float64           `json:"average"`
	Totals        domain.DailyTotals `json:"totals"`
	DaysIncluded  int                `json:"daysIncluded"`
	DaysRemaining int                `json:"daysRemaining"`
}

// DashboardStats bundles both window flavors for one dashboard load. Either
// window may be nil when its computation failed; the other is still served.
type DashboardStats struct {
	Trailing *RollingAverage `json:"trailing"`
	Centered *RollingAverage `json:"centered"`
}

// TrailingWeek computes the average daily intake over the seven days ending
// at the selected date. The window end clamps to today so the dashboard never
// requests calorie data for days that have not happened. Days with zero
// records still divide into the average: the product meaning is "average
// daily intake over the period", not "average on days you logged".
func (s *service) TrailingWeek(ctx context.Context, userID, selectedDate, today string) (*RollingAverage, error) {
	selected, todayDay, err := parseWindowInputs(selectedDate, today)
	if err != nil {
		return nil, err
	}

	start := domain.AddDays(selected, -6)
	end := domain.MinDay(selected, todayDay)

	return s.computeWindow(ctx, userID, start, end, 0)
}

// CenteredWeek computes the average over the window from three days before
// to three days after the selected date, clipped at today. DaysRemaining
// counts the strictly-future days of the window still excluded from the
// average; only elapsed days divide in.
func (s *service) CenteredWeek(ctx context.Context, userID, selectedDate, today string) (*RollingAverage, error) {
	selected, todayDay, err := parseWindowInputs(selectedDate, today)
	if err != nil {
		return nil, err
	}

	start := domain.AddDays(selected, -3)
	idealEnd := domain.AddDays(selected, 3)
	end := domain.MinDay(idealEnd, todayDay)

	daysRemaining := domain.DaysBetween(todayDay, idealEnd)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return s.computeWindow(ctx, userID, start, end, daysRemaining)
}

// Stats computes both windows independently. A window that fails is logged
// and returned as nil; the dashboard still renders whatever it got.
func (s *service) Stats(ctx context.Context, userID, selectedDate, today string) (*DashboardStats, error) {
	if _, _, err := parseWindowInputs(selectedDate, today); err != nil {
		return nil, err
	}

	stats := &DashboardStats{}

	trailing, err := s.TrailingWeek(ctx, userID, selectedDate, today)
	if err != nil {
		s.logger.Warn("trailing window computation failed",
			zap.String("userId", userID),
			zap.String("selectedDate", selectedDate),
			zap.Error(err),
		)
	} else {
		stats.Trailing = trailing
	}

	centered, err := s.CenteredWeek(ctx, userID, selectedDate, today)
	if err != nil {
		s.logger.Warn("centered window computation failed",
			zap.String("userId", userID),
			zap.String("selectedDate", selectedDate),
			zap.Error(err),
		)
	} else {
		stats.Centered = centered
	}

	return stats, nil
}

// computeWindow aggregates the clamped window and derives its average. A
// window whose clamped end precedes its start has zero eligible days and a
// nil average; the store is not queried at all in that case.
func (s *service) computeWindow(ctx context.Context, userID string, start, end time.Time, daysRemaining int) (*RollingAverage, error) {
	result := &RollingAverage{
		WindowStart:   domain.FormatDay(start),
		WindowEnd:     domain.FormatDay(end),
		DaysRemaining: daysRemaining,
	}
	if end.Before(start) {
		return result, nil
	}

	totalsByDay, err := s.AggregateRange(ctx, userID, domain.FormatDay(start), domain.FormatDay(end))
	if err != nil {
		return nil, err
	}

	for _, dayTotals := range totalsByDay {
		dayTotals.Date = ""
		result.Totals.Add(dayTotals)
	}

	result.DaysIncluded = domain.DaysBetween(start, end) + 1
	average := result.Totals.Calories / float64(result.DaysIncluded)
	result.Average = &average
	return result, nil
}

func parseWindowInputs(selectedDate, today string) (time.Time, time.Time, error) {
	selected, err := domain.ParseDay(selectedDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	todayDay, err := domain.ParseDay(today)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return selected, todayDay, nil
}

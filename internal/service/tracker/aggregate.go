package tracker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

// AggregateDay sums calories and macros across the given records. Missing
// numeric fields count as zero, except that a record stored without calories
// gets them derived from its macros so older rows and macro-only entries
// still contribute. Input order does not affect the result.
func AggregateDay(records []domain.FoodRecord) domain.DailyTotals {
	totals := domain.DailyTotals{RecordCount: len(records)}
	for _, r := range records {
		calories := r.Calories
		if calories == 0 {
			calories = domain.CaloriesFromMacros(r.Protein, r.Carbs, r.Fat)
		}
		totals.Calories += calories
		totals.Protein += r.Protein
		totals.Carbs += r.Carbs
		totals.Fat += r.Fat
	}
	return totals
}

// AggregateRange produces one DailyTotals entry for every calendar day from
// startDate to endDate inclusive, even for days with zero records.
//
// The per-day queries are independent and run concurrently; the fan-out is
// already bounded by the 30-day cap. A failing day degrades to zero totals
// and is logged at warning level rather than failing the range: averages are
// secondary data and callers must never block their primary view on them.
func (s *service) AggregateRange(ctx context.Context, userID, startDate, endDate string) (map[string]domain.DailyTotals, error) {
	start, err := domain.ParseDay(startDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDay(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, appErrors.NewValidation("startDate must be less than or equal to endDate")
	}
	if domain.DaysBetween(start, end)+1 > maxRangeDays {
		return nil, appErrors.NewValidation("date range cannot exceed 30 days")
	}

	days := domain.EnumerateDays(start, end)
	totals := make(map[string]domain.DailyTotals, len(days))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, date := range days {
		wg.Add(1)
		go func(date string) {
			defer wg.Done()

			dayTotals := domain.DailyTotals{Date: date}
			records, err := s.store.QueryByDay(ctx, userID, date)
			if err != nil {
				s.logger.Warn("day query failed, falling back to zero totals",
					zap.String("userId", userID),
					zap.String("date", date),
					zap.Error(err),
				)
			} else {
				dayTotals = AggregateDay(records)
				dayTotals.Date = date
			}

			mu.Lock()
			totals[date] = dayTotals
			mu.Unlock()
		}(date)
	}
	wg.Wait()

	return totals, nil
}

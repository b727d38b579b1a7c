// Package tracker provides the business logic for food logging and the
// per-day, per-range, and rolling-window calorie aggregations consumed by the
// dashboard.
package tracker

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/repository"
	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

const (
	// maxRangeDays caps the inclusive day count of a range aggregation to
	// bound query fan-out.
	maxRangeDays = 30

	// maxBulkDeleteKeys caps one bulk delete request.
	maxBulkDeleteKeys = 100
)

// LogFoodInput carries the caller-supplied fields for one food entry.
type LogFoodInput struct {
	Name     string
	Protein  float64
	Carbs    float64
	Fat      float64
	Calories *float64 // derived from macros when nil
	Date     string   // defaults to today when empty
	Quantity *float64
}

// Service defines the food-tracking business operations.
type Service interface {
	// LogFood creates one immutable food record for the user.
	LogFood(ctx context.Context, userID string, input LogFoodInput) (*domain.FoodRecord, error)

	// GetDay returns all records for one calendar day, most recent first.
	GetDay(ctx context.Context, userID, date string) ([]domain.FoodRecord, error)

	// DeleteRecord removes exactly one record by its composite key.
	DeleteRecord(ctx context.Context, userID, key string) error

	// BulkDelete removes a list of keys best-effort.
	BulkDelete(ctx context.Context, userID string, keys []string) (domain.BulkResult, error)

	// AggregateRange computes per-day totals for every calendar day from
	// startDate to endDate inclusive.
	AggregateRange(ctx context.Context, userID, startDate, endDate string) (map[string]domain.DailyTotals, error)

	// TrailingWeek computes the 7-day rolling average ending at the selected
	// date, clamped to today.
	TrailingWeek(ctx context.Context, userID, selectedDate, today string) (*RollingAverage, error)

	// CenteredWeek computes the average over the window straddling the
	// selected date, clipped to never include the future.
	CenteredWeek(ctx context.Context, userID, selectedDate, today string) (*RollingAverage, error)

	// Stats computes both rolling windows for the dashboard; a failure in
	// one window never fails the other.
	Stats(ctx context.Context, userID, selectedDate, today string) (*DashboardStats, error)
}

// service implements Service against a RecordStore.
type service struct {
	store  repository.RecordStore
	logger *zap.Logger
}

// NewService creates a tracker service with the provided store.
func NewService(store repository.RecordStore, logger *zap.Logger) Service {
	return &service{store: store, logger: logger}
}

// LogFood validates the input, derives calories from macros when they were
// not supplied, and writes the record. Future dates are rejected: nothing can
// be logged for a day that has not happened.
func (s *service) LogFood(ctx context.Context, userID string, input LogFoodInput) (*domain.FoodRecord, error) {
	today := domain.Today()
	date := input.Date
	if date == "" {
		date = today
	}
	if !domain.ValidDay(date) {
		return nil, appErrors.NewValidation("date must be in YYYY-MM-DD format")
	}
	if date > today {
		return nil, appErrors.NewValidation("date cannot be in the future")
	}

	record, err := domain.NewFoodRecord(userID, input.Name, input.Protein, input.Carbs, input.Fat, input.Calories, date, input.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, userID, *record); err != nil {
		return nil, appErrors.Wrap(err, "failed to save food record")
	}

	s.logger.Info("food record created",
		zap.String("userId", userID),
		zap.String("date", record.Date),
		zap.String("recordId", record.RecordID),
	)
	return record, nil
}

// GetDay returns the day's records sorted by the timestamp segment of the
// key, most recent first. The sum does not depend on this order; it exists
// for display.
func (s *service) GetDay(ctx context.Context, userID, date string) ([]domain.FoodRecord, error) {
	records, err := s.store.QueryByDay(ctx, userID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to query food records")
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp > records[j].Timestamp
		}
		return records[i].RecordID > records[j].RecordID
	})
	return records, nil
}

// DeleteRecord removes one record by its exact composite key. NotFound and
// Forbidden surface to the caller unchanged; they are never retried and never
// silently ignored.
func (s *service) DeleteRecord(ctx context.Context, userID, key string) error {
	if _, err := domain.ParseRecordDate(key); err != nil {
		return err
	}
	return s.store.DeleteByKey(ctx, userID, key)
}

// BulkDelete removes up to maxBulkDeleteKeys keys best-effort and reports the
// per-key outcome.
func (s *service) BulkDelete(ctx context.Context, userID string, keys []string) (domain.BulkResult, error) {
	if len(keys) == 0 {
		return domain.BulkResult{}, appErrors.NewValidation("at least one record key is required")
	}
	if len(keys) > maxBulkDeleteKeys {
		return domain.BulkResult{}, appErrors.NewValidation("cannot delete more than 100 records at once")
	}

	result, err := s.store.DeleteBulk(ctx, userID, keys)
	if err != nil {
		return domain.BulkResult{}, appErrors.Wrap(err, "bulk delete failed")
	}

	if len(result.Failed) > 0 {
		s.logger.Warn("bulk delete completed with failures",
			zap.String("userId", userID),
			zap.Int("succeeded", len(result.Succeeded)),
			zap.Int("failed", len(result.Failed)),
		)
	}
	return result, nil
}

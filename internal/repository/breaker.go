package repository

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

// BreakerStore decorates a RecordStore with a circuit breaker so a struggling
// backend sheds load instead of cascading timeouts into every request. While
// the circuit is open, operations fail fast with an Unavailable error.
type BreakerStore struct {
	inner  RecordStore
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewBreakerStore wraps the given store. Only backend failures count against
// the breaker; NotFound, Forbidden, and validation outcomes are successful
// round trips as far as the circuit is concerned.
func NewBreakerStore(inner RecordStore, logger *zap.Logger) *BreakerStore {
	s := &BreakerStore{inner: inner, logger: logger}
	s.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "record-store",
		MaxRequests: 3,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				appErrors.IsValidation(err) ||
				appErrors.IsNotFound(err) ||
				appErrors.IsForbidden(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("record store circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return s
}

func (s *BreakerStore) execute(op func() (interface{}, error)) (interface{}, error) {
	result, err := s.cb.Execute(op)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, appErrors.NewUnavailable("record store circuit is open", err)
	}
	return result, err
}

func (s *BreakerStore) Put(ctx context.Context, userID string, record domain.FoodRecord) error {
	_, err := s.execute(func() (interface{}, error) {
		return nil, s.inner.Put(ctx, userID, record)
	})
	return err
}

func (s *BreakerStore) QueryByDay(ctx context.Context, userID, date string) ([]domain.FoodRecord, error) {
	result, err := s.execute(func() (interface{}, error) {
		return s.inner.QueryByDay(ctx, userID, date)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.FoodRecord), nil
}

func (s *BreakerStore) DeleteByKey(ctx context.Context, userID, key string) error {
	_, err := s.execute(func() (interface{}, error) {
		return nil, s.inner.DeleteByKey(ctx, userID, key)
	})
	return err
}

func (s *BreakerStore) DeleteBulk(ctx context.Context, userID string, keys []string) (domain.BulkResult, error) {
	result, err := s.execute(func() (interface{}, error) {
		return s.inner.DeleteBulk(ctx, userID, keys)
	})
	if err != nil {
		return domain.BulkResult{}, err
	}
	return result.(domain.BulkResult), nil
}

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/repository"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/repository/mocks"
	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

func TestBreakerPassesThroughDomainOutcomes(t *testing.T) {
	inner := mocks.NewMockRecordStore()
	store := repository.NewBreakerStore(inner, zap.NewNop())
	ctx := context.Background()

	rec, err := domain.NewFoodRecord("user-1", "Oatmeal", 10, 30, 5, nil, "2025-01-15", nil)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "user-1", *rec))

	records, err := store.QueryByDay(ctx, "user-1", "2025-01-15")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	err = store.DeleteByKey(ctx, "user-1", "2025-01-15#1#missing")
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}

// NotFound outcomes are successful round trips; they must never trip the
// circuit no matter how many occur in a row.
func TestBreakerIgnoresDomainErrors(t *testing.T) {
	inner := mocks.NewMockRecordStore()
	store := repository.NewBreakerStore(inner, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		err := store.DeleteByKey(ctx, "user-1", "2025-01-15#1#missing")
		require.Error(t, err)
		assert.True(t, appErrors.IsNotFound(err), "iteration %d", i)
	}
}

func TestBreakerOpensAfterConsecutiveBackendFailures(t *testing.T) {
	inner := mocks.NewMockRecordStore()
	inner.SetError("QueryByDay", appErrors.NewUnavailable("dynamo is down", nil))
	store := repository.NewBreakerStore(inner, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.QueryByDay(ctx, "user-1", "2025-01-15")
		require.Error(t, err)
		assert.True(t, appErrors.IsUnavailable(err))
	}

	// Circuit is open now; the store fails fast even though the backend
	// would succeed again.
	inner.ClearErrors()
	_, err := store.QueryByDay(ctx, "user-1", "2025-01-15")
	require.Error(t, err)
	assert.True(t, appErrors.IsUnavailable(err))
}

package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

func TestLogFoodDerivesCaloriesFromMacros(t *testing.T) {
	svc, store := newTestService(t)

	record, err := svc.LogFood(context.Background(), "user-1", LogFoodInput{
		Name:    "Chicken and rice",
		Protein: 40,
		Carbs:   60,
		Fat:     10,
	})
	require.NoError(t, err)

	assert.Equal(t, 40*4+60*4+10*9.0, record.Calories)
	assert.Equal(t, domain.Today(), record.Date)
	assert.Equal(t, 1, store.RecordCount("user-1"))
}

func TestLogFoodKeepsExplicitCalories(t *testing.T) {
	svc, _ := newTestService(t)
	cal := 515.0

	record, err := svc.LogFood(context.Background(), "user-1", LogFoodInput{
		Name:     "Burrito",
		Protein:  25,
		Carbs:    55,
		Fat:      20,
		Calories: &cal,
	})
	require.NoError(t, err)
	assert.Equal(t, 515.0, record.Calories)
}

func TestLogFoodRejectsFutureDate(t *testing.T) {
	svc, _ := newTestService(t)

	today, err := domain.ParseDay(domain.Today())
	require.NoError(t, err)
	tomorrow := domain.FormatDay(domain.AddDays(today, 1))

	_, err = svc.LogFood(context.Background(), "user-1", LogFoodInput{
		Name: "Time travel snack",
		Date: tomorrow,
	})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

func TestLogFoodRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.LogFood(ctx, "user-1", LogFoodInput{Name: "  "})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))

	_, err = svc.LogFood(ctx, "user-1", LogFoodInput{Name: "x", Protein: -1})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))

	_, err = svc.LogFood(ctx, "user-1", LogFoodInput{Name: "x", Date: "Jan 2, 2025"})
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

func TestLogFoodPropagatesStoreFailure(t *testing.T) {
	svc, store := newTestService(t)
	store.SetError("Put", appErrors.NewUnavailable("throttled", nil))

	_, err := svc.LogFood(context.Background(), "user-1", LogFoodInput{Name: "x"})
	require.Error(t, err)
	assert.True(t, appErrors.IsUnavailable(err))
}

func TestGetDaySortsMostRecentFirst(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	for i, name := range []string{"breakfast", "lunch", "dinner"} {
		rec := domain.FoodRecord{
			UserID:    "user-1",
			Date:      "2025-01-15",
			Timestamp: base.Add(time.Duration(i) * time.Hour).UnixMilli(),
			RecordID:  name,
			Name:      name,
			Calories:  100,
			CreatedAt: base,
		}
		require.NoError(t, store.Put(ctx, "user-1", rec))
	}

	records, err := svc.GetDay(ctx, "user-1", "2025-01-15")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "dinner", records[0].Name)
	assert.Equal(t, "lunch", records[1].Name)
	assert.Equal(t, "breakfast", records[2].Name)
}

func TestDeleteRecordOutcomes(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		err := svc.DeleteRecord(ctx, "user-1", "2025-01-15#1#never-existed")
		require.Error(t, err)
		assert.True(t, appErrors.IsNotFound(err))
	})

	t.Run("Forbidden", func(t *testing.T) {
		rec, err := domain.NewFoodRecord("user-2", "not yours", 1, 1, 1, nil, "2025-01-15", nil)
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, "user-1", *rec))

		err = svc.DeleteRecord(ctx, "user-1", rec.Key())
		require.Error(t, err)
		assert.True(t, appErrors.IsForbidden(err))
	})

	t.Run("MalformedKey", func(t *testing.T) {
		err := svc.DeleteRecord(ctx, "user-1", "not-a-key")
		require.Error(t, err)
		assert.True(t, appErrors.IsValidation(err))
	})

	t.Run("Success", func(t *testing.T) {
		rec, err := domain.NewFoodRecord("user-1", "gone soon", 1, 1, 1, nil, "2025-01-15", nil)
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, "user-1", *rec))

		require.NoError(t, svc.DeleteRecord(ctx, "user-1", rec.Key()))
	})
}

func TestBulkDeleteValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.BulkDelete(ctx, "user-1", nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))

	keys := make([]string, 101)
	for i := range keys {
		keys[i] = domain.BuildRecordKey("2025-01-15", int64(i), "id")
	}
	_, err = svc.BulkDelete(ctx, "user-1", keys)
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
}

func TestBulkDeletePartialFailure(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	rec, err := domain.NewFoodRecord("user-1", "only one", 1, 1, 1, nil, "2025-01-15", nil)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "user-1", *rec))

	result, err := svc.BulkDelete(ctx, "user-1", []string{rec.Key(), "2025-01-15#1#missing"})
	require.NoError(t, err)

	assert.Equal(t, []string{rec.Key()}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "2025-01-15#1#missing", result.Failed[0].Key)
}

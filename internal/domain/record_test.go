package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

func TestCaloriesFromMacros(t *testing.T) {
	assert.Equal(t, 170.0, CaloriesFromMacros(10, 10, 10))
	assert.Equal(t, 0.0, CaloriesFromMacros(0, 0, 0))
	// No rounding before storage.
	assert.InDelta(t, 10.5*4+20.25*4+5.1*9, CaloriesFromMacros(10.5, 20.25, 5.1), 1e-9)
}

func TestNewFoodRecordDerivesCalories(t *testing.T) {
	rec, err := NewFoodRecord("user-1", "Oatmeal", 10, 30, 5, nil, "2025-01-15", nil)
	require.NoError(t, err)

	assert.Equal(t, CaloriesFromMacros(10, 30, 5), rec.Calories)
	assert.Equal(t, "2025-01-15", rec.Date)
	assert.NotEmpty(t, rec.RecordID)
	assert.Positive(t, rec.Timestamp)
}

func TestNewFoodRecordKeepsSuppliedCalories(t *testing.T) {
	cal := 250.0
	rec, err := NewFoodRecord("user-1", "Protein bar", 20, 25, 8, &cal, "2025-01-15", nil)
	require.NoError(t, err)
	assert.Equal(t, 250.0, rec.Calories)
}

func TestNewFoodRecordTrimsName(t *testing.T) {
	rec, err := NewFoodRecord("user-1", "  Grilled Chicken  ", 30, 0, 4, nil, "2025-01-15", nil)
	require.NoError(t, err)
	assert.Equal(t, "Grilled Chicken", rec.Name)
}

func TestNewFoodRecordValidation(t *testing.T) {
	neg := -10.0

	tests := []struct {
		name string
		run  func() error
	}{
		{"empty name", func() error {
			_, err := NewFoodRecord("u", "   ", 1, 1, 1, nil, "2025-01-15", nil)
			return err
		}},
		{"negative macro", func() error {
			_, err := NewFoodRecord("u", "x", -1, 1, 1, nil, "2025-01-15", nil)
			return err
		}},
		{"negative calories", func() error {
			_, err := NewFoodRecord("u", "x", 1, 1, 1, &neg, "2025-01-15", nil)
			return err
		}},
		{"bad date", func() error {
			_, err := NewFoodRecord("u", "x", 1, 1, 1, nil, "15/01/2025", nil)
			return err
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.True(t, appErrors.IsValidation(err))
		})
	}
}

func TestRecordKeyMatchesScheme(t *testing.T) {
	rec, err := NewFoodRecord("user-1", "Eggs", 12, 1, 10, nil, "2025-01-15", nil)
	require.NoError(t, err)

	date, ts, id, err := ParseRecordKey(rec.Key())
	require.NoError(t, err)
	assert.Equal(t, rec.Date, date)
	assert.Equal(t, rec.Timestamp, ts)
	assert.Equal(t, rec.RecordID, id)
}

func TestDailyTotalsAdd(t *testing.T) {
	a := DailyTotals{Calories: 500, Protein: 30, Carbs: 50, Fat: 10, RecordCount: 2}
	b := DailyTotals{Calories: 170, Protein: 10, Carbs: 10, Fat: 10, RecordCount: 1}

	a.Add(b)
	assert.Equal(t, DailyTotals{Calories: 670, Protein: 40, Carbs: 60, Fat: 20, RecordCount: 3}, a)
}

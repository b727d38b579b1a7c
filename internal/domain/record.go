// Package domain defines the food-record model, its composite key scheme, and
// the calendar-day arithmetic the aggregation services are built on.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

// FoodRecord is one logged food entry. Records are immutable once created;
// the only lifecycle transition is deletion by exact composite key.
type FoodRecord struct {
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`      // YYYY-MM-DD, the user's intended local day
	Timestamp int64     `json:"timestamp"` // creation instant, milliseconds since epoch
	RecordID  string    `json:"recordId"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Quantity  *float64  `json:"quantity,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key returns the record's composite sort key.
func (r FoodRecord) Key() string {
	return BuildRecordKey(r.Date, r.Timestamp, r.RecordID)
}

// CaloriesFromMacros derives calories from macronutrient grams: 4 per gram of
// protein and carbs, 9 per gram of fat. This exact formula backs every path
// where a stored calorie value is absent, so record creation and aggregation
// stay consistent. The result is never rounded before storage.
func CaloriesFromMacros(protein, carbs, fat float64) float64 {
	return protein*4 + carbs*4 + fat*9
}

// NewFoodRecord builds a record for the given user and day, assigning a fresh
// record id and the creation timestamp. A nil calories value is derived from
// the macros.
func NewFoodRecord(userID, name string, protein, carbs, fat float64, calories *float64, date string, quantity *float64) (*FoodRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidation("name cannot be empty")
	}
	if protein < 0 || carbs < 0 || fat < 0 {
		return nil, appErrors.NewValidation("protein, carbs, and fat must be non-negative")
	}
	if calories != nil && *calories < 0 {
		return nil, appErrors.NewValidation("calories must be non-negative")
	}
	if !ValidDay(date) {
		return nil, appErrors.NewValidation("date must be in YYYY-MM-DD format")
	}

	cal := CaloriesFromMacros(protein, carbs, fat)
	if calories != nil {
		cal = *calories
	}

	now := time.Now().UTC()
	return &FoodRecord{
		UserID:    userID,
		Date:      date,
		Timestamp: now.UnixMilli(),
		RecordID:  uuid.New().String(),
		Name:      name,
		Calories:  cal,
		Protein:   protein,
		Carbs:     carbs,
		Fat:       fat,
		Quantity:  quantity,
		CreatedAt: now,
	}, nil
}

// DailyTotals is the derived per-day sum of all record fields plus a count of
// the contributing records. Never stored.
type DailyTotals struct {
	Date        string  `json:"date,omitempty"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	RecordCount int     `json:"recordCount"`
}

// Add accumulates another totals value field-wise. The Date field is left
// untouched; sums across days have no single date.
func (t *DailyTotals) Add(o DailyTotals) {
	t.Calories += o.Calories
	t.Protein += o.Protein
	t.Carbs += o.Carbs
	t.Fat += o.Fat
	t.RecordCount += o.RecordCount
}

// BulkFailure records why one key in a bulk delete could not be removed.
type BulkFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// BulkResult is the per-key outcome of a best-effort bulk delete. Partial
// success is the expected shape, never an all-or-nothing transaction.
type BulkResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

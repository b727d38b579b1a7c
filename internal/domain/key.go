package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

// The sort key of a food record is "<date>#<timestamp>#<recordId>". Dates
// written as YYYY-MM-DD sort lexicographically in calendar order, so every
// record for one day sits under a single "<date>#" prefix and records within
// a day order by creation time. The random record id keeps keys unique even
// for two records created in the same millisecond. Downstream sort order
// depends on these builders being byte-for-byte stable.

const keySeparator = "#"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDay reports whether s is a well-formed YYYY-MM-DD date string.
func ValidDay(s string) bool {
	return dayPattern.MatchString(s)
}

// BuildDayPrefix returns the "<date>#" prefix used for single-day range
// queries against the sort key.
func BuildDayPrefix(date string) (string, error) {
	if !ValidDay(date) {
		return "", appErrors.NewValidation("date must be in YYYY-MM-DD format")
	}
	return date + keySeparator, nil
}

// BuildRecordKey assembles the composite sort key for one food record.
func BuildRecordKey(date string, timestamp int64, recordID string) string {
	return fmt.Sprintf("%s%s%d%s%s", date, keySeparator, timestamp, keySeparator, recordID)
}

// ParseRecordDate extracts the calendar day from a record key without needing
// a separate date column.
func ParseRecordDate(key string) (string, error) {
	date, _, found := strings.Cut(key, keySeparator)
	if !found || !ValidDay(date) {
		return "", appErrors.NewValidation("record key must start with a YYYY-MM-DD date segment")
	}
	return date, nil
}

// ParseRecordKey splits a composite sort key back into its date, timestamp,
// and record id segments.
func ParseRecordKey(key string) (date string, timestamp int64, recordID string, err error) {
	parts := strings.SplitN(key, keySeparator, 3)
	if len(parts) != 3 || !ValidDay(parts[0]) {
		return "", 0, "", appErrors.NewValidation("record key must be date#timestamp#recordId")
	}
	ts, parseErr := strconv.ParseInt(parts[1], 10, 64)
	if parseErr != nil {
		return "", 0, "", appErrors.NewValidation("record key timestamp segment must be numeric")
	}
	if parts[2] == "" {
		return "", 0, "", appErrors.NewValidation("record key is missing the record id segment")
	}
	return parts[0], ts, parts[2], nil
}

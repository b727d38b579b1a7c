// Package repository defines the persistence contracts for food records.
// Implementations live in subpackages; the rest of the application depends
// only on these interfaces.
package repository

import (
	"context"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
)

// RecordStore is the key-value contract for food records, keyed per user as
// the partition dimension.
type RecordStore interface {
	// Put writes one record under its composite key. Fails with an
	// Unavailable error on backend failures and does not retry internally;
	// retry policy belongs to the caller.
	Put(ctx context.Context, userID string, record domain.FoodRecord) error

	// QueryByDay scans every key under the day prefix for the user's
	// partition. Zero matches yields an empty slice, not an error. Ordering
	// is imposed by the caller.
	QueryByDay(ctx context.Context, userID, date string) ([]domain.FoodRecord, error)

	// DeleteByKey removes the record at the exact composite key. Fails with
	// NotFound if no item exists there, and Forbidden if the item belongs to
	// a different user even though the partition is already caller-scoped.
	DeleteByKey(ctx context.Context, userID, key string) error

	// DeleteBulk removes a caller-supplied list of keys best-effort; one
	// failing key never aborts the others.
	DeleteBulk(ctx context.Context, userID string, keys []string) (domain.BulkResult, error)
}

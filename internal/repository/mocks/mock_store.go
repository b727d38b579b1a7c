// Package mocks provides an in-memory RecordStore implementation for unit
// testing services without a real database.
package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
	appErrors "github.com/mcgigglepop/react-native-macro-tracker/pkg/errors"
)

// MockRecordStore keeps records in nested maps keyed by user and composite
// sort key. Error injection mirrors how the store is exercised: per-method
// via SetError, or per-date for single-day queries via SetQueryError.
type MockRecordStore struct {
	mu sync.RWMutex

	records map[string]map[string]domain.FoodRecord // userID -> key -> record

	shouldFailOn map[string]error // method name -> error
	failDates    map[string]error // date -> error for QueryByDay
}

// NewMockRecordStore creates an empty in-memory store.
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{
		records:      make(map[string]map[string]domain.FoodRecord),
		shouldFailOn: make(map[string]error),
		failDates:    make(map[string]error),
	}
}

// SetError configures the mock to return an error for a specific method.
func (m *MockRecordStore) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn[method] = err
}

// SetQueryError configures QueryByDay to fail for one specific date only.
func (m *MockRecordStore) SetQueryError(date string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDates[date] = err
}

// ClearErrors removes all configured errors.
func (m *MockRecordStore) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn = make(map[string]error)
	m.failDates = make(map[string]error)
}

func (m *MockRecordStore) checkError(method string) error {
	if err, exists := m.shouldFailOn[method]; exists {
		return err
	}
	return nil
}

func (m *MockRecordStore) Put(ctx context.Context, userID string, record domain.FoodRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkError("Put"); err != nil {
		return err
	}

	if m.records[userID] == nil {
		m.records[userID] = make(map[string]domain.FoodRecord)
	}
	m.records[userID][record.Key()] = record
	return nil
}

func (m *MockRecordStore) QueryByDay(ctx context.Context, userID, date string) ([]domain.FoodRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkError("QueryByDay"); err != nil {
		return nil, err
	}
	if err, exists := m.failDates[date]; exists {
		return nil, err
	}

	prefix, err := domain.BuildDayPrefix(date)
	if err != nil {
		return nil, err
	}

	matches := []domain.FoodRecord{}
	for key, record := range m.records[userID] {
		if strings.HasPrefix(key, prefix) {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

func (m *MockRecordStore) DeleteByKey(ctx context.Context, userID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkError("DeleteByKey"); err != nil {
		return err
	}

	// Mirrors the real store: the lookup is partition-scoped, and the stored
	// owner attribute is still compared as defense in depth.
	record, exists := m.records[userID][key]
	if !exists {
		return appErrors.NewNotFound("food record not found")
	}
	if record.UserID != userID {
		return appErrors.NewForbidden("food record belongs to another user")
	}
	delete(m.records[userID], key)
	return nil
}

func (m *MockRecordStore) DeleteBulk(ctx context.Context, userID string, keys []string) (domain.BulkResult, error) {
	if err := func() error {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return m.checkError("DeleteBulk")
	}(); err != nil {
		return domain.BulkResult{}, err
	}

	result := domain.BulkResult{
		Succeeded: []string{},
		Failed:    []domain.BulkFailure{},
	}
	for _, key := range keys {
		if err := m.DeleteByKey(ctx, userID, key); err != nil {
			result.Failed = append(result.Failed, domain.BulkFailure{Key: key, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, key)
	}
	return result, nil
}

// RecordCount reports how many records a user currently has. Test helper.
func (m *MockRecordStore) RecordCount(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records[userID])
}

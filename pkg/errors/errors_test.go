package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesType(t *testing.T) {
	base := NewForbidden("record belongs to another user")
	wrapped := Wrap(base, "delete failed")

	assert.True(t, IsForbidden(wrapped))
	assert.Contains(t, wrapped.Error(), "delete failed")
	assert.Contains(t, wrapped.Error(), "record belongs to another user")
}

func TestWrapPlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrap(stderrors.New("connection reset"), "query failed")

	assert.True(t, IsInternal(wrapped))
	assert.False(t, IsUnavailable(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "no-op"))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("throttled")
	err := NewUnavailable("put item failed", cause)

	require.True(t, IsUnavailable(err))
	assert.True(t, stderrors.Is(err, cause))
}

func TestPredicatesAreExclusive(t *testing.T) {
	err := NewValidation("date must be in YYYY-MM-DD format")

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
	assert.False(t, IsUnavailable(err))
	assert.False(t, IsInternal(err))
}

package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsWrapGeneric(t *testing.T) {
	assert.ErrorIs(t, ErrDeckNotFound, ErrNotFound)
	assert.Equal(t, "entity not found: deck", ErrDeckNotFound.Error())
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	withCause := NewStoreError("deck", "create", "insert failed", cause)
	assert.Equal(t, "create operation on deck failed: insert failed: connection reset", withCause.Error())
	assert.ErrorIs(t, withCause, cause)

	withoutCause := NewStoreError("deck", "list", "bad page", nil)
	assert.Equal(t, "list operation on deck failed: bad page", withoutCause.Error())
	assert.Nil(t, withoutCause.Unwrap())

	var storeErr *StoreError
	wrapped := errors.Join(errors.New("outer"), withCause)
	assert.True(t, errors.As(wrapped, &storeErr))
	assert.Equal(t, "deck", storeErr.Entity)
}

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeNotFound, TypeOf(NewNotFoundError("missing")))
	assert.Equal(t, ErrorTypeValidation, TypeOf(NewValidationError("bad input")))
	assert.Equal(t, ErrorTypeConflict, TypeOf(NewConflictError("taken")))
	assert.Equal(t, ErrorTypeUnauthorized, TypeOf(NewUnauthorizedError("no")))
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("plain")))
}

func TestTypeOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading doctor: %w", NewNotFoundError("doctor not found"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(wrapped))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x")))
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.True(t, IsConflict(NewConflictError("x")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("x")))
	assert.False(t, IsNotFound(NewConflictError("x")))
}

func TestErrorFormat(t *testing.T) {
	err := NewInternalError("query failed", fmt.Errorf("connection reset"))

	assert.Contains(t, err.Error(), "INTERNAL")
	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.EqualError(t, err.Unwrap(), "connection reset")
}

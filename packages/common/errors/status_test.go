package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatusError(t *testing.T) {
	t.Run("panics on invalid status", func(t *testing.T) {
		assert.Panics(t, func() { NewStatusError("x", 99) })
		assert.Panics(t, func() { NewStatusError("x", 600) })
	})

	t.Run("keeps message and status", func(t *testing.T) {
		err := NewStatusError("nope", http.StatusTeapot)
		assert.Equal(t, "nope", err.Error())
		assert.Equal(t, http.StatusTeapot, err.Status())
	})
}

func TestSide(t *testing.T) {
	assert.Equal(t, ClientSide, NewValidationStatus("bad").Side())
	assert.Equal(t, ClientSide, NewForbidden("no").Side())
	assert.Equal(t, ServerSide, StatusInternalError.Side())
	assert.Equal(t, ServerSide, NewStatusError("x", http.StatusServiceUnavailable).Side())
	assert.Panics(t, func() { NewStatusError("x", http.StatusOK).Side() })
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFound("Product").Status())
	assert.Equal(t, "Product not found", NewNotFound("Product").Error())
	assert.Equal(t, http.StatusBadRequest, NewConflict("dup", http.StatusBadRequest).Status())
	assert.Equal(t, http.StatusConflict, NewConflict("dup", http.StatusConflict).Status())
	assert.Equal(t, http.StatusForbidden, NewForbidden("no").Status())
}

func TestIsStatusError(t *testing.T) {
	wrapped := fmt.Errorf("wrapped: %w", StatusNotFound)

	is, e := IsStatusError(wrapped)
	assert.True(t, is)
	assert.Same(t, StatusNotFound, e)

	is, _ = IsStatusError(fmt.Errorf("plain"))
	assert.False(t, is)

	assert.True(t, HasStatus(wrapped, http.StatusNotFound))
	assert.False(t, HasStatus(wrapped, http.StatusBadRequest))
}

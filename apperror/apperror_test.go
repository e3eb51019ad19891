package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidationError("bad", nil), http.StatusBadRequest},
		{"bad credentials", NewAuthError("unable to login", nil), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("please authenticate", nil), http.StatusUnauthorized},
		{"not found", NewNotFoundError("task not found", nil), http.StatusNotFound},
		{"database", NewDatabaseError("db", errors.New("boom")), http.StatusInternalServerError},
		{"internal", NewInternalError("oops", nil), http.StatusInternalServerError},
		{"unavailable", NewUnavailableError("down", nil), http.StatusServiceUnavailable},
		{"unknown", NewAppError(UnknownError, "?", nil), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	root := errors.New("connection reset")
	err := NewDatabaseError("failed to load task", root)

	assert.Equal(t, "failed to load task: connection reset", err.Error())
	assert.ErrorIs(t, err, root)
	assert.Equal(t, ErrorResponse{Error: "failed to load task"}, err.ToResponse())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("task not found", nil))
	got := FromError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, NotFoundError, got.Type)

	plain := FromError(errors.New("raw"))
	require.NotNil(t, plain)
	assert.Equal(t, InternalError, plain.Type)
	assert.Equal(t, http.StatusInternalServerError, plain.StatusCode())
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x", nil)))
	assert.True(t, IsValidationError(fmt.Errorf("w: %w", NewValidationError("x", nil))))
	assert.True(t, IsAuthError(NewAuthError("x", nil)))
	assert.True(t, IsUnauthorizedError(NewUnauthorizedError("x", nil)))
	assert.False(t, IsNotFound(errors.New("x")))
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsMapToStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		kind Kind
		code int
	}{
		{NewValidationMessage("bad input"), KindValidation, http.StatusUnprocessableEntity},
		{NewConflictError("already active"), KindConflict, http.StatusConflict},
		{NewNotFoundError("Shift"), KindNotFound, http.StatusNotFound},
		{NewInvariantViolation("meter moved backward"), KindInvariant, http.StatusInternalServerError},
		{NewConsistencyError("ledger diverged"), KindConsistency, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code, tc.err.Message)
		assert.True(t, IsKind(tc.err, tc.kind), tc.err.Message)
	}
}

func TestIsKindUnwrapsChains(t *testing.T) {
	inner := NewInvariantViolation("meter moved backward")
	wrapped := fmt.Errorf("advancing nozzle: %w", inner)

	assert.True(t, IsKind(wrapped, KindInvariant))
	assert.False(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindInvariant))
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("driver: bad connection"))
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindUnknown, appErr.Kind)
}

func TestNotFoundNamesTheResource(t *testing.T) {
	assert.EqualError(t, NewNotFoundError("Tank"), "Tank not found")
}

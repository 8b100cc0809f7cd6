package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppErrorUnwrapsWrappedErrors(t *testing.T) {
	base := NewConflictError("Quotation already exists for this RFP")
	wrapped := fmt.Errorf("generate quotation: %w", base)

	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, KindConflict, appErr.Kind)
	assert.True(t, IsKind(wrapped, KindConflict))
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
}

func TestFieldErrorCarriesSingleField(t *testing.T) {
	err := NewFieldError("products[0].product_spec", "product_spec is required")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, "products[0].product_spec", err.Field)
	assert.Len(t, err.Errors, 1)
}

func TestCollaboratorErrorIsRetryable(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewCollaboratorError("create work order", cause)

	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsRetryable(NewPermissionError("nope")))
}

func TestNewAppErrorDerivesKind(t *testing.T) {
	assert.Equal(t, KindConflict, NewAppError(http.StatusConflict, "x").Kind)
	assert.Equal(t, KindNotFound, NewAppError(http.StatusNotFound, "x").Kind)
	assert.Equal(t, KindInternal, NewAppError(http.StatusTeapot, "x").Kind)
}

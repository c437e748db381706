package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NotFound("Session"), http.StatusNotFound},
		{InvalidInput("dayIndex out of range"), http.StatusBadRequest},
		{GenerationFailed("meal recommendations", nil), http.StatusBadGateway},
		{ProviderUnavailable(nil), http.StatusServiceUnavailable},
		{ProviderTimeout(nil), http.StatusGatewayTimeout},
		{New(CodeRateLimited, "slow down", ""), http.StatusTooManyRequests},
		{Internal("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
		})
	}
}

func TestGeneratedFlagSeparatesFailureKinds(t *testing.T) {
	assert.True(t, GenerationFailed("weekly plan", nil).Generated)
	assert.False(t, ProviderUnavailable(nil).Generated)
	assert.False(t, ProviderTimeout(nil).Generated)
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	base := NotFound("Plan")
	wrapped := fmt.Errorf("swap: %w", base)

	got := As(wrapped)
	assert.Same(t, base, got)
	assert.True(t, Is(wrapped, CodeNotFound))

	plain := As(errors.New("disk full"))
	assert.Equal(t, CodeInternal, plain.Code)
	assert.False(t, plain.Retryable())
}

func TestCauseIsReachable(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := ProviderTimeout(cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.Retryable())
}

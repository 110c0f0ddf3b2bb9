package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedAppError(t *testing.T) {
	err := fmt.Errorf("create order: %w", NotFound("Package", nil))

	assert.True(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(err, "BAD_REQUEST"))
	assert.False(t, Is(stderrors.New("plain"), "NOT_FOUND"))
}

func TestCheckoutFailedKeepsCause(t *testing.T) {
	cause := stderrors.New("backend unavailable")
	err := CheckoutFailed(cause)

	assert.Equal(t, "Checkout failed", err.Message)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestInsufficientCreditsMessage(t *testing.T) {
	err := InsufficientCredits(500, 120)

	assert.Equal(t, "INSUFFICIENT_CREDITS", err.Code)
	assert.Contains(t, err.Message, "500 required")
	assert.Contains(t, err.Message, "120 available")
}

func TestTooManyRequestsRoundsWait(t *testing.T) {
	err := TooManyRequests("Slow down", 2400*time.Millisecond)

	assert.Equal(t, http.StatusTooManyRequests, err.Status)
	assert.Equal(t, "Slow down, retry in 2s", err.Message)
}

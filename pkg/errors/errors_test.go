package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedCode(t *testing.T) {
	err := fmt.Errorf("redeem: %w", Conflict(CodeAlreadyUsed, "This key has already been used"))

	assert.True(t, Is(err, CodeAlreadyUsed))
	assert.False(t, Is(err, CodeInvalidKey))
	assert.False(t, Is(stderrors.New("plain"), CodeAlreadyUsed))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := stderrors.New("rpc error: unavailable")
	err := ServiceUnavailable("Review store is unavailable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.Equal(t, "STORE_UNAVAILABLE: Review store is unavailable", err.Error())
}

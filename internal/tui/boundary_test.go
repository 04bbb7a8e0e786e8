package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/runoshun/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want FailureKind
	}{
		{&domain.APIError{Code: 0, Message: "dial tcp"}, "network", FailureNetwork},
		{&domain.APIError{Code: 401}, "unauthorized", FailureAuth},
		{fmt.Errorf("list: %w", domain.ErrNotAuthenticated), "not logged in", FailureAuth},
		{fmt.Errorf("wrap: %w", &domain.APIError{Code: 503}), "server", FailureServer},
		{&domain.APIError{Code: 404}, "client", FailureGeneric},
		{errors.New("boom"), "plain", FailureGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyFailure(tt.err))
		})
	}
}

func TestFailure_Messages(t *testing.T) {
	f := newFailure(&domain.APIError{Code: 502})

	assert.Equal(t, "Server error", f.Title())
	assert.Equal(t, "The server is temporarily unavailable. Please try again later.", f.Message())

	f = newFailure(&domain.APIError{Code: 0})
	assert.Equal(t, "Connection problem", f.Title())
	assert.Contains(t, f.Message(), "reload")
}

func TestPanicError(t *testing.T) {
	base := errors.New("nil map")
	err := panicError(base)

	assert.ErrorIs(t, err, base)
	assert.EqualError(t, panicError("index out of range"), "panic: index out of range")
}

package auth_test

import (
	"errors"
	"fmt"
	"testing"

	auth "github.com/claritycrm/go-auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestIsStorageUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Wrapped driver error",
			err:      auth.WrapStorageError(errors.New("connection refused")),
			expected: true,
		},
		{
			name:     "Wrapped and re-wrapped",
			err:      fmt.Errorf("login: %w", auth.WrapStorageError(errors.New("timeout"))),
			expected: true,
		},
		{
			name:     "Domain outcome",
			err:      auth.ErrInvalidCredentials,
			expected: false,
		},
		{
			name:     "Not found is not an outage",
			err:      goerrors.New("user not found", goerrors.CategoryNotFound),
			expected: false,
		},
		{
			name:     "Plain error",
			err:      errors.New("boom"),
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.IsStorageUnavailable(tt.err))
		})
	}
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("Credential failures share one value", func(t *testing.T) {
		assert.Equal(t, auth.ErrInvalidCredentials, auth.ErrInvalidCredentials)
		assert.NotEqual(t, auth.ErrInvalidCredentials, auth.ErrAccountInactive)
	})

	t.Run("Conflicts map to conflict category", func(t *testing.T) {
		var richErr *goerrors.Error
		assert.True(t, goerrors.As(auth.ErrUsernameTaken, &richErr))
		assert.Equal(t, goerrors.CategoryConflict, richErr.Category)

		assert.True(t, goerrors.As(auth.ErrEmailTaken, &richErr))
		assert.Equal(t, goerrors.CategoryConflict, richErr.Category)
	})

	t.Run("Identity not found is a not-found", func(t *testing.T) {
		assert.True(t, goerrors.IsNotFound(auth.ErrIdentityNotFound))
	})

	t.Run("Token errors are opaque", func(t *testing.T) {
		var richErr *goerrors.Error
		assert.True(t, goerrors.As(auth.ErrTokenInvalid, &richErr))
		assert.Equal(t, goerrors.CategoryAuth, richErr.Category)
	})
}

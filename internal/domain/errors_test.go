package domain

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrValidation, ErrConfiguration)
	assert.NotErrorIs(t, ErrConfiguration, ErrValidation)
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "quotes[2]",
			message:     "must be a non-empty string",
			expectedMsg: "validation failed for quotes[2]: must be a non-empty string",
		},
		{
			name:        "without field",
			field:       "",
			message:     "bad input",
			expectedMsg: "validation failed: bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			assert.ErrorIs(t, err, ErrValidation)
			assert.True(t, IsValidation(err))
			assert.False(t, IsConfiguration(err))
		})
	}
}

func TestValidationError_WithValue(t *testing.T) {
	err := NewValidationErrorWithValue("quotes[0]", "must be a non-empty string", "   ")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "quotes[0]", validationErr.Field)
	assert.Equal(t, "   ", validationErr.Value)
}

func TestConfigurationError(t *testing.T) {
	t.Run("with source", func(t *testing.T) {
		err := NewConfigurationError("/etc/teapot/quotes.json", os.ErrNotExist)

		assert.Equal(t, `failed to load "/etc/teapot/quotes.json": file does not exist`, err.Error())
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.True(t, IsConfiguration(err))
	})

	t.Run("without source", func(t *testing.T) {
		err := NewConfigurationError("", errors.New("port out of range"))

		assert.Equal(t, "invalid configuration: port out of range", err.Error())
	})

	t.Run("reaches wrapped validation error", func(t *testing.T) {
		cause := NewValidationError("quotes[1]", "must be a non-empty string")
		err := NewConfigurationError("quotes.json", cause)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "quotes[1]", validationErr.Field)
		assert.True(t, IsValidation(err))
	})

	t.Run("survives further wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading quote store: %w", NewConfigurationError("q.json", os.ErrPermission))

		assert.True(t, IsConfiguration(err))
		assert.ErrorIs(t, err, os.ErrPermission)
	})
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error", Invalid("op", "bad input"), EINVALID},
		{"wrapped domain error", fmt.Errorf("outer: %w", NotFound("op", "tax record", "US/AY/001")), ENOTFOUND},
		{"plain error", errors.New("boom"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage_HidesInternalDetails(t *testing.T) {
	err := Internal(errors.New("connection refused"), "services.load", "reference data unavailable")
	msg := ErrorMessage(err)
	assert.NotContains(t, msg, "connection refused")
	assert.NotContains(t, msg, "reference data unavailable")
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, EINVALID, "op", "msg"))

	inner := errors.New("boom")
	err := WrapError(inner, EINVALID, "request.validate", "invalid request")
	assert.True(t, IsCode(err, EINVALID))
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "request.validate")
}

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfSurvivesWrapping(t *testing.T) {
	err := New(KindProviderTimeout, "embedding call timed out")
	wrapped := fmt.Errorf("failed to generate query embedding: %w", err)

	assert.Equal(t, KindProviderTimeout, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindProviderTimeout))
	assert.False(t, IsKind(wrapped, KindInvalidQuery))
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"timeout", New(KindProviderTimeout, "timed out"), true},
		{"unavailable", New(KindProviderUnavailable, "connection refused"), true},
		{"invalid query", New(KindInvalidQuery, "empty"), false},
		{"not found", New(KindDocumentNotFound, "unknown"), false},
		{"dimension mismatch", New(KindDimensionMismatch, "1536 != 768"), false},
		{"plain error", fmt.Errorf("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, Retryable(tt.err))
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Wrap(KindProviderUnavailable, "embedding request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "embedding request failed")
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("a7f3b2c1-0d4e-4f5a-8b6c-9d0e1f2a3b4c"))
	assert.True(t, IsValidUUID("A7F3B2C1-0D4E-4F5A-8B6C-9D0E1F2A3B4C"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("a7f3b2c10d4e4f5a8b6c9d0e1f2a3b4c"))
}

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("Success_WrapPreservesChain", func(t *testing.T) {
		wrapped := Wrap(ErrNotFound, "permission not found")
		require.Error(t, wrapped)
		assert.True(t, Is(wrapped, ErrNotFound))
		assert.Contains(t, wrapped.Error(), "permission not found")
	})

	t.Run("Success_WrapNilReturnsNil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("Success_DoubleWrapPreservesChain", func(t *testing.T) {
		inner := Wrap(ErrUnauthorized, "revocation denied")
		outer := Wrap(inner, "revoke failed")
		assert.True(t, Is(outer, ErrUnauthorized))
	})
}

func TestIs(t *testing.T) {
	t.Run("Success_MatchesSentinel", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", ErrRejected)
		assert.True(t, Is(err, ErrRejected))
	})

	t.Run("Success_DistinctSentinelsDoNotMatch", func(t *testing.T) {
		assert.False(t, Is(ErrUnauthorized, ErrRejected))
		assert.False(t, Is(ErrNotFound, ErrConflict))
	})
}

func TestNew(t *testing.T) {
	err := New("engine misconfigured")
	require.Error(t, err)
	assert.Equal(t, "engine misconfigured", err.Error())
}

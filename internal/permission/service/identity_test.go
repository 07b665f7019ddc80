package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDSource_NewID(t *testing.T) {
	source := NewUUIDSource()

	first := source.NewID()
	second := source.NewID()

	assert.NotEqual(t, first, second)

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUTCClock_NowMillis(t *testing.T) {
	clock := NewUTCClock()

	before := time.Now().UTC().UnixMilli()
	now := clock.NowMillis()
	after := time.Now().UTC().UnixMilli()

	assert.GreaterOrEqual(t, now, before)
	assert.LessOrEqual(t, now, after)
}

package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	metrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)
	assert.NotNil(t, metrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	metrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	// Recording should not panic with any label combination
	ctx := context.Background()
	metrics.RecordOperation(ctx, "permission", "grant", "success")
	metrics.RecordOperation(ctx, "permission", "revoke", "error")
	metrics.RecordOperation(ctx, "approval", "request", "success")
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	metrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordDuration(ctx, "permission", "resolve", 25*time.Millisecond, "success")
	metrics.RecordDuration(ctx, "rpc", "dispatch", time.Second, "error")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	metrics := NewNoOpBusinessMetrics()

	// No-op implementation must accept calls without side effects
	ctx := context.Background()
	metrics.RecordOperation(ctx, "permission", "grant", "success")
	metrics.RecordDuration(ctx, "permission", "grant", time.Millisecond, "success")
}

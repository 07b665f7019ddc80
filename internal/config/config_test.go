package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.MethodPrefix)
	assert.Equal(t, []string{"ping"}, cfg.SafeMethods)
	assert.Equal(t, 64, cfg.DelegationDepthLimit)
	assert.Equal(t, time.Duration(0), cfg.ApprovalTimeout)
	assert.False(t, cfg.ApprovalRetainRejected)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "rpccap", cfg.MetricsNamespace)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("METHOD_PREFIX", "wallet_")
	t.Setenv("SAFE_METHODS", "ping, getProviderState")
	t.Setenv("RESTRICTED_METHODS", "eth_write=Write to the chain,eth_read=Read chain state")
	t.Setenv("APPROVAL_TIMEOUT_SECONDS", "30")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "wallet_", cfg.MethodPrefix)
	assert.Equal(t, []string{"ping", "getProviderState"}, cfg.SafeMethods)
	assert.Equal(t, 30*time.Second, cfg.ApprovalTimeout)
	assert.Equal(t, []RestrictedMethod{
		{Name: "eth_write", Description: "Write to the chain"},
		{Name: "eth_read", Description: "Read chain state"},
	}, cfg.RestrictedMethods)
}

func TestParseRestrictedMethods(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []RestrictedMethod
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single method without description",
			input: "eth_write",
			want:  []RestrictedMethod{{Name: "eth_write"}},
		},
		{
			name:  "skips entries without a name",
			input: "=orphan description,eth_read=Read",
			want:  []RestrictedMethod{{Name: "eth_read", Description: "Read"}},
		},
		{
			name:  "trims whitespace",
			input: " eth_write = Write access ",
			want:  []RestrictedMethod{{Name: "eth_write", Description: "Write access"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRestrictedMethods(tt.input))
		})
	}
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}

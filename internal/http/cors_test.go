package http

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateCORSMiddleware(t *testing.T) {
	t.Run("Disabled_ReturnsNil", func(t *testing.T) {
		middleware := createCORSMiddleware(false, "https://example.com", corsTestLogger())
		assert.Nil(t, middleware)
	})

	t.Run("EnabledWithoutOrigins_ReturnsNil", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "", corsTestLogger())
		assert.Nil(t, middleware)
	})

	t.Run("EnabledWithOrigins_ReturnsMiddleware", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "https://example.com,https://other.example", corsTestLogger())
		assert.NotNil(t, middleware)
	})

	t.Run("EnabledWithOnlyWhitespaceOrigins_ReturnsNil", func(t *testing.T) {
		middleware := createCORSMiddleware(true, " , ", corsTestLogger())
		assert.Nil(t, middleware)
	})
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "https://example.com", []string{"https://example.com"}},
		{
			"multiple with whitespace",
			" https://a.example , https://b.example ",
			[]string{"https://a.example", "https://b.example"},
		},
		{"skips empty entries", "https://a.example,,", []string{"https://a.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOrigins(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

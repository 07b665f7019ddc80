package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnauthorizedError(t *testing.T) {
	req := &Request{Method: "write"}
	err := NewUnauthorizedError(req)

	assert.Equal(t, CodeUnauthorized, err.Code)
	assert.Contains(t, err.Message, "requestPermissions")
	assert.Equal(t, req, err.Data)
}

func TestNewUserRejectedError(t *testing.T) {
	err := NewUserRejectedError()

	assert.Equal(t, CodeUserRejected, err.Code)
	assert.Equal(t, "User rejected the request.", err.Message)
}

func TestNewMethodNotFoundError(t *testing.T) {
	err := NewMethodNotFoundError()

	assert.Equal(t, CodeMethodNotFound, err.Code)
	assert.Equal(t, "Method not found", err.Message)
}

func TestNewInternalError(t *testing.T) {
	err := NewInternalError("delegation chain exceeds depth limit")

	assert.Equal(t, CodeUnauthorized, err.Code)
	assert.Equal(t, "delegation chain exceeds depth limit", err.Message)
}

func TestError_Error(t *testing.T) {
	err := NewUserRejectedError()

	require.Implements(t, (*error)(nil), err)
	assert.Contains(t, err.Error(), "5")
	assert.Contains(t, err.Error(), "User rejected")
}

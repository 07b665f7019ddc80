package domain

import (
	"fmt"
)

// Wire-visible error codes.
const (
	// CodeUnauthorized is returned when no permission resolves for a
	// restricted call, or a grant/revoke authorization fails. Also used,
	// with a propagated message, for internal resolver failures.
	CodeUnauthorized = 1

	// CodeUserRejected is returned when the user rejects an approval flow.
	CodeUserRejected = 5

	// CodeMethodNotFound is the JSON-RPC 2.0 method-not-found code, returned
	// when state references a restricted method missing from the registry.
	CodeMethodNotFound = -32601
)

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// NewUnauthorizedError builds the unauthorized error, attaching the offending
// request as data so callers can see what was denied.
func NewUnauthorizedError(req any) *Error {
	return &Error{
		Code: CodeUnauthorized,
		Message: "Unauthorized to perform action. " +
			"Try requesting permission first using the `requestPermissions` method.",
		Data: req,
	}
}

// NewUserRejectedError builds the user-rejected error.
func NewUserRejectedError() *Error {
	return &Error{
		Code:    CodeUserRejected,
		Message: "User rejected the request.",
	}
}

// NewMethodNotFoundError builds the JSON-RPC method-not-found error.
func NewMethodNotFoundError() *Error {
	return &Error{
		Code:    CodeMethodNotFound,
		Message: "Method not found",
	}
}

// NewInternalError propagates an unexpected failure with its original
// message.
func NewInternalError(message string) *Error {
	return &Error{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

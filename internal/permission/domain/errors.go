package domain

import (
	"github.com/f107110126/rpc-cap/internal/errors"
)

// Permission engine errors.
var (
	// ErrPermissionNotFound indicates no permission resolves for a (domain, method) pair.
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")

	// ErrDelegationDepthExceeded indicates the granter chain exceeded the
	// configured depth limit while resolving a permission.
	ErrDelegationDepthExceeded = errors.New("delegation chain exceeds depth limit")

	// ErrReservedDomain indicates the reserved root-granter sentinel was used
	// as a caller domain.
	ErrReservedDomain = errors.Wrap(errors.ErrInvalidInput, "\"user\" is a reserved domain identifier")
)

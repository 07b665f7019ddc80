// Package domain defines approval-flow domain models and errors.
//
// The pending-ticket shape itself (PermissionsRequest) lives in the
// permission domain because it is part of the serializable engine state; this
// package holds what is specific to coordinating a user decision.
package domain

import (
	"github.com/f107110126/rpc-cap/internal/errors"
)

// Approval errors.
var (
	// ErrUserRejected indicates the user approved none of the requested
	// permissions.
	ErrUserRejected = errors.Wrap(errors.ErrRejected, "user rejected the request")

	// ErrRequestNotFound indicates no pending permission request exists for
	// the given id.
	ErrRequestNotFound = errors.Wrap(errors.ErrNotFound, "permission request not found")

	// ErrDecisionTimeout indicates no user decision arrived within the
	// configured window; the request is treated as rejected.
	ErrDecisionTimeout = errors.Wrap(errors.ErrRejected, "timed out waiting for a user decision")

	// ErrBrokerClosed indicates the decision broker is shutting down and can
	// no longer deliver decisions.
	ErrBrokerClosed = errors.Wrap(errors.ErrRejected, "approval broker is shut down")
)

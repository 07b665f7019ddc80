// Package dto provides data transfer objects for approval HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// DecisionRequest carries the user's decision on a pending permission
// request. Either Approved holds the granted (possibly customized) set, or
// Reject is true with an optional reason. Approving an empty set is the same
// as rejecting.
type DecisionRequest struct {
	Approved permissionDomain.RequestedPermissions `json:"approved"`
	Reject   bool                                  `json:"reject"`
	Reason   string                                `json:"reason"`
}

// Validate checks if the decision request is valid.
func (r *DecisionRequest) Validate() error {
	if r.Reject {
		return nil
	}
	return validation.Errors{
		"approved": validation.Validate(r.Approved, validation.NotNil),
	}.Filter()
}

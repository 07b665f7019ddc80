// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/f107110126/rpc-cap/internal/errors"
)

// ReservedGranter is the sentinel granter identifier for root permissions.
// It is never a valid caller domain.
const ReservedGranter = "user"

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// DomainIdentifier validates a caller domain: non-empty, no surrounding
// whitespace, and never the reserved root-granter sentinel.
var DomainIdentifier = validation.NewStringRuleWithError(
	func(s string) bool {
		if strings.TrimSpace(s) == "" || s != strings.TrimSpace(s) {
			return false
		}
		return s != ReservedGranter
	},
	validation.NewError(
		"validation_domain_identifier",
		"must be a non-blank identifier other than the reserved value \"user\"",
	),
)

// MethodName validates an RPC method name: non-empty with no whitespace at all.
var MethodName = validation.NewStringRuleWithError(
	func(s string) bool {
		return s != "" && !strings.ContainsAny(s, " \t\n\r")
	},
	validation.NewError("validation_method_name", "must be a non-empty method name without whitespace"),
)

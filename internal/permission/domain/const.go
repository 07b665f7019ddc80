// Package domain defines the permission data model for the ocap engine.
// Permissions are immutable records authorizing one domain to invoke one
// method, carrying a granter backpointer that forms delegation chains rooted
// at user-approved grants.
package domain

// UserGranter is the reserved granter identifier for root permissions.
// A permission with this granter was approved directly by the user; it is
// never a valid caller domain.
const UserGranter = "user"

// CaveatTypeStatic is the only caveat type with built-in semantics: when
// present on a resolved permission, the executor returns the caveat value as
// the RPC result without invoking the method handler. Unknown caveat types
// are preserved verbatim and otherwise ignored.
const CaveatTypeStatic = "static"

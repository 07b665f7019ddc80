// Package usecase defines business logic interfaces for the permission engine.
package usecase

import (
	"context"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// SnapshotRepository defines persistence operations for engine-state
// snapshots. Load returns (nil, nil) when no snapshot exists yet.
type SnapshotRepository interface {
	// Load retrieves the last persisted engine state.
	Load(ctx context.Context) (*permissionDomain.EngineState, error)

	// Save persists the engine state, replacing any prior snapshot.
	Save(ctx context.Context, state *permissionDomain.EngineState) error
}

// IDSource produces opaque unique identifiers for permissions and requests.
type IDSource interface {
	NewID() string
}

// Clock supplies creation timestamps in milliseconds since epoch.
type Clock interface {
	NowMillis() int64
}

// UseCase defines the permission store operations: the delegation resolver
// plus the grant/revoke engine.
type UseCase interface {
	// List returns the permission list of a domain; empty for unknown domains.
	List(ctx context.Context, domainID string) ([]permissionDomain.Permission, error)

	// Resolve walks the granter chain from (domainID, method) to the root
	// permission. At each hop only the first matching permission is chased.
	// Returns ErrPermissionNotFound when the chain dead-ends and
	// ErrDelegationDepthExceeded when the walk exceeds the depth limit.
	Resolve(ctx context.Context, domainID, method string) (*permissionDomain.Permission, error)

	// ResolveFromGranter returns the first permission of domainID with the
	// given method that was conferred by granter. When granter equals
	// domainID the match is the domain's own root permission. Used by
	// revocation to locate grants without traversing the chain.
	ResolveFromGranter(
		ctx context.Context,
		domainID, method, granter string,
	) (*permissionDomain.Permission, error)

	// Add upserts permissions into a domain's entry by natural key
	// (method, granter). Permissions lacking an id receive a fresh id and a
	// creation timestamp. Returns the permissions as stored.
	Add(
		ctx context.Context,
		domainID string,
		newPerms []permissionDomain.Permission,
	) ([]permissionDomain.Permission, error)

	// Remove filters out permissions matching the natural keys of perms.
	Remove(ctx context.Context, domainID string, perms []permissionDomain.Permission) error

	// GrantRoot issues root-granted permissions for every method in the
	// approved map to domainID, with the reserved user granter. Returns the
	// domain's full permission list after the grant.
	GrantRoot(
		ctx context.Context,
		domainID string,
		approved permissionDomain.RequestedPermissions,
	) ([]permissionDomain.Permission, error)

	// GrantFrom implements peer delegation: the granter confers its own
	// resolved capability for each requested method onto the grantee.
	// Requested methods are deduplicated keeping the first occurrence; the
	// whole grant fails with ErrUnauthorized if the granter cannot resolve
	// any requested method. Returns the staged permissions.
	GrantFrom(
		ctx context.Context,
		granterDomain, granteeDomain string,
		requested []permissionDomain.Permission,
	) ([]permissionDomain.Permission, error)

	// RevokeFrom revokes, on behalf of callerDomain, the permissions of
	// assignedDomain for the given methods. A permission is revocable when
	// callerDomain previously delegated it, or when a domain revokes its own
	// root permission. Fails with ErrUnauthorized (no changes applied) when
	// any method is not revocable. Returns the removed permissions.
	RevokeFrom(
		ctx context.Context,
		callerDomain, assignedDomain string,
		methods []string,
	) ([]permissionDomain.Permission, error)
}

// Package usecase implements the delegation resolver and the grant/revoke
// engine on top of the observable state store.
package usecase

import (
	"context"

	apperrors "github.com/f107110126/rpc-cap/internal/errors"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	permissionRepository "github.com/f107110126/rpc-cap/internal/permission/repository"
)

// DefaultDelegationDepthLimit bounds the granter-chain walk when no explicit
// limit is configured. Well-formed states terminate long before this; the
// limit turns pathological chains into a resolver error instead of a hang.
const DefaultDelegationDepthLimit = 64

// permissionUseCase implements UseCase against the in-memory state store.
type permissionUseCase struct {
	store      *permissionRepository.StateStore
	ids        IDSource
	clock      Clock
	depthLimit int
}

// NewPermissionUseCase creates a new UseCase with the provided dependencies.
// A non-positive depthLimit falls back to DefaultDelegationDepthLimit.
func NewPermissionUseCase(
	store *permissionRepository.StateStore,
	ids IDSource,
	clock Clock,
	depthLimit int,
) UseCase {
	if depthLimit <= 0 {
		depthLimit = DefaultDelegationDepthLimit
	}
	return &permissionUseCase{
		store:      store,
		ids:        ids,
		clock:      clock,
		depthLimit: depthLimit,
	}
}

// List returns the permission list of a domain.
func (u *permissionUseCase) List(
	ctx context.Context,
	domainID string,
) ([]permissionDomain.Permission, error) {
	perms := u.store.GetPermissions(domainID)
	if perms == nil {
		perms = []permissionDomain.Permission{}
	}
	return perms, nil
}

// Resolve walks the granter chain from (domainID, method) to the root
// permission. Only the first matching permission at each hop is chased, so
// resolution is deterministic for a given state.
func (u *permissionUseCase) Resolve(
	ctx context.Context,
	domainID, method string,
) (*permissionDomain.Permission, error) {
	current := domainID
	for depth := 0; depth <= u.depthLimit; depth++ {
		perm, ok := u.store.GetDomainSettings(current).FirstForMethod(method)
		if !ok {
			return nil, permissionDomain.ErrPermissionNotFound
		}
		if perm.IsRoot() {
			resolved := perm.Clone()
			return &resolved, nil
		}
		current = perm.Granter
	}
	return nil, permissionDomain.ErrDelegationDepthExceeded
}

// ResolveFromGranter returns the first permission of domainID for method that
// was conferred by granter. A domain's "own" permission is its root one:
// when granter equals domainID, the match is the permission granted by the
// user.
func (u *permissionUseCase) ResolveFromGranter(
	ctx context.Context,
	domainID, method, granter string,
) (*permissionDomain.Permission, error) {
	wantGranter := granter
	if granter == domainID {
		wantGranter = permissionDomain.UserGranter
	}

	for _, perm := range u.store.GetPermissions(domainID) {
		if perm.Method == method && perm.Granter == wantGranter {
			resolved := perm.Clone()
			return &resolved, nil
		}
	}
	return nil, permissionDomain.ErrPermissionNotFound
}

// Add upserts permissions into the domain's entry by natural key. Permissions
// lacking an id are completed with a fresh id and the current timestamp.
func (u *permissionUseCase) Add(
	ctx context.Context,
	domainID string,
	newPerms []permissionDomain.Permission,
) ([]permissionDomain.Permission, error) {
	if domainID == permissionDomain.UserGranter {
		return nil, permissionDomain.ErrReservedDomain
	}

	staged := make([]permissionDomain.Permission, 0, len(newPerms))
	for _, perm := range newPerms {
		if perm.Method == "" || perm.Granter == "" {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "permission requires method and granter")
		}
		for _, caveat := range perm.Caveats {
			if caveat.Type == "" {
				return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "caveat requires a type")
			}
		}
		completed := perm.Clone()
		if completed.ID == "" {
			completed.ID = u.ids.NewID()
			completed.Date = u.clock.NowMillis()
		}
		staged = append(staged, completed)
	}

	entry := u.store.GetDomainSettings(domainID).Upsert(staged)
	u.store.SetDomain(domainID, entry)

	return staged, nil
}

// Remove filters out permissions matching the natural keys of perms.
func (u *permissionUseCase) Remove(
	ctx context.Context,
	domainID string,
	perms []permissionDomain.Permission,
) error {
	if domainID == permissionDomain.UserGranter {
		return permissionDomain.ErrReservedDomain
	}

	entry := u.store.GetDomainSettings(domainID).Remove(perms)
	u.store.SetDomain(domainID, entry)
	return nil
}

// GrantRoot issues root-granted permissions for every approved method.
func (u *permissionUseCase) GrantRoot(
	ctx context.Context,
	domainID string,
	approved permissionDomain.RequestedPermissions,
) ([]permissionDomain.Permission, error) {
	newPerms := make([]permissionDomain.Permission, 0, len(approved))
	for method, opts := range approved {
		perm := permissionDomain.Permission{
			Method:  method,
			Granter: permissionDomain.UserGranter,
		}
		if opts.Caveats != nil {
			perm.Caveats = make([]permissionDomain.Caveat, len(opts.Caveats))
			copy(perm.Caveats, opts.Caveats)
		}
		newPerms = append(newPerms, perm)
	}

	if _, err := u.Add(ctx, domainID, newPerms); err != nil {
		return nil, err
	}

	// The caller gets the domain's full permission list after the grant.
	return u.List(ctx, domainID)
}

// GrantFrom delegates the granter's own capabilities to the grantee. The
// staged permissions carry the granter as their granter backpointer and copy
// the caveats of the granter's resolved permission.
func (u *permissionUseCase) GrantFrom(
	ctx context.Context,
	granterDomain, granteeDomain string,
	requested []permissionDomain.Permission,
) ([]permissionDomain.Permission, error) {
	if granteeDomain == permissionDomain.UserGranter {
		return nil, permissionDomain.ErrReservedDomain
	}

	// Deduplicate by method, keeping the first occurrence.
	seen := make(map[string]struct{}, len(requested))
	deduped := make([]permissionDomain.Permission, 0, len(requested))
	for _, reqPerm := range requested {
		if _, dup := seen[reqPerm.Method]; dup {
			continue
		}
		seen[reqPerm.Method] = struct{}{}
		deduped = append(deduped, reqPerm)
	}

	staged := make([]permissionDomain.Permission, 0, len(deduped))
	for _, reqPerm := range deduped {
		authorized, err := u.Resolve(ctx, granterDomain, reqPerm.Method)
		if err != nil {
			if apperrors.Is(err, permissionDomain.ErrPermissionNotFound) {
				return nil, apperrors.Wrap(
					apperrors.ErrUnauthorized,
					"granter holds no permission for method "+reqPerm.Method,
				)
			}
			return nil, err
		}

		perm := permissionDomain.Permission{
			ID:      u.ids.NewID(),
			Method:  reqPerm.Method,
			Granter: granterDomain,
			Date:    u.clock.NowMillis(),
		}
		if authorized.Caveats != nil {
			perm.Caveats = make([]permissionDomain.Caveat, len(authorized.Caveats))
			copy(perm.Caveats, authorized.Caveats)
		}
		staged = append(staged, perm)
	}

	entry := u.store.GetDomainSettings(granteeDomain).Upsert(staged)
	u.store.SetDomain(granteeDomain, entry)

	return staged, nil
}

// RevokeFrom revokes the assigned domain's permissions for the given methods
// on behalf of the caller. The whole revocation is staged before anything is
// removed, so an unauthorized method leaves the store untouched.
func (u *permissionUseCase) RevokeFrom(
	ctx context.Context,
	callerDomain, assignedDomain string,
	methods []string,
) ([]permissionDomain.Permission, error) {
	if assignedDomain == permissionDomain.UserGranter {
		return nil, permissionDomain.ErrReservedDomain
	}

	staged := make([]permissionDomain.Permission, 0, len(methods))
	for _, method := range methods {
		perm, err := u.ResolveFromGranter(ctx, assignedDomain, method, callerDomain)
		if err != nil {
			return nil, apperrors.Wrap(
				apperrors.ErrUnauthorized,
				"no revocable permission for method "+method,
			)
		}

		// A permission may be revoked by the domain that delegated it, or by
		// the holder itself.
		if perm.Granter != callerDomain && assignedDomain != callerDomain {
			return nil, apperrors.Wrap(
				apperrors.ErrUnauthorized,
				"caller did not confer permission for method "+method,
			)
		}
		staged = append(staged, *perm)
	}

	if err := u.Remove(ctx, assignedDomain, staged); err != nil {
		return nil, err
	}
	return staged, nil
}

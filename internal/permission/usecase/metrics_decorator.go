package usecase

import (
	"context"
	"time"

	"github.com/f107110126/rpc-cap/internal/metrics"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// permissionUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type permissionUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewPermissionUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewPermissionUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &permissionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *permissionUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.RecordOperation(ctx, "permission", operation, status)
	p.metrics.RecordDuration(ctx, "permission", operation, time.Since(start), status)
}

// List records metrics for permission list operations.
func (p *permissionUseCaseWithMetrics) List(
	ctx context.Context,
	domainID string,
) ([]permissionDomain.Permission, error) {
	start := time.Now()
	perms, err := p.next.List(ctx, domainID)
	p.record(ctx, "list", start, err)
	return perms, err
}

// Resolve records metrics for resolver walks.
func (p *permissionUseCaseWithMetrics) Resolve(
	ctx context.Context,
	domainID, method string,
) (*permissionDomain.Permission, error) {
	start := time.Now()
	perm, err := p.next.Resolve(ctx, domainID, method)
	p.record(ctx, "resolve", start, err)
	return perm, err
}

// ResolveFromGranter records metrics for granter-scoped lookups.
func (p *permissionUseCaseWithMetrics) ResolveFromGranter(
	ctx context.Context,
	domainID, method, granter string,
) (*permissionDomain.Permission, error) {
	start := time.Now()
	perm, err := p.next.ResolveFromGranter(ctx, domainID, method, granter)
	p.record(ctx, "resolve_from_granter", start, err)
	return perm, err
}

// Add records metrics for permission upserts.
func (p *permissionUseCaseWithMetrics) Add(
	ctx context.Context,
	domainID string,
	newPerms []permissionDomain.Permission,
) ([]permissionDomain.Permission, error) {
	start := time.Now()
	perms, err := p.next.Add(ctx, domainID, newPerms)
	p.record(ctx, "add", start, err)
	return perms, err
}

// Remove records metrics for permission removals.
func (p *permissionUseCaseWithMetrics) Remove(
	ctx context.Context,
	domainID string,
	perms []permissionDomain.Permission,
) error {
	start := time.Now()
	err := p.next.Remove(ctx, domainID, perms)
	p.record(ctx, "remove", start, err)
	return err
}

// GrantRoot records metrics for root grants.
func (p *permissionUseCaseWithMetrics) GrantRoot(
	ctx context.Context,
	domainID string,
	approved permissionDomain.RequestedPermissions,
) ([]permissionDomain.Permission, error) {
	start := time.Now()
	perms, err := p.next.GrantRoot(ctx, domainID, approved)
	p.record(ctx, "grant_root", start, err)
	return perms, err
}

// GrantFrom records metrics for peer delegations.
func (p *permissionUseCaseWithMetrics) GrantFrom(
	ctx context.Context,
	granterDomain, granteeDomain string,
	requested []permissionDomain.Permission,
) ([]permissionDomain.Permission, error) {
	start := time.Now()
	perms, err := p.next.GrantFrom(ctx, granterDomain, granteeDomain, requested)
	p.record(ctx, "grant_from", start, err)
	return perms, err
}

// RevokeFrom records metrics for granter-scoped revocations.
func (p *permissionUseCaseWithMetrics) RevokeFrom(
	ctx context.Context,
	callerDomain, assignedDomain string,
	methods []string,
) ([]permissionDomain.Permission, error) {
	start := time.Now()
	perms, err := p.next.RevokeFrom(ctx, callerDomain, assignedDomain, methods)
	p.record(ctx, "revoke_from", start, err)
	return perms, err
}

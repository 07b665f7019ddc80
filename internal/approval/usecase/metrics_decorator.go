package usecase

import (
	"context"
	"time"

	"github.com/f107110126/rpc-cap/internal/metrics"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// approvalUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type approvalUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewApprovalUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewApprovalUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &approvalUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Request records metrics for approval flows, including the time spent
// waiting on the user decision.
func (a *approvalUseCaseWithMetrics) Request(
	ctx context.Context,
	domainID string,
	input RequestInput,
	requested permissionDomain.RequestedPermissions,
) ([]permissionDomain.Permission, error) {
	start := time.Now()
	perms, err := a.next.Request(ctx, domainID, input, requested)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "approval", "request", status)
	a.metrics.RecordDuration(ctx, "approval", "request", time.Since(start), status)

	return perms, err
}

// Pending records metrics for pending-list reads.
func (a *approvalUseCaseWithMetrics) Pending(
	ctx context.Context,
) ([]permissionDomain.PermissionsRequest, error) {
	start := time.Now()
	pending, err := a.next.Pending(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "approval", "pending", status)
	a.metrics.RecordDuration(ctx, "approval", "pending", time.Since(start), status)

	return pending, err
}

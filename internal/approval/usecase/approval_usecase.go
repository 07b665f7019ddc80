// Package usecase implements the approval coordinator.
package usecase

import (
	"context"

	approvalDomain "github.com/f107110126/rpc-cap/internal/approval/domain"
	apperrors "github.com/f107110126/rpc-cap/internal/errors"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	permissionRepository "github.com/f107110126/rpc-cap/internal/permission/repository"
	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
)

// Config holds approval coordinator settings.
type Config struct {
	// RetainRejected keeps rejected tickets in the pending list instead of
	// removing them.
	RetainRejected bool
}

// approvalUseCase implements UseCase.
type approvalUseCase struct {
	config       Config
	store        *permissionRepository.StateStore
	permissionUC permissionUseCase.UseCase
	approver     Approver
	ids          permissionUseCase.IDSource
}

// NewApprovalUseCase creates a new approval coordinator. The approver is
// required: without one no permission can ever be granted interactively, so
// its absence is a construction error.
func NewApprovalUseCase(
	config Config,
	store *permissionRepository.StateStore,
	permissionUC permissionUseCase.UseCase,
	approver Approver,
	ids permissionUseCase.IDSource,
) (UseCase, error) {
	if approver == nil {
		return nil, apperrors.New("approval use case requires an approver")
	}
	return &approvalUseCase{
		config:       config,
		store:        store,
		permissionUC: permissionUC,
		approver:     approver,
		ids:          ids,
	}, nil
}

// Request runs one approval flow for domainID.
func (a *approvalUseCase) Request(
	ctx context.Context,
	domainID string,
	input RequestInput,
	requested permissionDomain.RequestedPermissions,
) ([]permissionDomain.Permission, error) {
	// Fill metadata from the calling domain where absent.
	metadata := permissionDomain.RequestMetadata{
		ID:        input.ID,
		Origin:    domainID,
		SiteTitle: input.SiteTitle,
	}
	if metadata.ID == "" {
		metadata.ID = a.ids.NewID()
	}
	if metadata.SiteTitle == "" {
		metadata.SiteTitle = domainID
	}

	request := permissionDomain.PermissionsRequest{
		Origin:   domainID,
		Metadata: metadata,
		Options:  requested.Clone(),
	}

	// Register the pending ticket before asking; the store notifies the
	// persistence hook so a restart does not lose in-flight requests.
	a.store.AddPendingRequest(request)

	approved, err := a.approver.Approve(ctx, &request)
	if err != nil {
		a.finalizeRejected(request.Metadata.ID)
		return nil, apperrors.Wrap(apperrors.ErrRejected, err.Error())
	}

	if len(approved) == 0 {
		a.finalizeRejected(request.Metadata.ID)
		return nil, approvalDomain.ErrUserRejected
	}

	// Approved: the ticket is always removed before the grant materializes.
	a.store.RemovePendingRequest(request.Metadata.ID)

	return a.permissionUC.GrantRoot(ctx, domainID, approved)
}

// Pending returns the pending permission requests, oldest first.
func (a *approvalUseCase) Pending(ctx context.Context) ([]permissionDomain.PermissionsRequest, error) {
	return a.store.PendingRequests(), nil
}

// finalizeRejected removes the ticket of a rejected flow unless retention is
// configured.
func (a *approvalUseCase) finalizeRejected(requestID string) {
	if a.config.RetainRejected {
		return
	}
	a.store.RemovePendingRequest(requestID)
}

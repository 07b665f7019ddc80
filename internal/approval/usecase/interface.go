// Package usecase defines business logic interfaces for the approval flow.
package usecase

import (
	"context"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// Approver is the external asynchronous oracle that decides which requested
// permissions the user grants. The returned map may differ from the
// originally requested one (user customization); the engine trusts it
// verbatim. An empty map means the user rejected the request.
type Approver interface {
	Approve(
		ctx context.Context,
		request *permissionDomain.PermissionsRequest,
	) (permissionDomain.RequestedPermissions, error)
}

// RequestInput carries the optional caller-supplied request metadata.
type RequestInput struct {
	// ID keys the pending request; a fresh id is assigned when empty.
	ID string
	// SiteTitle is a human-readable caller name shown during approval.
	SiteTitle string
}

// UseCase defines the approval coordinator: it registers pending permission
// requests, awaits the external approver's decision, and materializes grants
// or rejections.
type UseCase interface {
	// Request runs one approval flow for domainID. It appends a pending
	// ticket, invokes the approver, and on approval issues root-granted
	// permissions for every approved method. Returns the domain's full
	// permission list after the grant.
	//
	// Returns ErrUserRejected when the approver grants nothing, and a
	// rejection-wrapped error when the approver fails or times out.
	Request(
		ctx context.Context,
		domainID string,
		input RequestInput,
		requested permissionDomain.RequestedPermissions,
	) ([]permissionDomain.Permission, error)

	// Pending returns the pending permission requests, oldest first.
	Pending(ctx context.Context) ([]permissionDomain.PermissionsRequest, error)
}

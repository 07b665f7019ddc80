package rpc

import (
	"context"
	"encoding/json"

	approvalDomain "github.com/f107110126/rpc-cap/internal/approval/domain"
	approvalUseCase "github.com/f107110126/rpc-cap/internal/approval/usecase"
	apperrors "github.com/f107110126/rpc-cap/internal/errors"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	rpcDomain "github.com/f107110126/rpc-cap/internal/rpc/domain"
)

// handleGetPermissions returns the caller domain's permission list. It always
// succeeds, possibly with an empty list.
func (e *Engine) handleGetPermissions(
	ctx context.Context,
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	end EndFunc,
) {
	perms, err := e.permissionUC.List(ctx, domainID)
	if err != nil {
		e.endWithError(req, res, end, err)
		return
	}
	res.Result = perms
	end(nil)
}

// handleRequestPermissions starts an approval flow for the requested
// permissions. Params: [ { method -> { caveats? } } ].
func (e *Engine) handleRequestPermissions(
	ctx context.Context,
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	end EndFunc,
) {
	params, err := parseParams(req.Params, 1)
	if err != nil {
		e.endWithError(req, res, end, err)
		return
	}

	var requested permissionDomain.RequestedPermissions
	if err := json.Unmarshal(params[0], &requested); err != nil {
		e.endWithError(req, res, end, apperrors.Wrap(err, "invalid requested permissions"))
		return
	}

	input := approvalUseCase.RequestInput{}
	if req.Metadata != nil {
		input.ID = req.Metadata.ID
		input.SiteTitle = req.Metadata.SiteTitle
	}

	perms, err := e.approvalUC.Request(ctx, domainID, input, requested)
	if err != nil {
		e.endWithError(req, res, end, err)
		return
	}
	res.Result = perms
	end(nil)
}

// handleGrantPermissions delegates the caller's own capabilities to a
// grantee. Params: [ granteeDomain, [ { method } ... ] ].
func (e *Engine) handleGrantPermissions(
	ctx context.Context,
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	end EndFunc,
) {
	params, err := parseParams(req.Params, 2)
	if err != nil {
		e.endWithError(req, res, end, err)
		return
	}

	var grantee string
	if err := json.Unmarshal(params[0], &grantee); err != nil {
		e.endWithError(req, res, end, apperrors.Wrap(err, "invalid grantee domain"))
		return
	}

	var requested []permissionDomain.Permission
	if err := json.Unmarshal(params[1], &requested); err != nil {
		e.endWithError(req, res, end, apperrors.Wrap(err, "invalid requested permissions"))
		return
	}

	staged, err := e.permissionUC.GrantFrom(ctx, domainID, grantee, requested)
	if err != nil {
		e.endWithError(req, res, end, err)
		return
	}
	res.Result = staged
	end(nil)
}

// handleRevokePermissions revokes permissions the caller previously conferred
// (or a domain's own). Params: [ assignedDomain, [ "method" | { method } ... ] ].
func (e *Engine) handleRevokePermissions(
	ctx context.Context,
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	end EndFunc,
) {
	params, err := parseParams(req.Params, 2)
	if err != nil {
		e.endWithError(req, res, end, err)
		return
	}

	var assigned string
	if err := json.Unmarshal(params[0], &assigned); err != nil {
		e.endWithError(req, res, end, apperrors.Wrap(err, "invalid assigned domain"))
		return
	}

	methods, err := parseRevocationItems(params[1])
	if err != nil {
		e.endWithError(req, res, end, err)
		return
	}

	removed, err := e.permissionUC.RevokeFrom(ctx, domainID, assigned, methods)
	if err != nil {
		e.endWithError(req, res, end, err)
		return
	}
	res.Result = removed
	end(nil)
}

// endWithError maps a use case error onto the wire-visible error object and
// terminates the request.
func (e *Engine) endWithError(
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	end EndFunc,
	err error,
) {
	switch {
	case apperrors.Is(err, approvalDomain.ErrUserRejected):
		res.Error = rpcDomain.NewUserRejectedError()
	case apperrors.Is(err, apperrors.ErrRejected):
		// Approver failure or timeout: terminal rejection with the reason.
		res.Error = &rpcDomain.Error{
			Code:    rpcDomain.CodeUserRejected,
			Message: err.Error(),
		}
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		res.Error = rpcDomain.NewUnauthorizedError(req)
	default:
		res.Error = rpcDomain.NewInternalError(err.Error())
	}
	end(res.Error)
}

// parseParams decodes the request params array and checks its arity.
func parseParams(raw json.RawMessage, want int) ([]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "missing params")
	}

	var params []json.RawMessage
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, apperrors.Wrap(err, "invalid params")
	}
	if len(params) < want {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "not enough params")
	}
	return params, nil
}

// parseRevocationItems normalizes the mixed-type revocation list: each item
// is either a method-name string or a permission-shaped object with at least
// a method field.
func parseRevocationItems(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperrors.Wrap(err, "invalid permissions to revoke")
	}

	methods := make([]string, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			methods = append(methods, name)
			continue
		}

		var shaped struct {
			Method string `json:"method"`
		}
		if err := json.Unmarshal(item, &shaped); err != nil || shaped.Method == "" {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
				"revocation item must be a method name or a permission object")
		}
		methods = append(methods, shaped.Method)
	}
	return methods, nil
}

package rpc

import (
	"context"
	"log/slog"

	approvalUseCase "github.com/f107110126/rpc-cap/internal/approval/usecase"
	apperrors "github.com/f107110126/rpc-cap/internal/errors"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
	rpcDomain "github.com/f107110126/rpc-cap/internal/rpc/domain"
)

// Meta-method names, namespaced by the configured prefix.
const (
	metaGetPermissions     = "getPermissions"
	metaRequestPermissions = "requestPermissions"
	metaGrantPermissions   = "grantPermissions"
	metaRevokePermissions  = "revokePermissions"
)

// Config holds engine routing settings.
type Config struct {
	// SafeMethods bypass all permission checks and pass through unchanged.
	SafeMethods []string
	// MethodPrefix namespaces the four built-in meta methods.
	MethodPrefix string
}

// Engine is the request router of the permission middleware. Per incoming
// RPC it classifies the method as safe, internal meta, or restricted, and
// dispatches accordingly.
type Engine struct {
	config       Config
	safeMethods  map[string]struct{}
	registry     *Registry
	permissionUC permissionUseCase.UseCase
	approvalUC   approvalUseCase.UseCase
	logger       *slog.Logger
}

// NewEngine creates the engine. The approval use case is required: without a
// way to request user approval the engine could never grant anything, so its
// absence is a fatal construction error.
func NewEngine(
	config Config,
	registry *Registry,
	permissionUC permissionUseCase.UseCase,
	approvalUC approvalUseCase.UseCase,
	logger *slog.Logger,
) (*Engine, error) {
	if approvalUC == nil {
		return nil, apperrors.New("engine requires an approval use case")
	}
	if registry == nil {
		registry = NewRegistry(nil)
	}

	safeMethods := make(map[string]struct{}, len(config.SafeMethods))
	for _, method := range config.SafeMethods {
		safeMethods[method] = struct{}{}
	}

	return &Engine{
		config:       config,
		safeMethods:  safeMethods,
		registry:     registry,
		permissionUC: permissionUC,
		approvalUC:   approvalUC,
		logger:       logger,
	}, nil
}

// Registry returns the restricted-method registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Middleware returns the engine as a HandlerFunc for the host's chain.
func (e *Engine) Middleware() HandlerFunc {
	return e.Handle
}

// Handle routes one request with a background context.
func (e *Engine) Handle(
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	next NextFunc,
	end EndFunc,
) {
	e.HandleContext(context.Background(), domainID, req, res, next, end)
}

// HandleContext routes one request. Classification precedence: safe methods
// pass through, meta methods dispatch to the coordinator or the grant/revoke
// engine, and everything else must resolve a permission before executing.
// The context bounds blocking work such as approval flows.
func (e *Engine) HandleContext(
	ctx context.Context,
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	next NextFunc,
	end EndFunc,
) {
	// The reserved root-granter sentinel is never a valid caller.
	if domainID == "" || domainID == permissionDomain.UserGranter {
		res.Error = rpcDomain.NewInternalError("invalid caller domain identifier")
		end(res.Error)
		return
	}

	if _, safe := e.safeMethods[req.Method]; safe {
		next()
		return
	}

	switch req.Method {
	case e.config.MethodPrefix + metaGetPermissions:
		e.handleGetPermissions(ctx, domainID, req, res, end)
	case e.config.MethodPrefix + metaRequestPermissions:
		e.handleRequestPermissions(ctx, domainID, req, res, end)
	case e.config.MethodPrefix + metaGrantPermissions:
		e.handleGrantPermissions(ctx, domainID, req, res, end)
	case e.config.MethodPrefix + metaRevokePermissions:
		e.handleRevokePermissions(ctx, domainID, req, res, end)
	default:
		e.handleRestricted(ctx, domainID, req, res, next, end)
	}
}

// handleRestricted resolves a permission for the request and hands off to the
// executor.
func (e *Engine) handleRestricted(
	ctx context.Context,
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	next NextFunc,
	end EndFunc,
) {
	perm, err := e.permissionUC.Resolve(ctx, domainID, req.Method)
	if err != nil {
		if apperrors.Is(err, permissionDomain.ErrPermissionNotFound) {
			res.Error = rpcDomain.NewUnauthorizedError(req)
			end(res.Error)
			return
		}

		// Resolver failure is exceptional: propagate the original message.
		e.logger.Error("permission resolution failed",
			slog.String("domain", domainID),
			slog.String("method", req.Method),
			slog.Any("error", err),
		)
		res.Error = rpcDomain.NewInternalError(err.Error())
		end(res.Error)
		return
	}

	e.execute(domainID, req, res, next, end, perm)
}

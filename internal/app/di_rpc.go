package app

import (
	"fmt"

	"github.com/f107110126/rpc-cap/internal/rpc"
	rpcDomain "github.com/f107110126/rpc-cap/internal/rpc/domain"
	rpcHTTP "github.com/f107110126/rpc-cap/internal/rpc/http"
)

// Engine returns the permission engine middleware.
func (c *Container) Engine() (*rpc.Engine, error) {
	var err error
	c.engineInit.Do(func() {
		c.engine, err = c.initEngine()
		if err != nil {
			c.initErrors["engine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["engine"]; exists {
		return nil, storedErr
	}
	return c.engine, nil
}

// RPCHandler returns the HTTP handler for the JSON-RPC endpoint.
func (c *Container) RPCHandler() (*rpcHTTP.RPCHandler, error) {
	var err error
	c.rpcHandlerInit.Do(func() {
		c.rpcHandler, err = c.initRPCHandler()
		if err != nil {
			c.initErrors["rpcHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rpcHandler"]; exists {
		return nil, storedErr
	}
	return c.rpcHandler, nil
}

// initEngine creates the permission engine with the configured restricted
// methods. This host serves as a policy decision point: each configured
// method answers with an authorization decision document once a permission
// resolves (static caveats still short-circuit inside the engine).
func (c *Container) initEngine() (*rpc.Engine, error) {
	permissionUC, err := c.PermissionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission use case for engine: %w", err)
	}

	approvalUC, err := c.ApprovalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get approval use case for engine: %w", err)
	}

	methods := make(map[string]rpc.RestrictedMethod, len(c.config.RestrictedMethods))
	for _, method := range c.config.RestrictedMethods {
		methods[method.Name] = rpc.RestrictedMethod{
			Description: method.Description,
			Handler:     authorizationDecisionHandler,
		}
	}
	registry := rpc.NewRegistry(methods)

	engine, err := rpc.NewEngine(
		rpc.Config{
			SafeMethods:  c.config.SafeMethods,
			MethodPrefix: c.config.MethodPrefix,
		},
		registry,
		permissionUC,
		approvalUC,
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	// Record the immutable method descriptions in the engine state.
	store, err := c.StateStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get state store for engine: %w", err)
	}
	store.SetDescriptions(registry.Descriptions())

	return engine, nil
}

// initRPCHandler creates the RPC HTTP handler with all its dependencies.
func (c *Container) initRPCHandler() (*rpcHTTP.RPCHandler, error) {
	engine, err := c.Engine()
	if err != nil {
		return nil, fmt.Errorf("failed to get engine for rpc handler: %w", err)
	}

	passthrough := map[string]rpc.HandlerFunc{
		"ping": rpcHTTP.PingHandler,
	}

	return rpcHTTP.NewRPCHandler(engine, passthrough, c.Logger()), nil
}

// authorizationDecisionHandler answers a restricted call whose permission
// resolved. The result is a decision document the calling host enforces.
func authorizationDecisionHandler(
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	next rpc.NextFunc,
	end rpc.EndFunc,
) {
	res.Result = map[string]any{
		"authorized": true,
		"domain":     domainID,
		"method":     req.Method,
	}
	end(nil)
}

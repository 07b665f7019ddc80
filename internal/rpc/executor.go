package rpc

import (
	"log/slog"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	rpcDomain "github.com/f107110126/rpc-cap/internal/rpc/domain"
)

// execute runs a restricted method under a resolver-verified permission.
// Static caveats short-circuit with their constant value; otherwise the
// registered handler takes over the request lifetime.
func (e *Engine) execute(
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	next NextFunc,
	end EndFunc,
	perm *permissionDomain.Permission,
) {
	method, ok := e.registry.Get(req.Method)
	if !ok || method.Handler == nil {
		// Only possible when state was loaded from a snapshot referencing a
		// method no longer registered.
		e.logger.Warn("permission references unregistered method",
			slog.String("domain", domainID),
			slog.String("method", req.Method),
		)
		res.Error = rpcDomain.NewMethodNotFoundError()
		end(res.Error)
		return
	}

	if caveat, found := perm.LastStaticCaveat(); found {
		res.Result = caveat.Value
		end(nil)
		return
	}

	method.Handler(domainID, req, res, next, end)
}

// Package http provides the HTTP host for the permission engine middleware.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/f107110126/rpc-cap/internal/httputil"
	"github.com/f107110126/rpc-cap/internal/rpc"
	rpcDomain "github.com/f107110126/rpc-cap/internal/rpc/domain"
	"github.com/f107110126/rpc-cap/internal/rpc/http/dto"
	customValidation "github.com/f107110126/rpc-cap/internal/validation"
)

// DomainHeader names the header carrying the calling domain identifier. The
// engine trusts whatever the host labels as the calling domain; stronger
// authentication belongs to an outer layer.
const DomainHeader = "X-Domain"

// RPCHandler exposes the permission engine as a JSON-RPC 2.0 endpoint.
type RPCHandler struct {
	engine      *rpc.Engine
	passthrough map[string]rpc.HandlerFunc
	logger      *slog.Logger
}

// NewRPCHandler creates the handler. The passthrough map answers methods the
// engine forwards with next() — typically the configured safe methods.
func NewRPCHandler(
	engine *rpc.Engine,
	passthrough map[string]rpc.HandlerFunc,
	logger *slog.Logger,
) *RPCHandler {
	return &RPCHandler{
		engine:      engine,
		passthrough: passthrough,
		logger:      logger,
	}
}

// Handle services one JSON-RPC request.
// POST /v1/rpc with the calling domain in the X-Domain header.
// A missing or invalid X-Domain header or request body is answered with an
// HTTP error (422 or 400); otherwise the response is 200 with a JSON-RPC
// result or error object.
func (h *RPCHandler) Handle(c *gin.Context) {
	domainID := c.GetHeader(DomainHeader)
	if err := customValidation.DomainIdentifier.Validate(domainID); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.RPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	domainReq := req.ToDomain()
	res := &rpcDomain.Response{JSONRPC: "2.0", ID: domainReq.ID}

	// The request context bounds the approval wait: a disconnected client
	// tears the flow down instead of leaking a parked goroutine.
	h.engine.HandleContext(c.Request.Context(), domainID, domainReq, res,
		func() { h.forward(domainID, domainReq, res) },
		func(err *rpcDomain.Error) {},
	)

	h.logger.Debug("rpc request handled",
		slog.String("domain", domainID),
		slog.String("method", domainReq.Method),
		slog.Bool("errored", res.Error != nil),
	)

	c.JSON(http.StatusOK, res)
}

// forward answers methods the engine passed through. Unknown methods get the
// JSON-RPC method-not-found error: this host is the end of the chain.
func (h *RPCHandler) forward(
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
) {
	handler, ok := h.passthrough[req.Method]
	if !ok {
		res.Error = rpcDomain.NewMethodNotFoundError()
		return
	}
	handler(domainID, req, res,
		func() { res.Error = rpcDomain.NewMethodNotFoundError() },
		func(err *rpcDomain.Error) {},
	)
}

// PingHandler is the built-in safe method answering liveness probes over RPC.
func PingHandler(
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	next rpc.NextFunc,
	end rpc.EndFunc,
) {
	res.Result = "pong"
	end(nil)
}

// Package rpc implements the permission engine middleware: request routing,
// restricted-method execution, and the four built-in meta methods.
package rpc

import (
	rpcDomain "github.com/f107110126/rpc-cap/internal/rpc/domain"
)

// NextFunc forwards the request to the next middleware in the host's chain.
// The response is left unmodified.
type NextFunc func()

// EndFunc terminates the request with the current response. A non-nil error
// mirrors the response's Error field.
type EndFunc func(err *rpcDomain.Error)

// HandlerFunc is the middleware contract: every handler receives the calling
// domain, the request, the response under construction, and must invoke
// exactly one of next or end exactly once.
type HandlerFunc func(
	domainID string,
	req *rpcDomain.Request,
	res *rpcDomain.Response,
	next NextFunc,
	end EndFunc,
)

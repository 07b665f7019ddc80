// Package dto provides data transfer objects for the RPC HTTP endpoint.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	rpcDomain "github.com/f107110126/rpc-cap/internal/rpc/domain"
	customValidation "github.com/f107110126/rpc-cap/internal/validation"
)

// RPCRequest is the JSON-RPC 2.0 request body of POST /v1/rpc.
type RPCRequest struct {
	JSONRPC  string              `json:"jsonrpc"`
	ID       any                 `json:"id"`
	Method   string              `json:"method"`
	Params   json.RawMessage     `json:"params"`
	Metadata *rpcDomain.Metadata `json:"metadata"`
}

// Validate checks if the RPC request is valid.
func (r *RPCRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Method,
			validation.Required,
			customValidation.MethodName,
		),
	)
}

// ToDomain converts the request to its domain representation.
func (r *RPCRequest) ToDomain() *rpcDomain.Request {
	return &rpcDomain.Request{
		JSONRPC:  r.JSONRPC,
		ID:       r.ID,
		Method:   r.Method,
		Params:   r.Params,
		Metadata: r.Metadata,
	}
}

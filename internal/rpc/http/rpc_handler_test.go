package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	approvalUseCase "github.com/f107110126/rpc-cap/internal/approval/usecase"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	permissionRepository "github.com/f107110126/rpc-cap/internal/permission/repository"
	permissionUseCase "github.com/f107110126/rpc-cap/internal/permission/usecase"
	"github.com/f107110126/rpc-cap/internal/rpc"
	rpcDomain "github.com/f107110126/rpc-cap/internal/rpc/domain"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// approverFunc adapts a function to the Approver interface.
type approverFunc func(
	ctx context.Context,
	request *permissionDomain.PermissionsRequest,
) (permissionDomain.RequestedPermissions, error)

func (f approverFunc) Approve(
	ctx context.Context,
	request *permissionDomain.PermissionsRequest,
) (permissionDomain.RequestedPermissions, error) {
	return f(ctx, request)
}

type fakeIDSource struct{ counter int }

func (f *fakeIDSource) NewID() string {
	f.counter++
	return "id"
}

type fakeClock struct{}

func (f *fakeClock) NowMillis() int64 { return 1700000000000 }

func newTestHandler(t *testing.T) (*RPCHandler, permissionUseCase.UseCase) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := permissionRepository.NewStateStore(nil)
	permUC := permissionUseCase.NewPermissionUseCase(store, &fakeIDSource{}, &fakeClock{}, 0)

	approver := approverFunc(func(
		ctx context.Context,
		request *permissionDomain.PermissionsRequest,
	) (permissionDomain.RequestedPermissions, error) {
		return request.Options, nil
	})
	approvalUC, err := approvalUseCase.NewApprovalUseCase(
		approvalUseCase.Config{}, store, permUC, approver, &fakeIDSource{})
	require.NoError(t, err)

	registry := rpc.NewRegistry(map[string]rpc.RestrictedMethod{
		"write": {
			Description: "Write access",
			Handler: func(domainID string, req *rpcDomain.Request, res *rpcDomain.Response, next rpc.NextFunc, end rpc.EndFunc) {
				res.Result = "ok"
				end(nil)
			},
		},
	})

	engine, err := rpc.NewEngine(
		rpc.Config{SafeMethods: []string{"ping", "unrouted"}},
		registry, permUC, approvalUC, logger,
	)
	require.NoError(t, err)

	handler := NewRPCHandler(engine, map[string]rpc.HandlerFunc{"ping": PingHandler}, logger)
	return handler, permUC
}

func performRPC(t *testing.T, handler *RPCHandler, domain string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/rpc", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	if domain != "" {
		c.Request.Header.Set(DomainHeader, domain)
	}

	handler.Handle(c)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) *rpcDomain.Response {
	t.Helper()
	var res rpcDomain.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return &res
}

func TestRPCHandler_Handle(t *testing.T) {
	t.Run("Success_MetaMethod", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "siteA", map[string]any{
			"jsonrpc": "2.0", "id": 1, "method": "getPermissions",
		})

		require.Equal(t, http.StatusOK, w.Code)
		res := decodeResponse(t, w)
		assert.Nil(t, res.Error)
	})

	t.Run("Success_RestrictedMethodAfterRequest", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "siteA", map[string]any{
			"jsonrpc": "2.0", "id": 1, "method": "requestPermissions",
			"params": []any{map[string]any{"write": map[string]any{}}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.Nil(t, decodeResponse(t, w).Error)

		w = performRPC(t, handler, "siteA", map[string]any{
			"jsonrpc": "2.0", "id": 2, "method": "write",
		})
		res := decodeResponse(t, w)
		require.Nil(t, res.Error)
		assert.Equal(t, "ok", res.Result)
	})

	t.Run("Success_SafeMethodAnsweredByPassthrough", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "siteA", map[string]any{
			"jsonrpc": "2.0", "id": 1, "method": "ping",
		})

		res := decodeResponse(t, w)
		require.Nil(t, res.Error)
		assert.Equal(t, "pong", res.Result)
	})

	t.Run("Success_SafeMethodWithoutPassthroughIsMethodNotFound", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "siteA", map[string]any{
			"jsonrpc": "2.0", "id": 1, "method": "unrouted",
		})

		res := decodeResponse(t, w)
		require.NotNil(t, res.Error)
		assert.Equal(t, rpcDomain.CodeMethodNotFound, res.Error.Code)
	})

	t.Run("Success_UnauthorizedIsAJSONRPCError", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "siteB", map[string]any{
			"jsonrpc": "2.0", "id": 1, "method": "write",
		})

		require.Equal(t, http.StatusOK, w.Code, "authorization failures are wire errors, not HTTP errors")
		res := decodeResponse(t, w)
		require.NotNil(t, res.Error)
		assert.Equal(t, rpcDomain.CodeUnauthorized, res.Error.Code)
	})

	t.Run("Error_MissingDomainHeader", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "", map[string]any{
			"jsonrpc": "2.0", "id": 1, "method": "getPermissions",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_ReservedDomainHeader", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "user", map[string]any{
			"jsonrpc": "2.0", "id": 1, "method": "getPermissions",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MalformedBody", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "siteA", "{not json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_MissingMethod", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		w := performRPC(t, handler, "siteA", map[string]any{
			"jsonrpc": "2.0", "id": 1,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

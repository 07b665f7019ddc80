package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
	permissionMocks "github.com/f107110126/rpc-cap/internal/permission/usecase/mocks"
)

func TestRunListPermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Text", func(t *testing.T) {
		mockUseCase := &permissionMocks.MockPermissionUseCase{}

		mockUseCase.On("List", ctx, "siteA").Return([]permissionDomain.Permission{
			{ID: "p1", Method: "write", Granter: permissionDomain.UserGranter, Date: 1700000000000},
			{ID: "p2", Method: "read", Granter: "siteB", Date: 1700000000001},
		}, nil).Once()

		var out bytes.Buffer
		err := RunListPermissions(ctx, mockUseCase, testLogger(), "siteA", "text",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		require.Contains(t, out.String(), "write")
		require.Contains(t, out.String(), "granter=siteB")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_EmptyText", func(t *testing.T) {
		mockUseCase := &permissionMocks.MockPermissionUseCase{}

		mockUseCase.On("List", ctx, "siteA").
			Return([]permissionDomain.Permission{}, nil).Once()

		var out bytes.Buffer
		err := RunListPermissions(ctx, mockUseCase, testLogger(), "siteA", "text",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		require.Contains(t, out.String(), "No permissions")
	})

	t.Run("Success_JSON", func(t *testing.T) {
		mockUseCase := &permissionMocks.MockPermissionUseCase{}

		mockUseCase.On("List", ctx, "siteA").Return([]permissionDomain.Permission{
			{ID: "p1", Method: "write", Granter: permissionDomain.UserGranter},
		}, nil).Once()

		var out bytes.Buffer
		err := RunListPermissions(ctx, mockUseCase, testLogger(), "siteA", "json",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		require.Contains(t, out.String(), `"method": "write"`)
	})
}

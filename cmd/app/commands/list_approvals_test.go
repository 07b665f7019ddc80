package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	approvalMocks "github.com/f107110126/rpc-cap/internal/approval/usecase/mocks"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

func TestRunListApprovals(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Text", func(t *testing.T) {
		mockUseCase := &approvalMocks.MockApprovalUseCase{}

		mockUseCase.On("Pending", ctx).Return([]permissionDomain.PermissionsRequest{
			{
				Origin:   "siteA",
				Metadata: permissionDomain.RequestMetadata{ID: "r1", Origin: "siteA"},
				Options:  permissionDomain.RequestedPermissions{"write": {}},
			},
		}, nil).Once()

		var out bytes.Buffer
		err := RunListApprovals(ctx, mockUseCase, testLogger(), "text",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		require.Contains(t, out.String(), "r1")
		require.Contains(t, out.String(), "origin=siteA")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_EmptyText", func(t *testing.T) {
		mockUseCase := &approvalMocks.MockApprovalUseCase{}

		mockUseCase.On("Pending", ctx).
			Return([]permissionDomain.PermissionsRequest{}, nil).Once()

		var out bytes.Buffer
		err := RunListApprovals(ctx, mockUseCase, testLogger(), "text",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		require.Contains(t, out.String(), "No pending")
	})
}

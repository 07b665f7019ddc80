// Package mocks provides mock implementations for testing approval consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	approvalUseCase "github.com/f107110126/rpc-cap/internal/approval/usecase"
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// MockApprovalUseCase is a mock implementation of usecase.UseCase for testing.
type MockApprovalUseCase struct {
	mock.Mock
}

// Request mocks the Request method of UseCase.
func (m *MockApprovalUseCase) Request(
	ctx context.Context,
	domainID string,
	input approvalUseCase.RequestInput,
	requested permissionDomain.RequestedPermissions,
) ([]permissionDomain.Permission, error) {
	args := m.Called(ctx, domainID, input, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]permissionDomain.Permission), args.Error(1)
}

// Pending mocks the Pending method of UseCase.
func (m *MockApprovalUseCase) Pending(
	ctx context.Context,
) ([]permissionDomain.PermissionsRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]permissionDomain.PermissionsRequest), args.Error(1)
}

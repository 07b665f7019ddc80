// Package mocks provides mock implementations for testing permission consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// MockPermissionUseCase is a mock implementation of usecase.UseCase for testing.
type MockPermissionUseCase struct {
	mock.Mock
}

// List mocks the List method of UseCase.
func (m *MockPermissionUseCase) List(
	ctx context.Context,
	domainID string,
) ([]permissionDomain.Permission, error) {
	args := m.Called(ctx, domainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]permissionDomain.Permission), args.Error(1)
}

// Resolve mocks the Resolve method of UseCase.
func (m *MockPermissionUseCase) Resolve(
	ctx context.Context,
	domainID, method string,
) (*permissionDomain.Permission, error) {
	args := m.Called(ctx, domainID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permissionDomain.Permission), args.Error(1)
}

// ResolveFromGranter mocks the ResolveFromGranter method of UseCase.
func (m *MockPermissionUseCase) ResolveFromGranter(
	ctx context.Context,
	domainID, method, granter string,
) (*permissionDomain.Permission, error) {
	args := m.Called(ctx, domainID, method, granter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permissionDomain.Permission), args.Error(1)
}

// Add mocks the Add method of UseCase.
func (m *MockPermissionUseCase) Add(
	ctx context.Context,
	domainID string,
	newPerms []permissionDomain.Permission,
) ([]permissionDomain.Permission, error) {
	args := m.Called(ctx, domainID, newPerms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]permissionDomain.Permission), args.Error(1)
}

// Remove mocks the Remove method of UseCase.
func (m *MockPermissionUseCase) Remove(
	ctx context.Context,
	domainID string,
	perms []permissionDomain.Permission,
) error {
	args := m.Called(ctx, domainID, perms)
	return args.Error(0)
}

// GrantRoot mocks the GrantRoot method of UseCase.
func (m *MockPermissionUseCase) GrantRoot(
	ctx context.Context,
	domainID string,
	approved permissionDomain.RequestedPermissions,
) ([]permissionDomain.Permission, error) {
	args := m.Called(ctx, domainID, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]permissionDomain.Permission), args.Error(1)
}

// GrantFrom mocks the GrantFrom method of UseCase.
func (m *MockPermissionUseCase) GrantFrom(
	ctx context.Context,
	granterDomain, granteeDomain string,
	requested []permissionDomain.Permission,
) ([]permissionDomain.Permission, error) {
	args := m.Called(ctx, granterDomain, granteeDomain, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]permissionDomain.Permission), args.Error(1)
}

// RevokeFrom mocks the RevokeFrom method of UseCase.
func (m *MockPermissionUseCase) RevokeFrom(
	ctx context.Context,
	callerDomain, assignedDomain string,
	methods []string,
) ([]permissionDomain.Permission, error) {
	args := m.Called(ctx, callerDomain, assignedDomain, methods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]permissionDomain.Permission), args.Error(1)
}

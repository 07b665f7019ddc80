// Package dto provides data transfer objects for permission HTTP responses.
package dto

import (
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// PermissionResponse represents a permission record in API responses.
type PermissionResponse struct {
	ID      string                    `json:"id"`
	Method  string                    `json:"method"`
	Granter string                    `json:"granter"`
	Date    int64                     `json:"date"`
	Caveats []permissionDomain.Caveat `json:"caveats,omitempty"`
}

// MapPermissionToResponse converts a domain permission to an API response.
func MapPermissionToResponse(perm permissionDomain.Permission) PermissionResponse {
	return PermissionResponse{
		ID:      perm.ID,
		Method:  perm.Method,
		Granter: perm.Granter,
		Date:    perm.Date,
		Caveats: perm.Caveats,
	}
}

// ListPermissionsResponse represents a domain's permission list in API responses.
type ListPermissionsResponse struct {
	Data []PermissionResponse `json:"data"`
}

// MapPermissionsToListResponse converts domain permissions to a list API response.
func MapPermissionsToListResponse(perms []permissionDomain.Permission) ListPermissionsResponse {
	responses := make([]PermissionResponse, 0, len(perms))
	for _, perm := range perms {
		responses = append(responses, MapPermissionToResponse(perm))
	}
	return ListPermissionsResponse{Data: responses}
}

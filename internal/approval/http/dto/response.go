package dto

import (
	permissionDomain "github.com/f107110126/rpc-cap/internal/permission/domain"
)

// PermissionsRequestResponse represents a pending permission request in API
// responses.
type PermissionsRequestResponse struct {
	ID        string                                `json:"id"`
	Origin    string                                `json:"origin"`
	SiteTitle string                                `json:"site_title,omitempty"`
	Options   permissionDomain.RequestedPermissions `json:"options"`
}

// MapRequestToResponse converts a pending request to an API response.
func MapRequestToResponse(req permissionDomain.PermissionsRequest) PermissionsRequestResponse {
	return PermissionsRequestResponse{
		ID:        req.Metadata.ID,
		Origin:    req.Origin,
		SiteTitle: req.Metadata.SiteTitle,
		Options:   req.Options,
	}
}

// ListRequestsResponse represents a paginated list of pending requests.
type ListRequestsResponse struct {
	Data []PermissionsRequestResponse `json:"data"`
}

// MapRequestsToListResponse converts pending requests to a list API response.
func MapRequestsToListResponse(
	requests []permissionDomain.PermissionsRequest,
) ListRequestsResponse {
	responses := make([]PermissionsRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, MapRequestToResponse(req))
	}
	return ListRequestsResponse{Data: responses}
}

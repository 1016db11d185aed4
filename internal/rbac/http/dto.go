package http

import (
	"github.com/verdantstay/hospitality-backend/internal/rbac"
)

// CheckPermissionRequest is the body of POST /rbac/check.
// Field names are camelCase to match the established client contract.
type CheckPermissionRequest struct {
	UserID     string `json:"userId"`
	Permission string `json:"permission" binding:"required"`
	ResourceID string `json:"resourceId"`
	TenantID   string `json:"tenantId"`
}

type CheckPermissionResponse struct {
	HasPermission bool     `json:"hasPermission"`
	Permissions   []string `json:"permissions"`
	Resources     []string `json:"resources"`
	Actions       []string `json:"actions"`
	ResourceID    string   `json:"resourceId,omitempty"`
}

func NewCheckPermissionResponse(d *rbac.Decision) CheckPermissionResponse {
	return CheckPermissionResponse{
		HasPermission: d.HasPermission,
		Permissions:   emptyIfNil(d.Permissions),
		Resources:     emptyIfNil(d.Resources),
		Actions:       emptyIfNil(d.Actions),
		ResourceID:    d.ResourceID,
	}
}

// emptyIfNil keeps list fields as [] rather than null in JSON.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verdantstay/hospitality-backend/internal/auth"
	"github.com/verdantstay/hospitality-backend/internal/pkg/response"
	"github.com/verdantstay/hospitality-backend/internal/rbac"
)

type Handler struct {
	service rbac.Service
}

func NewHandler(service rbac.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Check(c *gin.Context) {
	var body CheckPermissionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	identity := auth.GetIdentity(c)

	// Callers may check another user's permissions (admin tooling); when no
	// userId is supplied the check applies to the caller themselves.
	userID := body.UserID
	if userID == "" {
		userID = identity.UserID
	}

	// Tenant scope comes from the authenticated context unless the request
	// narrows it explicitly.
	tenantID := body.TenantID
	if tenantID == "" {
		tenantID = identity.TenantID
	}

	req := rbac.Request{
		UserID:     userID,
		Permission: body.Permission,
		ResourceID: body.ResourceID,
		TenantID:   tenantID,
	}

	decision, err := h.service.Evaluate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewCheckPermissionResponse(decision))
}

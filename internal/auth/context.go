package auth

import "github.com/gin-gonic/gin"

const (
	ctxKeyUserID   = "userID"
	ctxKeyTenantID = "tenantID"
)

// Identity is the authenticated caller context resolved from the request
// token. It is passed explicitly into decision calls; nothing in the core
// falls back to a default user or tenant.
type Identity struct {
	UserID   string
	TenantID string
}

// GetIdentity returns the authenticated caller identity from the Gin context.
func GetIdentity(c *gin.Context) Identity {
	return Identity{
		UserID:   getString(c, ctxKeyUserID),
		TenantID: getString(c, ctxKeyTenantID),
	}
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return getString(c, ctxKeyUserID)
}

// GetTenantID returns the authenticated caller's tenant scope or empty string.
func GetTenantID(c *gin.Context) string {
	return getString(c, ctxKeyTenantID)
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

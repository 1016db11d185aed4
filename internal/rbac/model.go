package rbac

import (
	"fmt"
	"strings"
	"time"

	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
)

var (
	ErrUserRequired       = apperror.NewValidation("userId is required")
	ErrPermissionRequired = apperror.NewValidation("permission is required")
	ErrInvalidPermission  = apperror.NewValidation("permission must be in resource:action form")
)

// ActionManage implies every other action on the same resource.
const ActionManage = "manage"

// Permission is a (resource, action) pair with a "resource:action" string
// form, e.g. "bookings:write".
type Permission struct {
	Resource string
	Action   string
}

// ParsePermission parses the "resource:action" string form.
func ParsePermission(s string) (Permission, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Permission{}, fmt.Errorf("malformed permission %q", s)
	}
	return Permission{Resource: parts[0], Action: parts[1]}, nil
}

func (p Permission) String() string {
	return p.Resource + ":" + p.Action
}

// GrantSource says how a permission reached the user.
type GrantSource string

const (
	SourceDirect GrantSource = "direct"
	SourceRole   GrantSource = "role"
)

// Grant is one permission held by a user, either directly or through a
// role assignment. A non-nil ExpiresAt in the past makes the grant absent.
type Grant struct {
	Permission Permission
	Source     GrantSource
	RoleName   string // set when Source is SourceRole
	TenantID   string
	ExpiresAt  *time.Time
}

// Active reports whether the grant is in force at the given instant.
func (g Grant) Active(now time.Time) bool {
	return g.ExpiresAt == nil || g.ExpiresAt.After(now)
}

// Request asks whether a user holds a permission. ResourceID is
// informational only: it is echoed in the decision for audit logging but
// does not filter the boolean result.
type Request struct {
	UserID     string
	Permission string
	ResourceID string
	TenantID   string
}

// Decision is the evaluation outcome. Permissions holds the matched grant
// names; Resources and Actions summarize the user's full active union for
// audit/debugging.
type Decision struct {
	HasPermission bool
	Permissions   []string
	Resources     []string
	Actions       []string
	ResourceID    string
}

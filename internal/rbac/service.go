package rbac

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/verdantstay/hospitality-backend/internal/pkg/apperror"
	"github.com/verdantstay/hospitality-backend/pkg/logger"
)

// Service evaluates permission checks. Stateless: each call reads the
// user's grants and runs a set-membership test against them.
type Service interface {
	Evaluate(ctx context.Context, req Request) (*Decision, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Evaluate(ctx context.Context, req Request) (*Decision, error) {
	if req.UserID == "" {
		return nil, ErrUserRequired
	}
	if req.Permission == "" {
		return nil, ErrPermissionRequired
	}

	wanted, err := ParsePermission(req.Permission)
	if err != nil {
		return nil, ErrInvalidPermission
	}

	// One clock per evaluation, so a grant expiring mid-call is judged
	// consistently across the whole union.
	now := time.Now().UTC()

	grants, err := s.repo.ListGrants(ctx, req.UserID, req.TenantID, now)
	if err != nil {
		logger.WithModule("rbac").Error("permission check failed",
			zap.String("user_id", req.UserID),
			zap.String("permission", req.Permission),
			zap.Error(err),
		)
		return nil, apperror.WrapStore(err, "permission check failed")
	}

	decision := evaluate(wanted, grants, now)
	decision.ResourceID = req.ResourceID

	return decision, nil
}

// evaluate runs the pure set-membership test over the grant union.
// The repository already filters expired rows in SQL; the expiry check here
// re-applies the same rule against the snapshot clock.
func evaluate(wanted Permission, grants []Grant, now time.Time) *Decision {
	union := make(map[Permission]struct{}, len(grants))
	for _, g := range grants {
		if !g.Active(now) {
			continue
		}
		union[g.Permission] = struct{}{}
	}

	matched := make(map[string]struct{})
	resources := make(map[string]struct{})
	actions := make(map[string]struct{})

	for p := range union {
		resources[p.Resource] = struct{}{}
		actions[p.Action] = struct{}{}

		if p == wanted {
			matched[p.String()] = struct{}{}
			continue
		}
		// manage implies every action on the same resource
		if p.Resource == wanted.Resource && p.Action == ActionManage {
			matched[p.String()] = struct{}{}
		}
	}

	return &Decision{
		HasPermission: len(matched) > 0,
		Permissions:   sortedKeys(matched),
		Resources:     sortedKeys(resources),
		Actions:       sortedKeys(actions),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package rbac

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// ListGrants returns the user's direct grants and role-derived
	// permissions that have not expired as of now. When tenantID is given,
	// only unscoped grants and grants for that tenant are returned.
	ListGrants(ctx context.Context, userID, tenantID string, now time.Time) ([]Grant, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListGrants(ctx context.Context, userID, tenantID string, now time.Time) ([]Grant, error) {
	direct, err := r.listDirectGrants(ctx, userID, tenantID, now)
	if err != nil {
		return nil, err
	}

	derived, err := r.listRoleGrants(ctx, userID, tenantID, now)
	if err != nil {
		return nil, err
	}

	return append(direct, derived...), nil
}

func (r *pgxRepository) listDirectGrants(ctx context.Context, userID, tenantID string, now time.Time) ([]Grant, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"p.resource", "p.action", "ug.tenant_id", "ug.expires_at",
	).
		From("public.user_grants ug").
		Join("public.permissions p ON ug.permission_id = p.id").
		Where(squirrel.Eq{"ug.user_id": userID}).
		Where(notExpired("ug.expires_at", now))

	query = tenantScoped(query, "ug.tenant_id", tenantID)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list direct grants query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list direct grants failed: %w", err)
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		g := Grant{Source: SourceDirect}
		var tenant *string
		if err := rows.Scan(&g.Permission.Resource, &g.Permission.Action, &tenant, &g.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan direct grant failed: %w", err)
		}
		if tenant != nil {
			g.TenantID = *tenant
		}
		grants = append(grants, g)
	}

	return grants, rows.Err()
}

func (r *pgxRepository) listRoleGrants(ctx context.Context, userID, tenantID string, now time.Time) ([]Grant, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"p.resource", "p.action", "ro.name", "ra.tenant_id", "ra.expires_at",
	).
		From("public.role_assignments ra").
		Join("public.roles ro ON ra.role_id = ro.id").
		Join("public.role_permissions rp ON rp.role_id = ro.id").
		Join("public.permissions p ON rp.permission_id = p.id").
		Where(squirrel.Eq{"ra.user_id": userID}).
		Where(notExpired("ra.expires_at", now))

	query = tenantScoped(query, "ra.tenant_id", tenantID)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list role grants query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list role grants failed: %w", err)
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		g := Grant{Source: SourceRole}
		var tenant *string
		if err := rows.Scan(&g.Permission.Resource, &g.Permission.Action, &g.RoleName, &tenant, &g.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan role grant failed: %w", err)
		}
		if tenant != nil {
			g.TenantID = *tenant
		}
		grants = append(grants, g)
	}

	return grants, rows.Err()
}

func notExpired(column string, now time.Time) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{column: nil},
		squirrel.Gt{column: now},
	}
}

func tenantScoped(query squirrel.SelectBuilder, column, tenantID string) squirrel.SelectBuilder {
	if tenantID == "" {
		return query.Where(squirrel.Eq{column: nil})
	}
	return query.Where(squirrel.Or{
		squirrel.Eq{column: nil},
		squirrel.Eq{column: tenantID},
	})
}

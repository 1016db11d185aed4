package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// GetByID loads a property scoped to the given tenant. Cross-tenant
	// lookups return ErrNotFound.
	GetByID(ctx context.Context, tenantID, id string) (*Property, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, tenantID, id string) (*Property, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "tenant_id", "name", "kind", "timezone", "created_at").
		From("public.properties").
		Where(squirrel.Eq{"id": id})

	if tenantID != "" {
		query = query.Where(squirrel.Eq{"tenant_id": tenantID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get property query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, sql, args...)

	var p Property
	if err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Kind, &p.Timezone, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get property failed: %w", err)
	}
	return &p, nil
}

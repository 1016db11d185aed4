package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// GetByID loads one item scoped to a property. The availability checker
	// calls this per item so a single failure cannot abort a whole batch.
	GetByID(ctx context.Context, propertyID, id string) (*Item, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, propertyID, id string) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "property_id", "name", "current_stock", "minimum_threshold", "unit", "updated_at",
	).
		From("public.inventory_items").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"property_id": propertyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get inventory item query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var item Item
	if err := row.Scan(
		&item.ID, &item.PropertyID, &item.Name,
		&item.CurrentStock, &item.MinimumThreshold, &item.Unit, &item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get inventory item failed: %w", err)
	}
	return &item, nil
}

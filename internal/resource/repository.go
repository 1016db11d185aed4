package resource

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Resource, error)

	// ListBookable returns resources matching the filter whose status is
	// "available". Rooms are sorted ascending by price, tables ascending by
	// capacity, so the cheapest/smallest adequate match comes first.
	ListBookable(ctx context.Context, filter Filter) ([]*Resource, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const resourceColumns = "id, property_id, kind, name, room_type, capacity, price_cents, currency, status, created_at, updated_at"

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Resource, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(resourceColumns).
		From("public.resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get resource query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	res, err := scanResource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resource failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) ListBookable(ctx context.Context, filter Filter) ([]*Resource, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(resourceColumns).
		From("public.resources").
		Where(squirrel.Eq{"property_id": filter.PropertyID}).
		Where(squirrel.Eq{"status": StatusAvailable})

	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.RoomType != "" {
		query = query.Where(squirrel.Eq{"room_type": filter.RoomType})
	}
	if filter.MinCapacity > 0 {
		query = query.Where(squirrel.GtOrEq{"capacity": filter.MinCapacity})
	}

	switch filter.Kind {
	case KindRoom:
		query = query.OrderBy("price_cents ASC", "name ASC")
	case KindTable:
		query = query.OrderBy("capacity ASC", "name ASC")
	default:
		query = query.OrderBy("name ASC")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list resources query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources failed: %w", err)
	}
	defer rows.Close()

	var resources []*Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource failed: %w", err)
		}
		resources = append(resources, res)
	}

	return resources, rows.Err()
}

func scanResource(row pgx.Row) (*Resource, error) {
	var res Resource
	if err := row.Scan(
		&res.ID, &res.PropertyID, &res.Kind, &res.Name, &res.RoomType,
		&res.Capacity, &res.PriceCents, &res.Currency, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

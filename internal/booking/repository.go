package booking

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// ListBlocking returns pending/confirmed bookings whose interval could
	// overlap the filter window. This is the coarse SQL filter; the precise
	// per-candidate overlap test happens in the availability checker.
	ListBlocking(ctx context.Context, filter Filter) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListBlocking(ctx context.Context, filter Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "property_id", "resource_id", "user_id",
		"start_time", "end_time", "party_size", "status",
		"created_at", "updated_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusConfirmed}}).
		Where(squirrel.Lt{"start_time": filter.Window.End}).
		Where(squirrel.Gt{"end_time": filter.Window.Start})

	if filter.PropertyID != "" {
		query = query.Where(squirrel.Eq{"property_id": filter.PropertyID})
	}
	if len(filter.ResourceIDs) > 0 {
		query = query.Where(squirrel.Eq{"resource_id": filter.ResourceIDs})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blocking bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list blocking bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.PropertyID, &b.ResourceID, &b.UserID,
			&b.StartTime, &b.EndTime, &b.PartySize, &b.Status,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

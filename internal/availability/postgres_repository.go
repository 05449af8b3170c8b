package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores weekday windows in the relational database.
// The table carries a unique constraint on weekday, so at most one record
// per weekday can exist.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("availability: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// GetByWeekday returns the window for a weekday, nil when absent.
func (r *PostgresRepository) GetByWeekday(ctx context.Context, weekday int) (*DayWindow, error) {
	if !ValidWeekday(weekday) {
		return nil, ErrInvalidWeekday
	}

	query := `
		SELECT weekday, open_hour, close_hour, active, updated_at
		FROM availability
		WHERE weekday = $1
	`
	var w DayWindow
	err := r.pool.QueryRow(ctx, query, weekday).
		Scan(&w.Weekday, &w.OpenHour, &w.CloseHour, &w.Active, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("availability: select failed: %w", err)
	}
	return &w, nil
}

// List returns all configured weekdays ordered Sunday first.
func (r *PostgresRepository) List(ctx context.Context) ([]*DayWindow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, open_hour, close_hour, active, updated_at
		FROM availability
		ORDER BY weekday ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("availability: list failed: %w", err)
	}
	defer rows.Close()

	var windows []*DayWindow
	for rows.Next() {
		var w DayWindow
		if err := rows.Scan(&w.Weekday, &w.OpenHour, &w.CloseHour, &w.Active, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("availability: scan failed: %w", err)
		}
		windows = append(windows, &w)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("availability: list failed: %w", rows.Err())
	}
	return windows, nil
}

// Upsert replaces a weekday's window.
func (r *PostgresRepository) Upsert(ctx context.Context, weekday int, req *UpsertWindowRequest) (*DayWindow, error) {
	if !ValidWeekday(weekday) {
		return nil, ErrInvalidWeekday
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO availability (weekday, open_hour, close_hour, active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (weekday) DO UPDATE
		SET open_hour = EXCLUDED.open_hour,
			close_hour = EXCLUDED.close_hour,
			active = EXCLUDED.active,
			updated_at = now()
		RETURNING weekday, open_hour, close_hour, active, updated_at
	`
	var w DayWindow
	err := r.pool.QueryRow(ctx, query, weekday, req.OpenHour, req.CloseHour, req.Active).
		Scan(&w.Weekday, &w.OpenHour, &w.CloseHour, &w.Active, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("availability: upsert failed: %w", err)
	}
	return &w, nil
}

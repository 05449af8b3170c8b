package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// singletonID pins the settings table to exactly one row.
const singletonID = 1

// PostgresRepository stores the settings singleton in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("settings: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Get returns the settings row, lazily inserting the default when absent.
func (r *PostgresRepository) Get(ctx context.Context) (*Settings, error) {
	query := `
		INSERT INTO settings (id, buffer_minutes)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET id = settings.id
		RETURNING buffer_minutes, updated_at
	`
	var s Settings
	if err := r.pool.QueryRow(ctx, query, singletonID, DefaultBufferMinutes).
		Scan(&s.BufferMinutes, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("settings: get failed: %w", err)
	}
	return &s, nil
}

// Update replaces the buffer value, creating the row if needed.
func (r *PostgresRepository) Update(ctx context.Context, req *UpdateSettingsRequest) (*Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO settings (id, buffer_minutes)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET buffer_minutes = EXCLUDED.buffer_minutes, updated_at = now()
		RETURNING buffer_minutes, updated_at
	`
	var s Settings
	if err := r.pool.QueryRow(ctx, query, singletonID, req.BufferMinutes).
		Scan(&s.BufferMinutes, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("settings: update failed: %w", err)
	}
	return &s, nil
}

// BufferMinutes reads the configured buffer without materializing the row;
// a missing record reads as 0.
func (r *PostgresRepository) BufferMinutes(ctx context.Context) (int, error) {
	var buffer int
	err := r.pool.QueryRow(ctx, `SELECT buffer_minutes FROM settings WHERE id = $1`, singletonID).Scan(&buffer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("settings: read buffer failed: %w", err)
	}
	return buffer, nil
}

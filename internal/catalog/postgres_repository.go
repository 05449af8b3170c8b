package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores services in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const serviceColumns = `id, name, description, price_cents, duration_minutes, active, created_at, updated_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *UpsertServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO services (id, name, description, price_cents, duration_minutes, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + serviceColumns
	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		req.Name,
		req.Description,
		req.PriceCents,
		req.DurationMinutes,
		active,
	)
	svc, err := scanService(row)
	if err != nil {
		return nil, fmt.Errorf("catalog: insert failed: %w", err)
	}
	return svc, nil
}

// Update replaces the editable fields of an existing service.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpsertServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE services
		SET name = $2,
			description = $3,
			price_cents = $4,
			duration_minutes = $5,
			active = COALESCE($6, active),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + serviceColumns
	row := r.pool.QueryRow(ctx, query, id, req.Name, req.Description, req.PriceCents, req.DurationMinutes, req.Active)
	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: update failed: %w", err)
	}
	return svc, nil
}

// Deactivate soft-deletes a service; existing bookings keep their reference.
func (r *PostgresRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE services SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("catalog: deactivate failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// GetByID fetches a service regardless of its active flag.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: select failed: %w", err)
	}
	return svc, nil
}

// GetActive fetches a service only if it is still bookable.
func (r *PostgresRepository) GetActive(ctx context.Context, id string) (*Service, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1 AND active`, id)
	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: select failed: %w", err)
	}
	return svc, nil
}

// List returns services ordered by name.
func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]*Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list failed: %w", err)
	}
	defer rows.Close()

	var services []*Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan failed: %w", err)
		}
		services = append(services, svc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("catalog: list failed: %w", rows.Err())
	}
	return services, nil
}

func scanService(row pgx.Row) (*Service, error) {
	var svc Service
	if err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.PriceCents,
		&svc.DurationMinutes,
		&svc.Active,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &svc, nil
}

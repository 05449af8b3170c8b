package testimonials

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the repository uses; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores testimonials in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("testimonials: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting mocks for tests.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const testimonialColumns = `id, client_name, quote, approved, created_at, updated_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *UpsertTestimonialRequest) (*Testimonial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO testimonials (id, client_name, quote, approved)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + testimonialColumns
	row := r.db.QueryRow(ctx, query, uuid.NewString(), req.ClientName, req.Quote, req.Approved)
	item, err := scanTestimonial(row)
	if err != nil {
		return nil, fmt.Errorf("testimonials: insert failed: %w", err)
	}
	return item, nil
}

// Update replaces an existing testimonial.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpsertTestimonialRequest) (*Testimonial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE testimonials
		SET client_name = $2, quote = $3, approved = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + testimonialColumns
	row := r.db.QueryRow(ctx, query, id, req.ClientName, req.Quote, req.Approved)
	item, err := scanTestimonial(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestimonialNotFound
		}
		return nil, fmt.Errorf("testimonials: update failed: %w", err)
	}
	return item, nil
}

// Delete removes a testimonial.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("testimonials: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

// List returns testimonials, newest first.
func (r *PostgresRepository) List(ctx context.Context, approvedOnly bool) ([]*Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if approvedOnly {
		query += ` WHERE approved`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("testimonials: list failed: %w", err)
	}
	defer rows.Close()

	var items []*Testimonial
	for rows.Next() {
		item, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("testimonials: scan failed: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("testimonials: list failed: %w", rows.Err())
	}
	return items, nil
}

func scanTestimonial(row pgx.Row) (*Testimonial, error) {
	var item Testimonial
	if err := row.Scan(
		&item.ID,
		&item.ClientName,
		&item.Quote,
		&item.Approved,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

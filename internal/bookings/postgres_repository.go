package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/serenity-studio/booking-platform/internal/schedule"
)

// pgExclusionViolation is raised when an insert or update collides with
// the no-overlap exclusion constraint on occupying bookings.
const pgExclusionViolation = "23P01"

// DB is the subset of pgxpool.Pool the repository uses; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores bookings in the relational database. The
// bookings table carries a gist exclusion constraint over
// tstzrange(starts_at, ends_at) for PENDING/COMPLETED rows, which is what
// makes concurrent admissions safe: the database serializes the overlap
// check, and the loser surfaces as ErrSlotTaken.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting mocks for tests.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookingColumns = `id, client_name, client_phone, client_email, service_id, starts_at, ends_at, status, created_at`

// Create inserts a new booking row; an exclusion-constraint collision maps
// to ErrSlotTaken.
func (r *PostgresRepository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (id, client_name, client_phone, client_email, service_id, starts_at, ends_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		b.ID,
		b.ClientName,
		b.ClientPhone,
		b.ClientEmail,
		b.ServiceID,
		b.StartsAt,
		b.EndsAt,
		string(b.Status),
	).Scan(&b.CreatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("bookings: insert failed: %w", err)
	}
	return nil
}

// GetByID fetches one booking.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("bookings: select failed: %w", err)
	}
	return b, nil
}

// ListBetween returns all bookings intersecting [from, to), any status,
// ordered by start time.
func (r *PostgresRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE starts_at < $2 AND ends_at > $1
		ORDER BY starts_at ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("bookings: scan failed: %w", err)
		}
		out = append(out, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("bookings: list failed: %w", rows.Err())
	}
	return out, nil
}

// OccupiedIntervals returns the stored intervals of PENDING/COMPLETED
// bookings intersecting [from, to). The stored ends already include the
// buffer, so no recomputation happens here.
func (r *PostgresRepository) OccupiedIntervals(ctx context.Context, from, to time.Time) ([]schedule.Interval, error) {
	rows, err := r.db.Query(ctx, `
		SELECT starts_at, ends_at
		FROM bookings
		WHERE status IN ('PENDING', 'COMPLETED')
			AND starts_at < $2
			AND ends_at > $1
		ORDER BY starts_at ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("bookings: list occupied failed: %w", err)
	}
	defer rows.Close()

	var out []schedule.Interval
	for rows.Next() {
		var iv schedule.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("bookings: scan occupied failed: %w", err)
		}
		out = append(out, iv)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("bookings: list occupied failed: %w", rows.Err())
	}
	return out, nil
}

// UpdateStatus transitions a booking. Reviving a CANCELED booking re-enters
// the exclusion constraint, so a now-conflicting revival fails with
// ErrSlotTaken instead of double-booking.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	row := r.db.QueryRow(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		RETURNING `+bookingColumns, id, string(status))
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("bookings: update status failed: %w", err)
	}
	return b, nil
}

// Delete removes the row entirely.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bookings: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var status string
	if err := row.Scan(
		&b.ID,
		&b.ClientName,
		&b.ClientPhone,
		&b.ClientEmail,
		&b.ServiceID,
		&b.StartsAt,
		&b.EndsAt,
		&status,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.Status = Status(status)
	return &b, nil
}

package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
)

func newMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewPostgresRepositoryWithDB(mock), mock
}

func TestCreateMapsExclusionViolationToSlotTaken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgExclusionViolation})

	b := &Booking{
		ID:          "b1",
		ClientName:  "Maria Silva",
		ClientPhone: "+55 11 91234-5678",
		ServiceID:   "s1",
		StartsAt:    time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2025, time.March, 10, 13, 15, 0, 0, time.UTC),
		Status:      StatusPending,
	}
	if err := repo.Create(context.Background(), b); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("got %v, want ErrSlotTaken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateScansCreatedAt(t *testing.T) {
	repo, mock := newMockRepo(t)
	createdAt := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	b := &Booking{
		ID:          "b1",
		ClientName:  "Maria Silva",
		ClientPhone: "+55 11 91234-5678",
		ServiceID:   "s1",
		StartsAt:    time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2025, time.March, 10, 13, 15, 0, 0, time.UTC),
		Status:      StatusPending,
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !b.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want %v", b.CreatedAt, createdAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestOccupiedIntervalsFiltersByRange(t *testing.T) {
	repo, mock := newMockRepo(t)
	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	s := from.Add(9 * time.Hour)
	e := s.Add(75 * time.Minute)

	mock.ExpectQuery("SELECT starts_at, ends_at").
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"starts_at", "ends_at"}).AddRow(s, e))

	got, err := repo.OccupiedIntervals(context.Background(), from, to)
	if err != nil {
		t.Fatalf("OccupiedIntervals returned error: %v", err)
	}
	if len(got) != 1 || !got[0].Start.Equal(s) || !got[0].End.Equal(e) {
		t.Errorf("intervals = %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("UPDATE bookings").
		WithArgs("missing", string(StatusCanceled)).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.UpdateStatus(context.Background(), "missing", StatusCanceled); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("got %v, want ErrBookingNotFound", err)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo, _ := newMockRepo(t)

	if _, err := repo.UpdateStatus(context.Background(), "b1", Status("ARCHIVED")); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("got %v, want ErrInvalidStatus", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM bookings").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("got %v, want ErrBookingNotFound", err)
	}
}

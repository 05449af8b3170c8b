package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/serenity-studio/booking-platform/internal/observability/metrics"
	"github.com/serenity-studio/booking-platform/internal/schedule"
	"github.com/serenity-studio/booking-platform/internal/timezone"
	"github.com/serenity-studio/booking-platform/pkg/logging"
)

var bookingsTracer = otel.Tracer("serenity.internal.bookings")

// ConfirmationNotifier is told about admitted bookings; failures are the
// notifier's problem, never the client's.
type ConfirmationNotifier interface {
	BookingConfirmed(ctx context.Context, b *Booking)
}

// Service runs the booking admission pipeline and the admin lifecycle
// operations.
type Service struct {
	repo     Repository
	schedule *schedule.Service
	notifier ConfirmationNotifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewService constructs a bookings service. notifier and m may be nil.
func NewService(repo Repository, sched *schedule.Service, notifier ConfirmationNotifier, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if sched == nil {
		panic("bookings: schedule service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, schedule: sched, notifier: notifier, metrics: m, logger: logger}
}

// Admit validates the requested booking against the catalog, the weekday
// window and the existing calendar, then persists it as PENDING with the
// end snapshotted as start + duration + buffer. The repository's exclusion
// guarantee decides races: of two colliding concurrent requests exactly one
// is admitted and the other gets ErrSlotTaken.
func (s *Service) Admit(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.admit")
	defer span.End()
	span.SetAttributes(attribute.String("serenity.service_id", req.ServiceID))

	b, err := s.admit(ctx, req)
	switch {
	case err == nil:
		s.metrics.ObserveAdmission("admitted")
	case IsRejection(err):
		s.metrics.ObserveAdmission("rejected")
	default:
		span.RecordError(err)
		s.metrics.ObserveAdmission("error")
	}
	return b, err
}

func (s *Service) admit(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	total, err := s.schedule.ResolveTotalDuration(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	studio := s.schedule.Studio()
	start := req.StartsAt.UTC()
	end := start.Add(total.Total())
	date := studio.LocalDate(start)

	window, err := s.schedule.WindowFor(ctx, date)
	if err != nil {
		return nil, err
	}

	openAt := studio.At(date, window.OpenHour, 0)
	closeAt := studio.At(date, window.CloseHour, 0)
	if start.Before(openAt) || end.After(closeAt) {
		return nil, schedule.ErrOutsideBusinessHours
	}

	// Advisory pre-check; the insert below is what actually decides races.
	busy, err := s.repo.OccupiedIntervals(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("bookings: load occupied intervals: %w", err)
	}
	if schedule.OverlapsAny(start, end, busy) {
		return nil, ErrSlotTaken
	}

	booking := &Booking{
		ID:          uuid.NewString(),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		StartsAt:    start,
		EndsAt:      end,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking admitted",
		"booking_id", booking.ID,
		"service_id", booking.ServiceID,
		"starts_at", booking.StartsAt,
		"ends_at", booking.EndsAt,
	)

	if s.notifier != nil {
		// Off the request path: the booking is committed, and the client's
		// response must not wait on (or be canceled with) the notification.
		go s.notifier.BookingConfirmed(context.WithoutCancel(ctx), booking)
	}
	return booking, nil
}

// Slots returns the bookable start times for a date and service, with
// query metrics recorded.
func (s *Service) Slots(ctx context.Context, date string, serviceID string, now time.Time) ([]string, error) {
	parsed, err := timezone.ParseDate(date)
	if err != nil {
		return nil, err
	}
	slots, err := s.schedule.Slots(ctx, parsed, serviceID, now)
	if err != nil {
		s.metrics.ObserveSlotQuery("error", 0)
		return nil, err
	}
	s.metrics.ObserveSlotQuery("ok", len(slots))
	return slots, nil
}

// Transition applies an admin status change.
func (s *Service) Transition(ctx context.Context, id string, status Status) (*Booking, error) {
	b, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking status changed", "booking_id", b.ID, "status", b.Status)
	return b, nil
}

// ListDay returns every booking touching the given local calendar day.
func (s *Service) ListDay(ctx context.Context, date string) ([]*Booking, error) {
	parsed, err := timezone.ParseDate(date)
	if err != nil {
		return nil, err
	}
	studio := s.schedule.Studio()
	return s.repo.ListBetween(ctx, studio.LocalDayStartUTC(parsed), studio.LocalDayEndUTC(parsed))
}

// Delete removes a booking record entirely (admin housekeeping).
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("booking deleted", "booking_id", id)
	return nil
}

// IsRejection reports whether err is one of the admission taxonomy errors
// a client can act on, as opposed to an internal failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingPhone) ||
		errors.Is(err, ErrMissingService) ||
		errors.Is(err, ErrMissingStart) ||
		errors.Is(err, ErrSlotTaken) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, schedule.ErrServiceUnavailable) ||
		errors.Is(err, schedule.ErrDayClosed) ||
		errors.Is(err, schedule.ErrOutsideBusinessHours)
}

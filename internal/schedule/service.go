package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/serenity-studio/booking-platform/internal/availability"
	"github.com/serenity-studio/booking-platform/internal/catalog"
	"github.com/serenity-studio/booking-platform/internal/timezone"
	"github.com/serenity-studio/booking-platform/pkg/logging"
)

var scheduleTracer = otel.Tracer("serenity.internal.schedule")

// Catalog is the slice of the service catalog the scheduler needs.
type Catalog interface {
	GetActive(ctx context.Context, id string) (*catalog.Service, error)
}

// BufferSource reads the studio-wide buffer; 0 when unset.
type BufferSource interface {
	BufferMinutes(ctx context.Context) (int, error)
}

// Windows reads a weekday's operating hours; nil when none configured.
type Windows interface {
	GetByWeekday(ctx context.Context, weekday int) (*availability.DayWindow, error)
}

// OccupiedLister returns the calendar-occupying intervals (PENDING and
// COMPLETED bookings) intersecting [from, to).
type OccupiedLister interface {
	OccupiedIntervals(ctx context.Context, from, to time.Time) ([]Interval, error)
}

// Service computes bookable slots. Every call is a fresh, stateless
// computation over the collaborators' current data.
type Service struct {
	catalog  Catalog
	buffer   BufferSource
	windows  Windows
	occupied OccupiedLister
	studio   *timezone.Studio
	logger   *logging.Logger
}

// NewService constructs a schedule service.
func NewService(cat Catalog, buffer BufferSource, windows Windows, occupied OccupiedLister, studio *timezone.Studio, logger *logging.Logger) *Service {
	if cat == nil || buffer == nil || windows == nil || occupied == nil {
		panic("schedule: all collaborators required")
	}
	if studio == nil {
		studio = timezone.NewStudio("")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{catalog: cat, buffer: buffer, windows: windows, occupied: occupied, studio: studio, logger: logger}
}

// Studio exposes the timezone collaborator for callers that format times.
func (s *Service) Studio() *timezone.Studio {
	return s.studio
}

// ResolveTotalDuration combines the service's duration with the current
// global buffer. A missing settings record reads as buffer 0; a missing or
// inactive service is ErrServiceUnavailable.
func (s *Service) ResolveTotalDuration(ctx context.Context, serviceID string) (TotalDuration, error) {
	svc, err := s.catalog.GetActive(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return TotalDuration{}, ErrServiceUnavailable
		}
		return TotalDuration{}, fmt.Errorf("schedule: load service: %w", err)
	}

	buffer, err := s.buffer.BufferMinutes(ctx)
	if err != nil {
		return TotalDuration{}, fmt.Errorf("schedule: load buffer: %w", err)
	}

	return TotalDuration{ServiceMinutes: svc.DurationMinutes, BufferMinutes: buffer}, nil
}

// WindowFor resolves the operating window of a calendar date. ErrDayClosed
// covers missing records, inactive records, and degenerate hour ranges.
func (s *Service) WindowFor(ctx context.Context, date timezone.Date) (*availability.DayWindow, error) {
	window, err := s.windows.GetByWeekday(ctx, s.studio.WeekdayOf(date))
	if err != nil {
		return nil, fmt.Errorf("schedule: load window: %w", err)
	}
	if window.Closed() {
		return nil, ErrDayClosed
	}
	return window, nil
}

// Slots returns the ordered bookable start times for a date and service as
// studio-local "HH:MM" strings. An unavailable service or a closed day
// yields an empty list, not an error: the public booking page treats both
// as "nothing to offer".
func (s *Service) Slots(ctx context.Context, date timezone.Date, serviceID string, now time.Time) ([]string, error) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.slots")
	defer span.End()
	span.SetAttributes(
		attribute.String("serenity.date", date.String()),
		attribute.String("serenity.service_id", serviceID),
	)

	total, err := s.ResolveTotalDuration(ctx, serviceID)
	if err != nil {
		if errors.Is(err, ErrServiceUnavailable) {
			return []string{}, nil
		}
		span.RecordError(err)
		return nil, err
	}

	window, err := s.WindowFor(ctx, date)
	if err != nil {
		if errors.Is(err, ErrDayClosed) {
			return []string{}, nil
		}
		span.RecordError(err)
		return nil, err
	}

	busy, err := s.occupied.OccupiedIntervals(ctx, s.studio.LocalDayStartUTC(date), s.studio.LocalDayEndUTC(date))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("schedule: load occupied intervals: %w", err)
	}

	openAt := s.studio.At(date, window.OpenHour, 0)
	closeAt := s.studio.At(date, window.CloseHour, 0)
	starts := GridSlots(openAt, closeAt, total.Total(), busy, now)

	slots := make([]string, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, s.studio.LocalClock(start))
	}

	s.logger.Debug("slots computed",
		"date", date.String(),
		"service_id", serviceID,
		"busy", len(busy),
		"slots", len(slots),
	)
	return slots, nil
}

package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/serenity-studio/booking-platform/internal/availability"
	"github.com/serenity-studio/booking-platform/internal/catalog"
	"github.com/serenity-studio/booking-platform/internal/schedule"
	"github.com/serenity-studio/booking-platform/internal/settings"
	"github.com/serenity-studio/booking-platform/internal/timezone"
	"github.com/serenity-studio/booking-platform/pkg/logging"
)

// monday is 2025-03-10, a Monday, in a UTC studio.
var mondayNine = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	service   *Service
	repo      *InMemoryRepository
	sched     *schedule.Service
	serviceID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	cat := catalog.NewInMemoryRepository()
	svc, err := cat.Create(ctx, &catalog.UpsertServiceRequest{
		Name:            "Deep Tissue Massage",
		PriceCents:      15000,
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	buf := settings.NewInMemoryRepository()
	if _, err := buf.Update(ctx, &settings.UpdateSettingsRequest{BufferMinutes: 15}); err != nil {
		t.Fatalf("set buffer: %v", err)
	}

	windows := availability.NewInMemoryRepository()
	// Open Monday through Friday, 9-18.
	for d := 1; d <= 5; d++ {
		if _, err := windows.Upsert(ctx, d, &availability.UpsertWindowRequest{
			OpenHour: 9, CloseHour: 18, Active: true,
		}); err != nil {
			t.Fatalf("set window: %v", err)
		}
	}

	repo := NewInMemoryRepository()
	sched := schedule.NewService(cat, buf, windows, repo, timezone.NewStudio(""), logging.Default())
	return &fixture{
		service:   NewService(repo, sched, nil, nil, logging.Default()),
		repo:      repo,
		sched:     sched,
		serviceID: svc.ID,
	}
}

func (f *fixture) request(start time.Time) *CreateBookingRequest {
	return &CreateBookingRequest{
		ClientName:  "Maria Silva",
		ClientPhone: "+55 11 91234-5678",
		ClientEmail: "maria@example.com",
		ServiceID:   f.serviceID,
		StartsAt:    start,
	}
}

type blockingNotifier struct {
	release chan struct{}
	got     chan *Booking
	ctxErr  chan error
}

func (n *blockingNotifier) BookingConfirmed(ctx context.Context, b *Booking) {
	<-n.release
	n.ctxErr <- ctx.Err()
	n.got <- b
}

func TestAdmitDoesNotWaitForNotifier(t *testing.T) {
	f := newFixture(t)
	n := &blockingNotifier{
		release: make(chan struct{}),
		got:     make(chan *Booking, 1),
		ctxErr:  make(chan error, 1),
	}
	svc := NewService(f.repo, f.sched, n, nil, logging.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan *Booking, 1)
	go func() {
		b, err := svc.Admit(ctx, f.request(mondayNine))
		if err != nil {
			t.Errorf("Admit returned error: %v", err)
		}
		done <- b
	}()

	var admitted *Booking
	select {
	case admitted = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Admit blocked on the notifier")
	}

	// The request context ending must not cancel the in-flight notification.
	cancel()
	close(n.release)

	select {
	case err := <-n.ctxErr:
		if err != nil {
			t.Errorf("notifier context canceled with the request: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier never ran")
	}
	if got := <-n.got; admitted != nil && got.ID != admitted.ID {
		t.Errorf("notifier got booking %s, want %s", got.ID, admitted.ID)
	}
}

func TestAdmitHappyPath(t *testing.T) {
	f := newFixture(t)

	b, err := f.service.Admit(context.Background(), f.request(mondayNine))
	if err != nil {
		t.Fatalf("Admit returned error: %v", err)
	}
	if b.Status != StatusPending {
		t.Errorf("status = %s, want PENDING", b.Status)
	}
	// 60 min service + 15 min buffer = 75 min calendar footprint.
	if got := b.EndsAt.Sub(b.StartsAt); got != 75*time.Minute {
		t.Errorf("footprint = %v, want 75m", got)
	}
}

func TestAdmitBufferSpacing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.Admit(ctx, f.request(mondayNine)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// 74 minutes later still collides with the buffered end.
	if _, err := f.service.Admit(ctx, f.request(mondayNine.Add(74*time.Minute))); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("74 min later: got %v, want ErrSlotTaken", err)
	}

	// Exactly 75 minutes later starts at the buffered end and is admitted.
	if _, err := f.service.Admit(ctx, f.request(mondayNine.Add(75*time.Minute))); err != nil {
		t.Errorf("75 min later: got %v, want admitted", err)
	}
}

func TestAdmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateBookingRequest)
		wantErr error
	}{
		{"missing name", func(r *CreateBookingRequest) { r.ClientName = " " }, ErrMissingName},
		{"missing phone", func(r *CreateBookingRequest) { r.ClientPhone = "" }, ErrMissingPhone},
		{"missing service", func(r *CreateBookingRequest) { r.ServiceID = "" }, ErrMissingService},
		{"missing start", func(r *CreateBookingRequest) { r.StartsAt = time.Time{} }, ErrMissingStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(mondayNine)
			tt.mutate(req)
			if _, err := f.service.Admit(ctx, req); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdmitUnknownService(t *testing.T) {
	f := newFixture(t)
	req := f.request(mondayNine)
	req.ServiceID = "no-such-service"

	if _, err := f.service.Admit(context.Background(), req); !errors.Is(err, schedule.ErrServiceUnavailable) {
		t.Errorf("got %v, want ErrServiceUnavailable", err)
	}
}

func TestAdmitClosedDay(t *testing.T) {
	f := newFixture(t)
	// 2025-03-09 is a Sunday with no window.
	sunday := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)

	if _, err := f.service.Admit(context.Background(), f.request(sunday)); !errors.Is(err, schedule.ErrDayClosed) {
		t.Errorf("got %v, want ErrDayClosed", err)
	}
}

func TestAdmitOutsideBusinessHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Before opening.
	early := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	if _, err := f.service.Admit(ctx, f.request(early)); !errors.Is(err, schedule.ErrOutsideBusinessHours) {
		t.Errorf("08:00 start: got %v, want ErrOutsideBusinessHours", err)
	}

	// 17:00 + 75 min = 18:15, past the 18:00 close.
	late := time.Date(2025, time.March, 10, 17, 0, 0, 0, time.UTC)
	if _, err := f.service.Admit(ctx, f.request(late)); !errors.Is(err, schedule.ErrOutsideBusinessHours) {
		t.Errorf("17:00 start: got %v, want ErrOutsideBusinessHours", err)
	}

	// 16:45 + 75 min lands exactly on close and is allowed.
	fit := time.Date(2025, time.March, 10, 16, 45, 0, 0, time.UTC)
	if _, err := f.service.Admit(ctx, f.request(fit)); err != nil {
		t.Errorf("16:45 start: got %v, want admitted", err)
	}
}

func TestAdmitConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Admit(ctx, f.request(mondayNine))
		}(i)
	}
	wg.Wait()

	admitted := 0
	for i, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, ErrSlotTaken):
		default:
			t.Errorf("request %d: unexpected error %v", i, err)
		}
	}
	if admitted != 1 {
		t.Fatalf("admitted = %d, want exactly 1", admitted)
	}

	// The committed calendar holds no overlapping occupying pair.
	day, err := f.repo.ListBetween(ctx, mondayNine.Add(-24*time.Hour), mondayNine.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 0; i < len(day); i++ {
		for j := i + 1; j < len(day); j++ {
			if !day[i].Status.Occupying() || !day[j].Status.Occupying() {
				continue
			}
			iv := schedule.Interval{Start: day[i].StartsAt, End: day[i].EndsAt}
			if iv.Overlaps(day[j].StartsAt, day[j].EndsAt) {
				t.Errorf("bookings %s and %s overlap", day[i].ID, day[j].ID)
			}
		}
	}
}

func TestTransitionCanceledFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Admit(ctx, f.request(mondayNine))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := f.service.Transition(ctx, first.ID, StatusCanceled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The canceled interval no longer blocks admission.
	second, err := f.service.Admit(ctx, f.request(mondayNine))
	if err != nil {
		t.Fatalf("rebooking freed slot: %v", err)
	}

	// Reviving the canceled booking would double-book and must fail.
	if _, err := f.service.Transition(ctx, first.ID, StatusPending); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("revive into occupied slot: got %v, want ErrSlotTaken", err)
	}

	if _, err := f.service.Transition(ctx, second.ID, StatusCompleted); err != nil {
		t.Errorf("complete: %v", err)
	}
}

func TestListDayAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Admit(ctx, f.request(mondayNine))
	if err != nil {
		t.Fatalf("admit: %v", err)
	}

	day, err := f.service.ListDay(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("ListDay: %v", err)
	}
	if len(day) != 1 || day[0].ID != b.ID {
		t.Fatalf("ListDay = %+v, want the admitted booking", day)
	}

	if err := f.service.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.service.Delete(ctx, b.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("second delete: got %v, want ErrBookingNotFound", err)
	}
}

func TestSlotsReflectAdmissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	past := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	before, err := f.service.Slots(ctx, "2025-03-10", f.serviceID, past)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if _, err := f.service.Admit(ctx, f.request(mondayNine)); err != nil {
		t.Fatalf("admit: %v", err)
	}
	after, err := f.service.Slots(ctx, "2025-03-10", f.serviceID, past)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(after) >= len(before) {
		t.Errorf("slots after admission (%d) should shrink from %d", len(after), len(before))
	}
	for _, s := range after {
		if s == "09:00" {
			t.Error("09:00 was just booked and must not be offered")
		}
	}
}

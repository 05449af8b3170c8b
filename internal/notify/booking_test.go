package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-studio/booking-platform/internal/bookings"
	"github.com/serenity-studio/booking-platform/internal/catalog"
	"github.com/serenity-studio/booking-platform/internal/timezone"
)

type capturingSender struct {
	sent []EmailMessage
	err  error
}

func (c *capturingSender) Send(_ context.Context, msg EmailMessage) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func testBooking(t *testing.T, serviceID string) *bookings.Booking {
	t.Helper()
	starts := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	return &bookings.Booking{
		ID:          "bk-1",
		ClientName:  "Ana",
		ClientPhone: "+55 11 99999-0000",
		ClientEmail: "ana@example.com",
		ServiceID:   serviceID,
		StartsAt:    starts,
		EndsAt:      starts.Add(75 * time.Minute),
		Status:      bookings.StatusPending,
	}
}

func TestBookingConfirmedSendsEmail(t *testing.T) {
	cat := catalog.NewInMemoryRepository()
	svc, err := cat.Create(context.Background(), &catalog.UpsertServiceRequest{
		Name:            "Deep Tissue Massage",
		PriceCents:      18000,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	sender := &capturingSender{}
	n := NewBookingNotifier(sender, cat, timezone.NewStudio("UTC"), "Serenity Studio", nil)

	n.BookingConfirmed(context.Background(), testBooking(t, svc.ID))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Contains(t, msg.Body, "Deep Tissue Massage")
	assert.Contains(t, msg.Body, "2025-03-10")
	assert.Contains(t, msg.Body, "12:00")
}

func TestBookingConfirmedNoEmailAddress(t *testing.T) {
	sender := &capturingSender{}
	n := NewBookingNotifier(sender, nil, timezone.NewStudio("UTC"), "", nil)

	b := testBooking(t, "svc-1")
	b.ClientEmail = ""
	n.BookingConfirmed(context.Background(), b)

	assert.Empty(t, sender.sent)
}

func TestBookingConfirmedSendFailureIsSwallowed(t *testing.T) {
	sender := &capturingSender{err: errors.New("smtp down")}
	n := NewBookingNotifier(sender, nil, timezone.NewStudio("UTC"), "", nil)

	// Must not panic or propagate; the booking is already stored.
	n.BookingConfirmed(context.Background(), testBooking(t, "svc-1"))
	assert.Empty(t, sender.sent)
}

func TestBookingConfirmedUnknownService(t *testing.T) {
	sender := &capturingSender{}
	n := NewBookingNotifier(sender, catalog.NewInMemoryRepository(), timezone.NewStudio("UTC"), "", nil)

	n.BookingConfirmed(context.Background(), testBooking(t, "gone"))

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Body, "your session")
}

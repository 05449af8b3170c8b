package notify

import (
	"context"
	"fmt"

	"github.com/serenity-studio/booking-platform/internal/bookings"
	"github.com/serenity-studio/booking-platform/internal/catalog"
	"github.com/serenity-studio/booking-platform/internal/timezone"
	"github.com/serenity-studio/booking-platform/pkg/logging"
)

// BookingNotifier emails the client a confirmation after a booking is
// admitted. Failures are logged and swallowed: the booking already exists
// and must not be rolled back over a mail outage.
type BookingNotifier struct {
	sender     EmailSender
	catalog    catalog.Repository
	studio     *timezone.Studio
	studioName string
	logger     *logging.Logger
}

// NewBookingNotifier wires a notifier. A nil sender disables delivery.
func NewBookingNotifier(sender EmailSender, cat catalog.Repository, studio *timezone.Studio, studioName string, logger *logging.Logger) *BookingNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	if studioName == "" {
		studioName = "Serenity Studio"
	}
	return &BookingNotifier{
		sender:     sender,
		catalog:    cat,
		studio:     studio,
		studioName: studioName,
		logger:     logger,
	}
}

// BookingConfirmed implements bookings.ConfirmationNotifier.
func (n *BookingNotifier) BookingConfirmed(ctx context.Context, b *bookings.Booking) {
	if n.sender == nil || b.ClientEmail == "" {
		return
	}

	serviceName := "your session"
	if n.catalog != nil {
		if svc, err := n.catalog.GetActive(ctx, b.ServiceID); err == nil {
			serviceName = svc.Name
		}
	}

	date := n.studio.LocalDate(b.StartsAt)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking at %s is confirmed.\n\nService: %s\nDate: %s\nTime: %s\n\nSee you soon!",
		b.ClientName,
		n.studioName,
		serviceName,
		date.String(),
		n.studio.LocalClock(b.StartsAt),
	)

	msg := EmailMessage{
		To:      b.ClientEmail,
		ToName:  b.ClientName,
		Subject: fmt.Sprintf("Booking confirmed at %s", n.studioName),
		Body:    body,
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.Error("booking confirmation email failed", "booking_id", b.ID, "error", err)
		return
	}
	n.logger.Info("booking confirmation sent", "booking_id", b.ID)
}

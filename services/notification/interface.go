package notification

import (
	"context"

	"roomify/models"
)

// NotificationService is the fan-out collaborator triggered after a
// successful booking or cancellation. Implementations are best-effort:
// delivery failure must never fail the booking itself.
type NotificationService interface {
	BookingConfirmed(ctx context.Context, booking *models.Booking, room *models.Room) error
	BookingCancelled(ctx context.Context, booking *models.Booking) error
}

// Channels holds the outbound channel toggles, constructed once at process
// start and injected; core logic never reads ambient globals.
type Channels struct {
	EmailEnabled bool
	PushEnabled  bool
}

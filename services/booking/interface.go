package booking

import (
	"context"

	blockedRepo "roomify/database/repository/blocked"
	bookingRepo "roomify/database/repository/booking"
	roomRepo "roomify/database/repository/room"
	"roomify/models"
	"roomify/services/notification"
)

// BookingService is the availability and booking engine shared by the web
// and chat paths.
type BookingService interface {
	OccupiedIntervals(ctx context.Context, roomID, date string) ([]models.OccupiedInterval, error)
	IsAvailable(ctx context.Context, roomID, date, start, end, excludeBookingID string) (bool, error)
	CheckSegments(ctx context.Context, roomID, date string, segments []models.Segment) error
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	LookupBooking(ctx context.Context, number, phone string) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) error
	CompleteBooking(ctx context.Context, id string) error
	ListBookings(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error)
	ListChatUserBookings(ctx context.Context, chatUserID string) ([]models.Booking, error)
	Stats(ctx context.Context) (*models.BookingStats, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Rooms    roomRepo.RoomRepository
	Bookings bookingRepo.BookingRepository
	Blocked  blockedRepo.BlockedRepository
	Notifier notification.NotificationService
}

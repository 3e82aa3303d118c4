package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	bookingRepo "roomify/database/repository/booking"
	"roomify/models"
	"roomify/utils"
)

// LookupBooking is the customer-facing two-factor lookup: number plus phone,
// so booking-number enumeration cannot leak another customer's details.
func (s *DefaultBookingService) LookupBooking(ctx context.Context, number, phone string) (*models.Booking, error) {
	b, err := s.Bookings.GetByNumberAndPhone(ctx, number, phone)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, NewNotFoundError("booking", number)
		}
		return nil, err
	}
	return b, nil
}

// CancelBooking transitions a booking to cancelled and fires the fan-out.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, id string) error {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return NewNotFoundError("booking", id)
		}
		return err
	}
	if err := s.Bookings.UpdateStatus(ctx, id, models.StatusCancelled); err != nil {
		return err
	}
	s.notifyCancelled(b)
	return nil
}

// CompleteBooking transitions a booking to completed (admin only).
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, id string) error {
	err := s.Bookings.UpdateStatus(ctx, id, models.StatusCompleted)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return NewNotFoundError("booking", id)
	}
	return err
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error) {
	return s.Bookings.ListFiltered(ctx, filter)
}

// ListChatUserBookings returns the chat user's upcoming confirmed bookings.
func (s *DefaultBookingService) ListChatUserBookings(ctx context.Context, chatUserID string) ([]models.Booking, error) {
	return s.Bookings.ListByChatUser(ctx, chatUserID, []string{models.StatusConfirmed})
}

func (s *DefaultBookingService) Stats(ctx context.Context) (*models.BookingStats, error) {
	today := time.Now().Format("2006-01-02")
	stats, err := s.Bookings.Stats(ctx, today)
	if err != nil {
		return nil, err
	}
	activeRooms, err := s.Rooms.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRooms = int(activeRooms)
	return stats, nil
}

func (s *DefaultBookingService) notifyCancelled(booking *models.Booking) {
	if s.Notifier == nil {
		return
	}
	b := *booking
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.Notifier.BookingCancelled(ctx, &b); err != nil {
			utils.GetLogger().Warn("booking cancellation fan-out failed",
				zap.String("bookingNumber", b.BookingNumber), zap.Error(err))
		}
	}()
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	bookingRepo "roomify/database/repository/booking"
	roomRepo "roomify/database/repository/room"
	"roomify/models"
	"roomify/utils"
)

const bookingNumberPrefix = "MR"

// CreateBookingInput carries everything needed to commit a booking. Segments
// must be ordered and non-overlapping; a plain start/end request arrives as a
// one-element list.
type CreateBookingInput struct {
	RoomID     string
	Date       string // "YYYY-MM-DD"
	Segments   []models.Segment
	Name       string
	Phone      string
	Email      string
	Department string
	Attendees  int
	Purpose    string
	Note       string
	ChatUserID string
}

// AllocateBookingNumber builds the next human-readable booking number for the
// date: MR + YYYYMMDD + 4-digit zero-padded daily sequence. Count-then-format
// is not atomic; the unique index on booking_number is the real guarantee and
// collisions surface as a retryable duplicate error.
func (s *DefaultBookingService) AllocateBookingNumber(ctx context.Context, date string) (string, error) {
	prefix := bookingNumberPrefix + strings.ReplaceAll(date, "-", "")
	count, err := s.Bookings.CountByNumberPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to count bookings for %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// TotalPrice computes floor(durationHours * hourlyRate). Truncation toward
// zero, not nearest-integer rounding.
func TotalPrice(durationHours float64, hourlyRate int) int {
	return int(math.Floor(durationHours * float64(hourlyRate)))
}

// CreateBooking validates the request, re-checks availability as the
// authoritative gate immediately before persisting, computes duration and
// price, and commits with status confirmed. The only error surfaced after
// initial validation passes is a ConflictError from the final re-check.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if err := validateContact(input); err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, NewFormatError("date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", input.Date))
	}
	if len(input.Segments) == 0 {
		return nil, NewFormatError("segments", "at least one time segment is required")
	}

	duration, err := validateSegments(input.Segments)
	if err != nil {
		return nil, err
	}

	room, err := s.Rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, NewNotFoundError("room", input.RoomID)
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, NewNotFoundError("room", input.RoomID)
	}

	// Authoritative gate: re-check availability as close to the write as the
	// storage allows.
	if err := s.CheckSegments(ctx, input.RoomID, input.Date, input.Segments); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		RoomID:        room.ID,
		RoomName:      room.Name,
		CustomerName:  input.Name,
		CustomerPhone: input.Phone,
		CustomerEmail: input.Email,
		Department:    input.Department,
		Date:          input.Date,
		Segments:      input.Segments,
		Duration:      duration,
		TotalPrice:    TotalPrice(duration, room.HourlyRate),
		Attendees:     input.Attendees,
		Purpose:       input.Purpose,
		Note:          input.Note,
		Status:        models.StatusConfirmed,
		ChatUserID:    input.ChatUserID,
	}

	// The unique index turns a booking-number race into a detectable
	// duplicate; retry once with a fresh allocation.
	for attempt := 0; attempt < 2; attempt++ {
		number, err := s.AllocateBookingNumber(ctx, input.Date)
		if err != nil {
			return nil, err
		}
		booking.BookingNumber = number
		err = s.Bookings.Create(ctx, booking)
		if err == nil {
			s.notifyConfirmed(booking, room)
			return booking, nil
		}
		if !errors.Is(err, bookingRepo.ErrDuplicateBookingNumber) {
			return nil, fmt.Errorf("failed to persist booking: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to allocate a unique booking number for %s", input.Date)
}

func validateContact(input CreateBookingInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return NewFormatError("name", "name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return NewFormatError("phone", "phone is required")
	}
	// Email is mandatory: it is the confirmation channel.
	if strings.TrimSpace(input.Email) == "" {
		return NewFormatError("email", "email is required")
	}
	return nil
}

// validateSegments checks every segment parses, has positive length, and that
// the list is ordered and non-overlapping. Returns the summed duration.
func validateSegments(segments []models.Segment) (float64, error) {
	var total float64
	prevEnd := -1
	for _, seg := range segments {
		start, err := ToMinutes(seg.Start)
		if err != nil {
			return 0, err
		}
		end, err := ToMinutes(seg.End)
		if err != nil {
			return 0, err
		}
		if end <= start {
			return 0, NewFormatError("segments", fmt.Sprintf("segment %s-%s has non-positive duration", seg.Start, seg.End))
		}
		if start < prevEnd {
			return 0, NewFormatError("segments", "segments must be ordered and non-overlapping")
		}
		prevEnd = end
		total += float64(end-start) / 60
	}
	return total, nil
}

// notifyConfirmed fires the fan-out collaborator. Best-effort: failures are
// logged and swallowed, never propagated to the booking caller.
func (s *DefaultBookingService) notifyConfirmed(booking *models.Booking, room *models.Room) {
	if s.Notifier == nil {
		return
	}
	b := *booking
	r := *room
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.Notifier.BookingConfirmed(ctx, &b, &r); err != nil {
			utils.GetLogger().Warn("booking confirmation fan-out failed",
				zap.String("bookingNumber", b.BookingNumber), zap.Error(err))
		}
	}()
}

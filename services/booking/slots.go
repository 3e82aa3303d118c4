package booking

import (
	"context"
	"fmt"

	"roomify/models"
)

// OccupiedIntervals returns every unavailable span for the room on the given
// date: each segment of every confirmed/completed booking, expanded one
// interval per segment, plus every blackout window that is room-specific or
// venue-wide. Read-only and safe to call concurrently.
func (s *DefaultBookingService) OccupiedIntervals(ctx context.Context, roomID, date string) ([]models.OccupiedInterval, error) {
	statuses := []string{models.StatusConfirmed, models.StatusCompleted}
	bookings, err := s.Bookings.ListByRoomDateStatus(ctx, roomID, date, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s on %s: %w", roomID, date, err)
	}

	var intervals []models.OccupiedInterval
	for _, b := range bookings {
		for _, seg := range b.Segments {
			start, err := ToMinutes(seg.Start)
			if err != nil {
				return nil, fmt.Errorf("booking %s carries a bad segment start: %w", b.ID, err)
			}
			end, err := ToMinutes(seg.End)
			if err != nil {
				return nil, fmt.Errorf("booking %s carries a bad segment end: %w", b.ID, err)
			}
			intervals = append(intervals, models.OccupiedInterval{
				Start:     start,
				End:       end,
				Label:     seg.Start + " - " + seg.End,
				Kind:      models.IntervalKindBooking,
				BookingID: b.ID,
			})
		}
	}

	blocks, err := s.Blocked.ListForRoomAndDate(ctx, roomID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load blackout windows for %s on %s: %w", roomID, date, err)
	}
	for _, blk := range blocks {
		start, err := ToMinutes(blk.Start)
		if err != nil {
			return nil, fmt.Errorf("blackout %s carries a bad start: %w", blk.ID, err)
		}
		end, err := ToMinutes(blk.End)
		if err != nil {
			return nil, fmt.Errorf("blackout %s carries a bad end: %w", blk.ID, err)
		}
		intervals = append(intervals, models.OccupiedInterval{
			Start: start,
			End:   end,
			Label: blk.Start + " - " + blk.End,
			Kind:  models.IntervalKindBlocked,
		})
	}

	return intervals, nil
}

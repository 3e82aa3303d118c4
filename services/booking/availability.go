package booking

import (
	"context"

	"roomify/models"
)

// IsAvailable reports whether the room is free for [start, end) on the given
// date. excludeBookingID removes a booking's own intervals from consideration
// when re-validating an edit.
func (s *DefaultBookingService) IsAvailable(ctx context.Context, roomID, date, start, end, excludeBookingID string) (bool, error) {
	reqStart, err := ToMinutes(start)
	if err != nil {
		return false, err
	}
	reqEnd, err := ToMinutes(end)
	if err != nil {
		return false, err
	}

	occupied, err := s.OccupiedIntervals(ctx, roomID, date)
	if err != nil {
		return false, err
	}

	for _, iv := range occupied {
		if excludeBookingID != "" && iv.BookingID == excludeBookingID {
			continue
		}
		if Overlaps(reqStart, reqEnd, iv.Start, iv.End) {
			return false, nil
		}
	}
	return true, nil
}

// CheckSegments validates each requested segment in input order and returns a
// ConflictError carrying the first conflicting segment verbatim. Evaluation
// short-circuits on the first conflict. Segments are checked independently so
// a single request can book non-contiguous chunks of a day and still get a
// per-segment error.
func (s *DefaultBookingService) CheckSegments(ctx context.Context, roomID, date string, segments []models.Segment) error {
	for _, seg := range segments {
		free, err := s.IsAvailable(ctx, roomID, date, seg.Start, seg.End, "")
		if err != nil {
			return err
		}
		if !free {
			return &ConflictError{Segment: seg}
		}
	}
	return nil
}

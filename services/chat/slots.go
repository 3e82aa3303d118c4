package chat

import (
	"context"
	"fmt"
)

// CandidateSlot is one hour-aligned bookable window within venue hours,
// with its availability resolved live against the booking engine.
type CandidateSlot struct {
	Start     string
	End       string
	Available bool
}

// candidateSlots builds the venue-hours slot grid for a room and date. Each
// slot is one hour; availability is checked live so the grid reflects
// bookings made moments ago.
func (s *DefaultChatService) candidateSlots(ctx context.Context, roomID, date string) ([]CandidateSlot, error) {
	var slots []CandidateSlot
	for h := s.Hours.OpenHour; h < s.Hours.CloseHour; h++ {
		start := fmt.Sprintf("%02d:00", h)
		end := fmt.Sprintf("%02d:00", h+1)
		free, err := s.Booking.IsAvailable(ctx, roomID, date, start, end, "")
		if err != nil {
			return nil, err
		}
		slots = append(slots, CandidateSlot{Start: start, End: end, Available: free})
	}
	return slots, nil
}

// isCandidate reports whether start/end name one of the hour-aligned slots.
func (s *DefaultChatService) isCandidate(start, end string) bool {
	for h := s.Hours.OpenHour; h < s.Hours.CloseHour; h++ {
		if start == fmt.Sprintf("%02d:00", h) && end == fmt.Sprintf("%02d:00", h+1) {
			return true
		}
	}
	return false
}

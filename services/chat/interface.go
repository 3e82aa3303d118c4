package chat

import (
	"context"
	"time"

	roomRepo "roomify/database/repository/room"
	svc "roomify/services/booking"
)

// ChatService is the conversational entry point: one text-message handler per
// external chat user id, plus a follow event that seeds a welcome response.
type ChatService interface {
	HandleMessage(ctx context.Context, userID, text string) []string
	HandleFollow(ctx context.Context, userID string) []string
}

// VenueHours bound the hour-aligned candidate slots offered by the chat flow.
type VenueHours struct {
	OpenHour  int // first bookable hour, e.g. 8 for 08:00
	CloseHour int // venue closes at this hour, e.g. 21 for 21:00
}

// DefaultChatService drives the multi-step booking state machine.
type DefaultChatService struct {
	Sessions SessionStore
	Phones   PhoneBook
	Booking  svc.BookingService
	Rooms    roomRepo.RoomRepository
	Hours    VenueHours

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time

	locks *userLocks
}

func NewDefaultChatService(
	sessions SessionStore,
	phones PhoneBook,
	bookingSvc svc.BookingService,
	rooms roomRepo.RoomRepository,
	hours VenueHours,
) *DefaultChatService {
	return &DefaultChatService{
		Sessions: sessions,
		Phones:   phones,
		Booking:  bookingSvc,
		Rooms:    rooms,
		Hours:    hours,
		Now:      time.Now,
		locks:    newUserLocks(),
	}
}

package chat

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	svc "roomify/services/booking"
	"roomify/utils"
)

// tryGlobalCommand matches the always-available commands. A matched command
// abandons any reservation in progress before it is handled, so a user can
// never be wedged mid-flow.
func (s *DefaultChatService) tryGlobalCommand(ctx context.Context, userID, text, lower string) ([]string, bool) {
	fields := strings.Fields(text)

	switch {
	case lower == "help":
		s.clearSession(ctx, userID)
		return []string{helpReply()}, true

	case lower == "menu":
		s.clearSession(ctx, userID)
		return s.cmdMenu(ctx), true

	case lower == "my bookings":
		s.clearSession(ctx, userID)
		return s.cmdMyBookings(ctx, userID), true

	case len(fields) == 2 && strings.EqualFold(fields[0], "query"):
		s.clearSession(ctx, userID)
		return s.cmdQuery(ctx, userID, fields[1]), true

	case (len(fields) == 2 || len(fields) == 3) && strings.EqualFold(fields[0], "timeslot"):
		s.clearSession(ctx, userID)
		dateExpr := ""
		if len(fields) == 3 {
			dateExpr = fields[2]
		}
		return s.cmdTimeslot(ctx, fields[1], dateExpr), true

	case len(fields) == 3 && strings.EqualFold(fields[0], "bind") && strings.EqualFold(fields[1], "phone"):
		s.clearSession(ctx, userID)
		return s.cmdBindPhone(ctx, userID, fields[2]), true
	}

	return nil, false
}

func (s *DefaultChatService) cmdMenu(ctx context.Context) []string {
	rooms, err := s.Rooms.ListActive(ctx)
	if err != nil {
		utils.GetLogger().Error("failed to list rooms for menu command", zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{menuReply(rooms)}
}

func (s *DefaultChatService) cmdMyBookings(ctx context.Context, userID string) []string {
	bookings, err := s.Booking.ListChatUserBookings(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("failed to list chat user bookings",
			zap.String("userID", userID), zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{myBookingsReply(bookings)}
}

func (s *DefaultChatService) cmdQuery(ctx context.Context, userID, number string) []string {
	phone, err := s.Phones.Get(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("phone binding lookup failed",
			zap.String("userID", userID), zap.Error(err))
	}
	if phone == "" {
		return []string{"I need your phone number to look that up. Bind it first with: bind phone {number}"}
	}

	booking, err := s.Booking.LookupBooking(ctx, number, phone)
	var notFound *svc.NotFoundError
	if errors.As(err, &notFound) {
		return []string{"No booking found under that number for your phone."}
	}
	if err != nil {
		utils.GetLogger().Error("chat booking lookup failed", zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{bookingDetailReply(booking)}
}

func (s *DefaultChatService) cmdTimeslot(ctx context.Context, roomID, dateExpr string) []string {
	room, err := s.Rooms.GetByID(ctx, roomID)
	if err != nil || !room.IsActive {
		return []string{"I don't know that room. Send \"book\" to see the room list."}
	}

	date := s.Now().Format("2006-01-02")
	if dateExpr != "" {
		date, err = ParseDateExpr(dateExpr, s.Now())
		if err != nil {
			return []string{"That doesn't look like a valid upcoming date.", datePromptReply()}
		}
	}

	slots, err := s.candidateSlots(ctx, room.ID, date)
	if err != nil {
		utils.GetLogger().Error("failed to compute slot grid", zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{room.Name + ":", slotGridReply(date, slots, "")}
}

func (s *DefaultChatService) cmdBindPhone(ctx context.Context, userID, phone string) []string {
	if !phoneRe.MatchString(phone) {
		return []string{"That phone number doesn't look right. Digits only, at least 8 of them."}
	}
	if err := s.Phones.Bind(ctx, userID, phone); err != nil {
		utils.GetLogger().Error("phone binding failed",
			zap.String("userID", userID), zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{"Phone number saved. I'll use it for your lookups and bookings."}
}

package chat

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"roomify/models"
	svc "roomify/services/booking"
	"roomify/utils"
)

// Conversation phrases. Global commands pre-empt the state machine at every
// step; the cancel phrase is honored at every in-flow step.
const (
	phraseBook    = "book"
	phraseCancel  = "cancel"
	phraseConfirm = "confirm"
)

var (
	phoneRe = regexp.MustCompile(`^[0-9]{8,}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// HandleFollow greets a newly-followed user. It seeds no session state.
func (s *DefaultChatService) HandleFollow(ctx context.Context, userID string) []string {
	return []string{welcomeReply()}
}

// HandleMessage is the single text entry point per chat user. Handling is
// serialized per user so concurrent messages cannot interleave steps.
func (s *DefaultChatService) HandleMessage(ctx context.Context, userID, text string) []string {
	lock := s.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	if replies, handled := s.tryGlobalCommand(ctx, userID, text, lower); handled {
		return replies
	}

	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("failed to load chat session",
			zap.String("userID", userID), zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}

	if sess == nil {
		if lower == phraseBook {
			return s.startFlow(ctx, userID)
		}
		// No session in progress: "cancel" is just another unrecognized input.
		return []string{unrecognizedReply()}
	}

	if lower == phraseCancel {
		s.clearSession(ctx, userID)
		return []string{"Reservation abandoned. Send \"book\" whenever you want to start again."}
	}

	switch sess.Step {
	case StepSelectRoom:
		return s.handleSelectRoom(ctx, userID, sess, text)
	case StepSelectDate:
		return s.handleSelectDate(ctx, userID, sess, text)
	case StepSelectSlot:
		return s.handleSelectSlot(ctx, userID, sess, text)
	case StepInputName:
		return s.handleInputName(ctx, userID, sess, text)
	case StepInputPhone:
		return s.handleInputPhone(ctx, userID, sess, text)
	case StepInputEmail:
		return s.handleInputEmail(ctx, userID, sess, text)
	case StepConfirm:
		return s.handleConfirm(ctx, userID, sess, lower)
	default:
		// Unknown persisted step: drop the broken session rather than wedge
		// the user.
		s.clearSession(ctx, userID)
		return []string{unrecognizedReply()}
	}
}

func (s *DefaultChatService) startFlow(ctx context.Context, userID string) []string {
	rooms, err := s.Rooms.ListActive(ctx)
	if err != nil {
		utils.GetLogger().Error("failed to list rooms for chat flow", zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	if len(rooms) == 0 {
		return []string{"No rooms are currently available for booking."}
	}
	sess := &Session{Step: StepSelectRoom}
	if err := s.saveSession(ctx, userID, sess); err != nil {
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{roomListReply(rooms)}
}

// handleSelectRoom expects "select room {id}" referencing an active room.
// Anything else re-shows the room list.
func (s *DefaultChatService) handleSelectRoom(ctx context.Context, userID string, sess *Session, text string) []string {
	fields := strings.Fields(text)
	if len(fields) != 3 || !strings.EqualFold(fields[0], "select") || !strings.EqualFold(fields[1], "room") {
		return s.reshowRooms(ctx)
	}
	room, err := s.Rooms.GetByID(ctx, fields[2])
	if err != nil || !room.IsActive {
		return s.reshowRooms(ctx)
	}

	sess.Draft.RoomID = room.ID
	sess.Draft.RoomName = room.Name
	sess.Draft.HourlyRate = room.HourlyRate
	sess.Step = StepSelectDate
	if err := s.saveSession(ctx, userID, sess); err != nil {
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{datePromptReply()}
}

func (s *DefaultChatService) reshowRooms(ctx context.Context) []string {
	rooms, err := s.Rooms.ListActive(ctx)
	if err != nil {
		utils.GetLogger().Error("failed to list rooms for chat flow", zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{"Please pick a room from the list.", roomListReply(rooms)}
}

func (s *DefaultChatService) handleSelectDate(ctx context.Context, userID string, sess *Session, text string) []string {
	date, err := ParseDateExpr(text, s.Now())
	if err != nil {
		return []string{"That doesn't look like a valid upcoming date.", datePromptReply()}
	}
	sess.Draft.Date = date
	sess.Step = StepSelectSlot
	if err := s.saveSession(ctx, userID, sess); err != nil {
		return []string{"Something went wrong on our side, please try again."}
	}
	return s.showSlotGrid(ctx, sess, "")
}

func (s *DefaultChatService) showSlotGrid(ctx context.Context, sess *Session, flagged string) []string {
	slots, err := s.candidateSlots(ctx, sess.Draft.RoomID, sess.Draft.Date)
	if err != nil {
		utils.GetLogger().Error("failed to compute slot grid", zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{slotGridReply(sess.Draft.Date, slots, flagged)}
}

// handleSelectSlot expects "select slot {HH:MM} {HH:MM}" naming one of the
// hour-aligned candidates, validated live against availability.
func (s *DefaultChatService) handleSelectSlot(ctx context.Context, userID string, sess *Session, text string) []string {
	fields := strings.Fields(text)
	if len(fields) != 4 || !strings.EqualFold(fields[0], "select") || !strings.EqualFold(fields[1], "slot") {
		return s.showSlotGrid(ctx, sess, "")
	}
	start, end := fields[2], fields[3]
	if !s.isCandidate(start, end) {
		return s.showSlotGrid(ctx, sess, "")
	}

	free, err := s.Booking.IsAvailable(ctx, sess.Draft.RoomID, sess.Draft.Date, start, end, "")
	if err != nil {
		utils.GetLogger().Error("slot availability check failed", zap.Error(err))
		return []string{"Something went wrong on our side, please try again."}
	}
	if !free {
		// The slot was taken between grid display and selection; flag it.
		return s.showSlotGrid(ctx, sess, start)
	}

	sess.Draft.Start = start
	sess.Draft.End = end
	sess.Step = StepInputName
	if err := s.saveSession(ctx, userID, sess); err != nil {
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{"Great. What name should the reservation be under?"}
}

func (s *DefaultChatService) handleInputName(ctx context.Context, userID string, sess *Session, text string) []string {
	if text == "" {
		return []string{"Please tell me a name for the reservation."}
	}
	sess.Draft.Name = text

	// A previously bound phone lets the user skip the phone step.
	phone, err := s.Phones.Get(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("phone binding lookup failed",
			zap.String("userID", userID), zap.Error(err))
	}
	if phone != "" {
		sess.Draft.Phone = phone
		sess.Step = StepInputEmail
		if err := s.saveSession(ctx, userID, sess); err != nil {
			return []string{"Something went wrong on our side, please try again."}
		}
		return []string{"And your email address?"}
	}

	sess.Step = StepInputPhone
	if err := s.saveSession(ctx, userID, sess); err != nil {
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{"What's your phone number? (digits only, at least 8)"}
}

func (s *DefaultChatService) handleInputPhone(ctx context.Context, userID string, sess *Session, text string) []string {
	if !phoneRe.MatchString(text) {
		return []string{"That phone number doesn't look right. Digits only, at least 8 of them."}
	}
	sess.Draft.Phone = text
	sess.Step = StepInputEmail
	if err := s.saveSession(ctx, userID, sess); err != nil {
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{"And your email address?"}
}

func (s *DefaultChatService) handleInputEmail(ctx context.Context, userID string, sess *Session, text string) []string {
	if !emailRe.MatchString(text) {
		return []string{"That doesn't look like a valid email address, please try again."}
	}
	sess.Draft.Email = text
	sess.Step = StepConfirm
	if err := s.saveSession(ctx, userID, sess); err != nil {
		return []string{"Something went wrong on our side, please try again."}
	}
	return []string{confirmReply(sess.Draft, s.draftPrice(sess.Draft))}
}

// handleConfirm commits the booking. The booking engine re-validates
// availability as the authoritative gate, closing the window between slot
// selection and confirmation.
func (s *DefaultChatService) handleConfirm(ctx context.Context, userID string, sess *Session, lower string) []string {
	if lower != phraseConfirm {
		return []string{confirmReply(sess.Draft, s.draftPrice(sess.Draft))}
	}

	d := sess.Draft
	booking, err := s.Booking.CreateBooking(ctx, svc.CreateBookingInput{
		RoomID:     d.RoomID,
		Date:       d.Date,
		Segments:   []models.Segment{{Start: d.Start, End: d.End}},
		Name:       d.Name,
		Phone:      d.Phone,
		Email:      d.Email,
		ChatUserID: userID,
	})
	var conflict *svc.ConflictError
	if errors.As(err, &conflict) {
		// The slot was taken during the conversation. The flow cannot be
		// resumed partially; the user restarts.
		s.clearSession(ctx, userID)
		return []string{"Sorry, that time slot was just booked by someone else. Send \"book\" to pick another time."}
	}
	if err != nil {
		utils.GetLogger().Error("chat booking commit failed",
			zap.String("userID", userID), zap.Error(err))
		return []string{"Something went wrong while booking, please try again."}
	}

	if err := s.Phones.Bind(ctx, userID, d.Phone); err != nil {
		utils.GetLogger().Warn("phone binding failed",
			zap.String("userID", userID), zap.Error(err))
	}
	s.clearSession(ctx, userID)
	return []string{bookedReply(booking)}
}

func (s *DefaultChatService) draftPrice(d Draft) int {
	hours, err := svc.DurationHours(d.Start, d.End)
	if err != nil {
		return 0
	}
	return svc.TotalPrice(hours, d.HourlyRate)
}

func (s *DefaultChatService) saveSession(ctx context.Context, userID string, sess *Session) error {
	if err := s.Sessions.Set(ctx, userID, sess); err != nil {
		utils.GetLogger().Error("failed to persist chat session",
			zap.String("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultChatService) clearSession(ctx context.Context, userID string) {
	if err := s.Sessions.Clear(ctx, userID); err != nil {
		utils.GetLogger().Warn("failed to clear chat session",
			zap.String("userID", userID), zap.Error(err))
	}
}

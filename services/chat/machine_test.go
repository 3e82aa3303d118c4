package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "roomify/database/repository/booking"
	roomRepo "roomify/database/repository/room"
	"roomify/models"
	svc "roomify/services/booking"
)

// memSessionStore and memPhoneBook stand in for the Redis stores.

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*Session)}
}

func (s *memSessionStore) Get(ctx context.Context, userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (s *memSessionStore) Set(ctx context.Context, userID string, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[userID] = &copied
	return nil
}

func (s *memSessionStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

type memPhoneBook struct {
	mu     sync.Mutex
	phones map[string]string
}

func newMemPhoneBook() *memPhoneBook {
	return &memPhoneBook{phones: make(map[string]string)}
}

func (p *memPhoneBook) Get(ctx context.Context, userID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phones[userID], nil
}

func (p *memPhoneBook) Bind(ctx context.Context, userID, phone string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phones[userID] = phone
	return nil
}

// memRooms implements the room repository over a fixed catalogue.
type memRooms struct {
	rooms []models.Room
}

func (r *memRooms) GetByID(ctx context.Context, id string) (*models.Room, error) {
	for _, room := range r.rooms {
		if room.ID == id {
			room := room
			return &room, nil
		}
	}
	return nil, roomRepo.ErrRoomNotFound
}

func (r *memRooms) ListActive(ctx context.Context) ([]models.Room, error) {
	var out []models.Room
	for _, room := range r.rooms {
		if room.IsActive {
			out = append(out, room)
		}
	}
	return out, nil
}

func (r *memRooms) List(ctx context.Context) ([]models.Room, error) { return r.rooms, nil }
func (r *memRooms) Create(ctx context.Context, room *models.Room) error {
	r.rooms = append(r.rooms, *room)
	return nil
}
func (r *memRooms) Update(ctx context.Context, id string, update map[string]interface{}) (*models.Room, error) {
	return r.GetByID(ctx, id)
}
func (r *memRooms) Deactivate(ctx context.Context, id string) error { return nil }
func (r *memRooms) CountActive(ctx context.Context) (int64, error) {
	active, _ := r.ListActive(ctx)
	return int64(len(active)), nil
}

// fakeBookingEngine implements the booking service over an in-memory set of
// occupied slots, enough to drive the conversation flow.
type fakeBookingEngine struct {
	mu       sync.Mutex
	rooms    *memRooms
	occupied map[string]bool // "date|start|end"
	bookings []models.Booking
	seq      int
}

func newFakeBookingEngine(rooms *memRooms) *fakeBookingEngine {
	return &fakeBookingEngine{rooms: rooms, occupied: make(map[string]bool)}
}

func slotKey(date, start, end string) string { return date + "|" + start + "|" + end }

func (f *fakeBookingEngine) take(date, start, end string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.occupied[slotKey(date, start, end)] = true
}

func (f *fakeBookingEngine) IsAvailable(ctx context.Context, roomID, date, start, end, excludeBookingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.occupied[slotKey(date, start, end)], nil
}

func (f *fakeBookingEngine) CheckSegments(ctx context.Context, roomID, date string, segments []models.Segment) error {
	for _, seg := range segments {
		free, _ := f.IsAvailable(ctx, roomID, date, seg.Start, seg.End, "")
		if !free {
			return &svc.ConflictError{Segment: seg}
		}
	}
	return nil
}

func (f *fakeBookingEngine) CreateBooking(ctx context.Context, input svc.CreateBookingInput) (*models.Booking, error) {
	if err := f.CheckSegments(ctx, input.RoomID, input.Date, input.Segments); err != nil {
		return nil, err
	}
	room, err := f.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	var duration float64
	for _, seg := range input.Segments {
		f.occupied[slotKey(input.Date, seg.Start, seg.End)] = true
		d, _ := svc.DurationHours(seg.Start, seg.End)
		duration += d
	}
	booking := models.Booking{
		ID:            fmt.Sprintf("b%d", f.seq),
		BookingNumber: fmt.Sprintf("MR%s%04d", strings.ReplaceAll(input.Date, "-", ""), f.seq),
		RoomID:        room.ID,
		RoomName:      room.Name,
		CustomerName:  input.Name,
		CustomerPhone: input.Phone,
		CustomerEmail: input.Email,
		Date:          input.Date,
		Segments:      input.Segments,
		Duration:      duration,
		TotalPrice:    svc.TotalPrice(duration, room.HourlyRate),
		Status:        models.StatusConfirmed,
		ChatUserID:    input.ChatUserID,
	}
	f.bookings = append(f.bookings, booking)
	return &booking, nil
}

func (f *fakeBookingEngine) LookupBooking(ctx context.Context, number, phone string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.BookingNumber == number && b.CustomerPhone == phone {
			b := b
			return &b, nil
		}
	}
	return nil, svc.NewNotFoundError("booking", number)
}

func (f *fakeBookingEngine) ListChatUserBookings(ctx context.Context, chatUserID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ChatUserID == chatUserID && b.Status == models.StatusConfirmed {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingEngine) OccupiedIntervals(ctx context.Context, roomID, date string) ([]models.OccupiedInterval, error) {
	return nil, nil
}
func (f *fakeBookingEngine) CancelBooking(ctx context.Context, id string) error   { return nil }
func (f *fakeBookingEngine) CompleteBooking(ctx context.Context, id string) error { return nil }
func (f *fakeBookingEngine) ListBookings(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingEngine) Stats(ctx context.Context) (*models.BookingStats, error) {
	return &models.BookingStats{}, nil
}

var _ svc.BookingService = (*fakeBookingEngine)(nil)

func newTestChatService() (*DefaultChatService, *fakeBookingEngine) {
	rooms := &memRooms{rooms: []models.Room{
		{ID: "r1", Name: "精緻洽談室 A", RoomType: "洽談室", Capacity: 4, HourlyRate: 400, IsActive: true},
		{ID: "r2", Name: "大型簡報廳", RoomType: "簡報廳", Capacity: 50, HourlyRate: 2000, IsActive: true},
	}}
	engine := newFakeBookingEngine(rooms)
	service := NewDefaultChatService(newMemSessionStore(), newMemPhoneBook(), engine, rooms, VenueHours{
		OpenHour:  8,
		CloseHour: 21,
	})
	service.Now = func() time.Time { return testNow }
	return service, engine
}

func send(t *testing.T, s *DefaultChatService, userID, text string) []string {
	t.Helper()
	replies := s.HandleMessage(context.Background(), userID, text)
	require.NotEmpty(t, replies)
	return replies
}

func TestFullBookingFlow(t *testing.T) {
	service, engine := newTestChatService()
	const userID = "u1"

	replies := send(t, service, userID, "book")
	assert.Contains(t, replies[0], "select room")
	assert.Contains(t, replies[0], "精緻洽談室 A")

	replies = send(t, service, userID, "select room r2")
	assert.Contains(t, replies[0], "Which date?")

	replies = send(t, service, userID, "2026-03-15")
	assert.Contains(t, replies[0], "Time slots for 2026-03-15")
	assert.Contains(t, replies[0], "09:00 10:00 (available)")

	replies = send(t, service, userID, "select slot 09:00 10:00")
	assert.Contains(t, replies[0], "What name")

	replies = send(t, service, userID, "林小姐")
	assert.Contains(t, replies[0], "phone number")

	replies = send(t, service, userID, "0912345678")
	assert.Contains(t, replies[0], "email")

	replies = send(t, service, userID, "lin@example.com")
	assert.Contains(t, replies[0], "Please confirm")
	assert.Contains(t, replies[0], "Total: 2000")

	replies = send(t, service, userID, "confirm")
	assert.Contains(t, replies[0], "Booked!")
	assert.Contains(t, replies[0], "MR202603150001")

	// Session is gone: plain text is unrecognized again.
	replies = send(t, service, userID, "2026-03-15")
	assert.Contains(t, replies[0], "didn't understand")

	// The booking is attributed to the chat user.
	bookings, err := engine.ListChatUserBookings(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "0912345678", bookings[0].CustomerPhone)
}

func TestBoundPhoneSkipsPhoneStep(t *testing.T) {
	service, _ := newTestChatService()
	const userID = "u1"

	require.NoError(t, service.Phones.Bind(context.Background(), userID, "0911222333"))

	send(t, service, userID, "book")
	send(t, service, userID, "select room r1")
	send(t, service, userID, "2026-03-15")
	send(t, service, userID, "select slot 10:00 11:00")
	replies := send(t, service, userID, "王先生")
	assert.Contains(t, replies[0], "email", "phone step is skipped when already bound")

	replies = send(t, service, userID, "wang@example.com")
	assert.Contains(t, replies[0], "Phone: 0911222333")
}

func TestRepromptIsDeterministic(t *testing.T) {
	service, _ := newTestChatService()
	const userID = "u1"

	send(t, service, userID, "book")
	send(t, service, userID, "select room r1")
	send(t, service, userID, "2026-03-15")
	send(t, service, userID, "select slot 10:00 11:00")
	send(t, service, userID, "王先生")

	first := send(t, service, userID, "not-a-phone")
	second := send(t, service, userID, "not-a-phone")
	assert.Equal(t, first, second, "the same bad input yields the same re-prompt")

	// Still at the phone step: a valid phone moves on.
	replies := send(t, service, userID, "0911222333")
	assert.Contains(t, replies[0], "email")
}

func TestGlobalCommandClearsSession(t *testing.T) {
	service, _ := newTestChatService()
	const userID = "u1"

	send(t, service, userID, "book")
	send(t, service, userID, "select room r1")

	replies := send(t, service, userID, "help")
	assert.Contains(t, replies[0], "Commands:")

	// The flow was abandoned: the date that would have been step input is
	// now unrecognized.
	replies = send(t, service, userID, "2026-03-15")
	assert.Contains(t, replies[0], "didn't understand")
}

func TestCancelMidFlow(t *testing.T) {
	service, _ := newTestChatService()
	const userID = "u1"

	send(t, service, userID, "book")
	send(t, service, userID, "select room r1")
	replies := send(t, service, userID, "cancel")
	assert.Contains(t, replies[0], "abandoned")

	replies = send(t, service, userID, "cancel")
	assert.Contains(t, replies[0], "didn't understand", "cancel without a session is unrecognized")
}

func TestConfirmRaceRestartsFlow(t *testing.T) {
	service, engine := newTestChatService()
	const userID = "u1"

	send(t, service, userID, "book")
	send(t, service, userID, "select room r2")
	send(t, service, userID, "2026-03-15")
	send(t, service, userID, "select slot 09:00 10:00")
	send(t, service, userID, "林小姐")
	send(t, service, userID, "0912345678")
	send(t, service, userID, "lin@example.com")

	// Another customer grabs the slot between summary and confirmation.
	engine.take("2026-03-15", "09:00", "10:00")

	replies := send(t, service, userID, "confirm")
	assert.Contains(t, replies[0], "just booked by someone else")

	// The session was cleared, not left wedged at confirm.
	replies = send(t, service, userID, "confirm")
	assert.Contains(t, replies[0], "didn't understand")
}

func TestSlotTakenBetweenGridAndSelection(t *testing.T) {
	service, engine := newTestChatService()
	const userID = "u1"

	send(t, service, userID, "book")
	send(t, service, userID, "select room r1")
	send(t, service, userID, "2026-03-15")

	engine.take("2026-03-15", "09:00", "10:00")

	replies := send(t, service, userID, "select slot 09:00 10:00")
	assert.Contains(t, replies[0], "09:00 10:00 (just taken)")

	// Still at slot selection; another slot works.
	replies = send(t, service, userID, "select slot 10:00 11:00")
	assert.Contains(t, replies[0], "What name")
}

func TestNonCandidateSlotReprompts(t *testing.T) {
	service, _ := newTestChatService()
	const userID = "u1"

	send(t, service, userID, "book")
	send(t, service, userID, "select room r1")
	send(t, service, userID, "2026-03-15")

	// Outside venue hours and not hour-aligned.
	replies := send(t, service, userID, "select slot 07:00 08:00")
	assert.Contains(t, replies[0], "Time slots for 2026-03-15")

	replies = send(t, service, userID, "select slot 09:30 10:30")
	assert.Contains(t, replies[0], "Time slots for 2026-03-15")
}

func TestGlobalCommands(t *testing.T) {
	service, _ := newTestChatService()
	const userID = "u1"
	ctx := context.Background()

	replies := send(t, service, userID, "my bookings")
	assert.Contains(t, replies[0], "no upcoming bookings")

	replies = send(t, service, userID, "bind phone 0912345678")
	assert.Contains(t, replies[0], "saved")
	phone, err := service.Phones.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "0912345678", phone)

	replies = send(t, service, userID, "timeslot r1")
	assert.Contains(t, replies[0], "精緻洽談室 A")
	assert.Contains(t, replies[1], "Time slots for "+testNow.Format("2006-01-02"))

	replies = send(t, service, userID, "timeslot bogus")
	assert.Contains(t, replies[0], "don't know that room")

	replies = send(t, service, userID, "query MR202603150001")
	assert.Contains(t, replies[0], "No booking found")
}

func TestQueryAfterBooking(t *testing.T) {
	service, _ := newTestChatService()
	const userID = "u1"

	send(t, service, userID, "book")
	send(t, service, userID, "select room r1")
	send(t, service, userID, "2026-03-15")
	send(t, service, userID, "select slot 14:00 15:00")
	send(t, service, userID, "林小姐")
	send(t, service, userID, "0912345678")
	send(t, service, userID, "lin@example.com")
	send(t, service, userID, "confirm")

	replies := send(t, service, userID, "query MR202603150001")
	assert.Contains(t, replies[0], "Booking MR202603150001")
	assert.Contains(t, replies[0], "精緻洽談室 A")

	replies = send(t, service, userID, "my bookings")
	assert.Contains(t, replies[0], "MR202603150001")
}

func TestFollowGreets(t *testing.T) {
	service, _ := newTestChatService()
	replies := service.HandleFollow(context.Background(), "u1")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "Welcome")
}

func TestMenuCommandShowsRoomList(t *testing.T) {
	service, _ := newTestChatService()
	const userID = "u1"

	replies := send(t, service, userID, "menu")
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "Available meeting rooms:")
	assert.Contains(t, replies[0], "精緻洽談室 A")
	assert.Contains(t, replies[0], "大型簡報廳")
	assert.NotContains(t, replies[0], "select room",
		"menu is browse-only, booking starts with \"book\"")

	replies = send(t, service, userID, "help")
	assert.Contains(t, replies[0], "menu: show the room list")
}

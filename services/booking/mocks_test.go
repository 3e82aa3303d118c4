package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"

	blockedRepo "roomify/database/repository/blocked"
	bookingRepo "roomify/database/repository/booking"
	roomRepo "roomify/database/repository/room"
	"roomify/models"
)

// In-memory repository fakes shared by the service tests.

type memRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]models.Room
}

func newMemRoomRepo(rooms ...models.Room) *memRoomRepo {
	r := &memRoomRepo{rooms: make(map[string]models.Room)}
	for _, room := range rooms {
		r.rooms[room.ID] = room
	}
	return r
}

func (r *memRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &room, nil
}

func (r *memRoomRepo) ListActive(ctx context.Context) ([]models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Room
	for _, room := range r.rooms {
		if room.IsActive {
			out = append(out, room)
		}
	}
	return out, nil
}

func (r *memRoomRepo) List(ctx context.Context) ([]models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Room
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out, nil
}

func (r *memRoomRepo) Create(ctx context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepo) Update(ctx context.Context, id string, update map[string]interface{}) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	if name, ok := update["name"].(string); ok {
		room.Name = name
	}
	if url, ok := update["photo_url"].(string); ok {
		room.PhotoURL = url
	}
	r.rooms[id] = room
	return &room, nil
}

func (r *memRoomRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return roomRepo.ErrRoomNotFound
	}
	room.IsActive = false
	r.rooms[id] = room
	return nil
}

func (r *memRoomRepo) CountActive(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, room := range r.rooms {
		if room.IsActive {
			n++
		}
	}
	return n, nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings []models.Booking
	nextID   int

	// createHook, when set, runs once at the start of the next Create call.
	// Tests use it to slip a racing write in front of an insert.
	createHook func()
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{}
}

func (r *memBookingRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *memBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if r.createHook != nil {
		hook := r.createHook
		r.createHook = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingNumber == booking.BookingNumber {
			return bookingRepo.ErrDuplicateBookingNumber
		}
	}
	if booking.ID == "" {
		r.nextID++
		booking.ID = fmt.Sprintf("b%d", r.nextID)
	}
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *memBookingRepo) GetByNumberAndPhone(ctx context.Context, number, phone string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingNumber == number && b.CustomerPhone == phone {
			b := b
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *memBookingRepo) ListByRoomDateStatus(ctx context.Context, roomID, date string, statuses []string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.Date == date && containsStatus(statuses, b.Status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByChatUser(ctx context.Context, chatUserID string, statuses []string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ChatUserID == chatUserID && containsStatus(statuses, b.Status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListFiltered(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			r.bookings[i].Status = status
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (r *memBookingRepo) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if strings.HasPrefix(b.BookingNumber, prefix) {
			n++
		}
	}
	return n, nil
}

func (r *memBookingRepo) Stats(ctx context.Context, today string) (*models.BookingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirrors the aggregation semantics: totals and revenue count confirmed
	// bookings only.
	stats := &models.BookingStats{}
	for _, b := range r.bookings {
		switch b.Status {
		case models.StatusConfirmed:
			stats.TotalBookings++
			stats.TotalRevenue += b.TotalPrice
			if b.Date == today {
				stats.TodayBookings++
			}
		case models.StatusCancelled:
			stats.Cancelled++
		case models.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

func containsStatus(statuses []string, status string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type memBlockedRepo struct {
	mu     sync.Mutex
	blocks []models.BlockedSlot
}

func newMemBlockedRepo(blocks ...models.BlockedSlot) *memBlockedRepo {
	return &memBlockedRepo{blocks: blocks}
}

func (r *memBlockedRepo) Create(ctx context.Context, block *models.BlockedSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocks = append(r.blocks, *block)
	return nil
}

func (r *memBlockedRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.blocks {
		if b.ID == id {
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			return nil
		}
	}
	return blockedRepo.ErrBlockNotFound
}

func (r *memBlockedRepo) ListForRoomAndDate(ctx context.Context, roomID, date string) ([]models.BlockedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BlockedSlot
	for _, b := range r.blocks {
		if b.Date == date && (b.RoomID == roomID || b.RoomID == "") {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBlockedRepo) ListForDate(ctx context.Context, date string) ([]models.BlockedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BlockedSlot
	for _, b := range r.blocks {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

// recordingNotifier captures fan-out calls for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
}

func (n *recordingNotifier) BookingConfirmed(ctx context.Context, booking *models.Booking, room *models.Room) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, booking.BookingNumber)
	return nil
}

func (n *recordingNotifier) BookingCancelled(ctx context.Context, booking *models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, booking.BookingNumber)
	return nil
}

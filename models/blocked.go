package models

import "time"

// BlockedSlot is an admin-declared unavailable window. RoomID empty means
// venue-wide. Treated like an occupied interval by the availability checker
// but never surfaced to customers as someone else's reservation.
type BlockedSlot struct {
	ID        string    `bson:"id" json:"id"`
	RoomID    string    `bson:"room_id,omitempty" json:"room_id,omitempty"`
	Date      string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start     string    `bson:"start" json:"start"`
	End       string    `bson:"end" json:"end"`
	Reason    string    `bson:"reason" json:"reason"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Interval kinds for availability responses.
const (
	IntervalKindBooking = "booking"
	IntervalKindBlocked = "blocked"
)

// OccupiedInterval is one unavailable span of a room's day, in minutes from
// midnight. BookingID is set only for booking-derived intervals and is never
// exposed on the public availability endpoint.
type OccupiedInterval struct {
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Label     string `json:"label"` // e.g. "09:00 - 10:30"
	Kind      string `json:"kind"`
	BookingID string `json:"-"`
}

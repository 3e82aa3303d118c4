package models

import "time"

// Booking status values. A booking is never physically deleted by normal
// flow; it only transitions to cancelled or completed.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Segment is a single contiguous time interval ("HH:MM" start/end) on one
// date for one room.
type Segment struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Booking represents a confirmed reservation record. Segments is the ordered,
// non-overlapping list of booked intervals for the date; a plain start/end
// booking is simply a one-element list.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	BookingNumber string    `bson:"booking_number" json:"booking_number"` // e.g. MR202603150007
	RoomID        string    `bson:"room_id" json:"room_id"`
	RoomName      string    `bson:"room_name" json:"room_name"`
	CustomerName  string    `bson:"customer_name" json:"customer_name"`
	CustomerPhone string    `bson:"customer_phone" json:"customer_phone"`
	CustomerEmail string    `bson:"customer_email" json:"customer_email"`
	Department    string    `bson:"department,omitempty" json:"department,omitempty"`
	Date          string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Segments      []Segment `bson:"segments" json:"segments"`
	Duration      float64   `bson:"duration" json:"duration"` // hours, fractional allowed
	TotalPrice    int       `bson:"total_price" json:"total_price"`
	Attendees     int       `bson:"attendees,omitempty" json:"attendees,omitempty"`
	Purpose       string    `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Note          string    `bson:"note,omitempty" json:"note,omitempty"`
	Status        string    `bson:"status" json:"status"`
	ChatUserID    string    `bson:"chat_user_id,omitempty" json:"chat_user_id,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// BookingStats is the admin dashboard aggregate.
type BookingStats struct {
	TotalBookings int `json:"total_bookings"`
	TodayBookings int `json:"today_bookings"`
	TotalRooms    int `json:"total_rooms"`
	TotalRevenue  int `json:"total_revenue"`
	Cancelled     int `json:"cancelled"`
	Completed     int `json:"completed"`
}

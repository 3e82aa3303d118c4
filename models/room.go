package models

import "time"

// Room is a bookable meeting room. Owned by the admin subsystem; the booking
// engine reads it and never mutates it.
type Room struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	RoomType    string    `bson:"room_type" json:"room_type"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	MinCapacity int       `bson:"min_capacity,omitempty" json:"min_capacity,omitempty"`
	HourlyRate  int       `bson:"hourly_rate" json:"hourly_rate"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Amenities   []string  `bson:"amenities,omitempty" json:"amenities,omitempty"`
	PhotoURL    string    `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	PhotoID     string    `bson:"photo_id,omitempty" json:"-"`
	Floor       string    `bson:"floor,omitempty" json:"floor,omitempty"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

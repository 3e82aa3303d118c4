// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"roomify/database"
	"roomify/models"
)

// BookingFilter narrows admin booking listings. Zero values mean "any".
type BookingFilter struct {
	Date   string
	Status string
	RoomID string
}

// BookingRepository defines persistence operations for bookings. Creation is
// append-only; the only permitted mutation is a status transition.
type BookingRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByNumberAndPhone(ctx context.Context, number, phone string) (*models.Booking, error)
	ListByRoomDateStatus(ctx context.Context, roomID, date string, statuses []string) ([]models.Booking, error)
	ListByChatUser(ctx context.Context, chatUserID string, statuses []string) ([]models.Booking, error)
	ListFiltered(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
	Stats(ctx context.Context, today string) (*models.BookingStats, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}

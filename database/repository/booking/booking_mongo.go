// File: database/repository/booking/booking_mongo.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomify/models"
)

var (
	// ErrBookingNotFound is returned when no booking matches the query.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrDuplicateBookingNumber signals a collision on the unique
	// booking_number index; callers retry with a fresh allocation.
	ErrDuplicateBookingNumber = errors.New("duplicate booking number")
)

// EnsureIndexes creates the uniqueness constraint on booking_number plus the
// lookup index used by the availability checker.
func (r *mongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
		},
	})
	return err
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBookingNumber
	}
	return err
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoBookingRepo) GetByNumberAndPhone(ctx context.Context, number, phone string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"booking_number": number, "customer_phone": phone})
}

func (r *mongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) ListByRoomDateStatus(ctx context.Context, roomID, date string, statuses []string) ([]models.Booking, error) {
	filter := bson.M{
		"room_id": roomID,
		"date":    date,
		"status":  bson.M{"$in": statuses},
	}
	return r.find(ctx, filter, nil)
}

func (r *mongoBookingRepo) ListByChatUser(ctx context.Context, chatUserID string, statuses []string) ([]models.Booking, error) {
	filter := bson.M{
		"chat_user_id": chatUserID,
		"status":       bson.M{"$in": statuses},
	}
	sort := bson.D{{Key: "date", Value: 1}}
	return r.find(ctx, filter, sort)
}

func (r *mongoBookingRepo) ListFiltered(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	filter := bson.M{}
	if f.Date != "" {
		filter["date"] = f.Date
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.RoomID != "" {
		filter["room_id"] = f.RoomID
	}
	sort := bson.D{{Key: "created_at", Value: -1}}
	return r.find(ctx, filter, sort)
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *mongoBookingRepo) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"booking_number": bson.M{"$regex": "^" + prefix}}
	return r.coll.CountDocuments(ctx, filter)
}

// Stats aggregates the admin dashboard counters in a single pipeline pass
// plus two cheap counts.
func (r *mongoBookingRepo) Stats(ctx context.Context, today string) (*models.BookingStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status  string `bson:"_id"`
		Count   int    `bson:"count"`
		Revenue int    `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &models.BookingStats{}
	for _, row := range rows {
		switch row.Status {
		case models.StatusConfirmed:
			stats.TotalBookings = row.Count
			stats.TotalRevenue = row.Revenue
		case models.StatusCancelled:
			stats.Cancelled = row.Count
		case models.StatusCompleted:
			stats.Completed = row.Count
		}
	}

	todayCount, err := r.coll.CountDocuments(ctx, bson.M{"date": today, "status": models.StatusConfirmed})
	if err != nil {
		return nil, err
	}
	stats.TodayBookings = int(todayCount)
	return stats, nil
}

// File: database/repository/blocked/blocked_mongo.go
package blockedRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"roomify/database"
	"roomify/models"
)

// ErrBlockNotFound is returned when no blackout window matches the given id.
var ErrBlockNotFound = errors.New("blocked slot not found")

// BlockedRepository defines persistence for admin blackout windows.
type BlockedRepository interface {
	Create(ctx context.Context, block *models.BlockedSlot) error
	Delete(ctx context.Context, id string) error
	ListForRoomAndDate(ctx context.Context, roomID, date string) ([]models.BlockedSlot, error)
	ListForDate(ctx context.Context, date string) ([]models.BlockedSlot, error)
}

type mongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo constructs a new MongoDB BlockedRepository.
func NewMongoBlockedRepo() BlockedRepository {
	return &mongoBlockedRepo{
		coll: database.DB().Collection("blocked_slots"),
	}
}

func (r *mongoBlockedRepo) Create(ctx context.Context, block *models.BlockedSlot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, block)
	return err
}

func (r *mongoBlockedRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrBlockNotFound
	}
	return nil
}

// ListForRoomAndDate returns blackout windows affecting the given room on the
// given date: room-specific ones plus venue-wide ones (empty room_id).
func (r *mongoBlockedRepo) ListForRoomAndDate(ctx context.Context, roomID, date string) ([]models.BlockedSlot, error) {
	filter := bson.M{
		"date": date,
		"$or": bson.A{
			bson.M{"room_id": roomID},
			bson.M{"room_id": bson.M{"$in": bson.A{"", nil}}},
		},
	}
	return r.find(ctx, filter)
}

func (r *mongoBlockedRepo) ListForDate(ctx context.Context, date string) ([]models.BlockedSlot, error) {
	return r.find(ctx, bson.M{"date": date})
}

func (r *mongoBlockedRepo) find(ctx context.Context, filter bson.M) ([]models.BlockedSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedSlot
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// File: database/repository/room/interface.go
package roomRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"roomify/database"
	"roomify/models"
)

// RoomRepository defines persistence operations for meeting rooms.
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*models.Room, error)
	ListActive(ctx context.Context) ([]models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, id string, update map[string]interface{}) (*models.Room, error)
	Deactivate(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new MongoDB RoomRepository.
func NewMongoRoomRepo() RoomRepository {
	return &mongoRoomRepo{
		coll: database.DB().Collection("rooms"),
	}
}

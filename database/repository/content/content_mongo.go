// File: database/repository/content/content_mongo.go
package contentRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomify/database"
	"roomify/models"
)

// ContentRepository stores the editable front-end text entries.
type ContentRepository interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

type mongoContentRepo struct {
	coll *mongo.Collection
}

// NewMongoContentRepo constructs a new MongoDB ContentRepository.
func NewMongoContentRepo() ContentRepository {
	return &mongoContentRepo{
		coll: database.DB().Collection("site_content"),
	}
}

// Get returns the value for key, or "" when the key is absent.
func (r *mongoContentRepo) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entry models.SiteContent
	err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (r *mongoContentRepo) GetAll(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.SiteContent
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}

func (r *mongoContentRepo) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now()}}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"key": key}, update, opts)
	return err
}

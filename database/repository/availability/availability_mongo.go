package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/EAniwa/legacylancers-sub004/database"
	"github.com/EAniwa/legacylancers-sub004/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database("legacylancers")
	return &MongoAvailabilityRepo{coll: db.Collection("availabilities")}
}

// GetByID retrieves an availability document by its id.
func (repo *MongoAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var av models.Availability
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&av); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching availability %s: %w", id, err)
	}
	return &av, nil
}

// GetByIDs fetches a batch of availabilities, preserving input order.
func (repo *MongoAvailabilityRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error fetching availabilities: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[string]models.Availability, len(ids))
	for cursor.Next(ctx) {
		var av models.Availability
		if err := cursor.Decode(&av); err != nil {
			return nil, fmt.Errorf("error decoding availability: %w", err)
		}
		byID[av.ID] = av
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	out := make([]models.Availability, 0, len(ids))
	for _, id := range ids {
		av, ok := byID[id]
		if !ok {
			return nil, ErrNotFound
		}
		out = append(out, av)
	}
	return out, nil
}

// Create inserts a new availability document.
func (repo *MongoAvailabilityRepo) Create(ctx context.Context, av *models.Availability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, av); err != nil {
		return fmt.Errorf("error creating availability: %w", err)
	}
	return nil
}

// Update replaces an existing availability document.
func (repo *MongoAvailabilityRepo) Update(ctx context.Context, av *models.Availability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": av.ID}, bson.M{"$set": av})
	if err != nil {
		return fmt.Errorf("error updating availability %s: %w", av.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

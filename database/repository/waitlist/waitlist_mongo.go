package waitlistRepo

import (
	"context"
	"fmt"
	"time"

	"campusbook/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWaitlistRepo implements WaitlistRepository using MongoDB. It holds a
// handle on the bookings collection as well, because accepting an offer
// writes both collections in one transaction.
type MongoWaitlistRepo struct {
	coll        *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoWaitlistRepo creates a new instance of WaitlistRepository using MongoDB.
func NewMongoWaitlistRepo() WaitlistRepository {
	db := database.DB()
	repo := &MongoWaitlistRepo{
		coll:        db.Collection("waitlist"),
		bookingColl: db.Collection("bookings"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create waitlist indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoWaitlistRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slot_id", Value: 1}, {Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// queuedStatuses matches entries still occupying a queue position.
func queuedStatuses() bson.M {
	return bson.M{"$in": bson.A{"waiting", "notified"}}
}

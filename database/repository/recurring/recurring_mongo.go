package recurringRepo

import (
	"context"
	"fmt"
	"time"

	"campusbook/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRecurringRepo implements RecurringRepository using MongoDB. Series
// generation and cancellation span the slots and bookings collections, so
// the repo holds handles on all three.
type MongoRecurringRepo struct {
	coll        *mongo.Collection
	slotColl    *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoRecurringRepo creates a new instance of RecurringRepository using MongoDB.
func NewMongoRecurringRepo() RecurringRepository {
	db := database.DB()
	repo := &MongoRecurringRepo{
		coll:        db.Collection("recurring_appointments"),
		slotColl:    db.Collection("slots"),
		bookingColl: db.Collection("bookings"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create recurring indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRecurringRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "faculty_id", Value: 1}, {Key: "is_active", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

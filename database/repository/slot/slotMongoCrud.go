package slotRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new slot document.
func (r *MongoSlotRepo) Create(slot *models.Slot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

// CreateMany inserts the batch inside a single transaction so that a failing
// insert leaves no partial run behind.
func (r *MongoSlotRepo) CreateMany(slots []*models.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(slots))
	for _, slot := range slots {
		slot.CreatedAt = now
		slot.UpdatedAt = now
		docs = append(docs, slot)
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			_ = sc.AbortTransaction(sc)
			return fmt.Errorf("insert slots failed: %w", err)
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("bulk slot creation failed: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing slot document.
func (r *MongoSlotRepo) Update(slot *models.Slot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	slot.UpdatedAt = time.Now()
	filter := bson.M{"id": slot.ID}
	update := bson.M{"$set": slot}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update slot with id %s: %w", slot.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("slot with id %s not found", slot.ID)
	}
	return nil
}

// SetCancelled soft-cancels the slot.
func (r *MongoSlotRepo) SetCancelled(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"is_cancelled": true, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel slot with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("slot with id %s not found", id)
	}
	return nil
}

// Delete removes a slot document by its ID.
func (r *MongoSlotRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete slot with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("slot with id %s not found", id)
	}
	return nil
}

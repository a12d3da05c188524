package slotRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a slot by its unique ID. Returns (nil, nil) when absent.
func (r *MongoSlotRepo) GetByID(id string) (*models.Slot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot with id %s: %w", id, err)
	}
	return &slot, nil
}

// ListByFaculty returns all slots owned by the faculty, newest first.
func (r *MongoSlotRepo) ListByFaculty(facultyID string) ([]models.Slot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"faculty_id": facultyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots for faculty %s: %w", facultyID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}

// ListOpenByFaculty returns the faculty's non-cancelled slots ending after
// the given time, soonest first.
func (r *MongoSlotRepo) ListOpenByFaculty(facultyID string, after time.Time) ([]models.Slot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"faculty_id":   facultyID,
		"is_cancelled": false,
		"end_time":     bson.M{"$gt": after},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list open slots for faculty %s: %w", facultyID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}

// ExistsAt reports whether the faculty already has a non-cancelled slot with
// the exact start and end times.
func (r *MongoSlotRepo) ExistsAt(facultyID string, start, end time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"faculty_id":   facultyID,
		"start_time":   start,
		"end_time":     end,
		"is_cancelled": false,
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slot existence: %w", err)
	}
	return count > 0, nil
}

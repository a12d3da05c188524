package waitlistRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a waitlist entry by its unique ID. Returns (nil, nil)
// when absent.
func (r *MongoWaitlistRepo) GetByID(id string) (*models.WaitlistEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var entry models.WaitlistEntry
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get waitlist entry with id %s: %w", id, err)
	}
	return &entry, nil
}

// FindActiveBySlotAndStudent returns the student's non-cancelled entry for
// the slot, or (nil, nil) when there is none.
func (r *MongoWaitlistRepo) FindActiveBySlotAndStudent(slotID, studentID string) (*models.WaitlistEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"slot_id":    slotID,
		"student_id": studentID,
		"status":     bson.M{"$ne": "cancelled"},
	}
	var entry models.WaitlistEntry
	err := r.coll.FindOne(ctx, filter).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find waitlist entry: %w", err)
	}
	return &entry, nil
}

// CountQueuedBySlot counts the entries still occupying a queue position.
func (r *MongoWaitlistRepo) CountQueuedBySlot(slotID string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"slot_id": slotID, "status": queuedStatuses()})
	if err != nil {
		return 0, fmt.Errorf("failed to count queued entries for slot %s: %w", slotID, err)
	}
	return int(count), nil
}

// NextWaiting returns the lowest-position waiting entry for the slot, or
// (nil, nil) when the queue holds none.
func (r *MongoWaitlistRepo) NextWaiting(slotID string) (*models.WaitlistEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: 1}})
	var entry models.WaitlistEntry
	err := r.coll.FindOne(ctx, bson.M{"slot_id": slotID, "status": models.WaitlistStatusWaiting}, opts).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find next waiting entry for slot %s: %w", slotID, err)
	}
	return &entry, nil
}

// HasNotified reports whether the slot already has an entry awaiting a
// response. At most one entry per slot may be notified at a time.
func (r *MongoWaitlistRepo) HasNotified(slotID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"slot_id": slotID, "status": models.WaitlistStatusNotified}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check notified entry for slot %s: %w", slotID, err)
	}
	return count > 0, nil
}

// ListQueuedBySlot returns the slot's queued entries in position order.
func (r *MongoWaitlistRepo) ListQueuedBySlot(slotID string) ([]models.WaitlistEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"slot_id": slotID, "status": queuedStatuses()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued entries for slot %s: %w", slotID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.WaitlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode waitlist entries: %w", err)
	}
	return entries, nil
}

// ListByStudent returns the student's non-cancelled entries, newest first.
func (r *MongoWaitlistRepo) ListByStudent(studentID string) ([]models.WaitlistEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"student_id": studentID, "status": bson.M{"$ne": "cancelled"}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist entries for student %s: %w", studentID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.WaitlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode waitlist entries: %w", err)
	}
	return entries, nil
}

// ListOverdueNotified returns notified entries whose response deadline has
// passed.
func (r *MongoWaitlistRepo) ListOverdueNotified(now time.Time) ([]models.WaitlistEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":            models.WaitlistStatusNotified,
		"response_deadline": bson.M{"$lt": now},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue notified entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.WaitlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode waitlist entries: %w", err)
	}
	return entries, nil
}

package waitlistRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new waitlist entry document.
func (r *MongoWaitlistRepo) Create(entry *models.WaitlistEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create waitlist entry: %w", err)
	}
	return nil
}

// SetStatusIf transitions the entry guarded by its expected current status.
func (r *MongoWaitlistRepo) SetStatusIf(id string, expect []models.WaitlistStatus, newStatus models.WaitlistStatus, fields bson.M) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": newStatus, "updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	filter := bson.M{"id": id, "status": bson.M{"$in": expect}}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update waitlist entry %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// RemoveAndCompact moves the entry out of the queue and closes the position
// gap it leaves, rewriting the surviving queued entries to a dense 1..N run
// in their prior relative order. Both writes commit in one transaction.
func (r *MongoWaitlistRepo) RemoveAndCompact(id, slotID string, terminal models.WaitlistStatus) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()
		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": id, "status": queuedStatuses()},
			bson.M{"$set": bson.M{"status": terminal, "updated_at": now}},
		)
		if err != nil {
			return fmt.Errorf("remove waitlist entry failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("waitlist entry %s is no longer queued", id)
		}

		return r.compactQueue(sc, slotID, now)
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("waitlist compaction failed: %w", err)
	}
	return nil
}

// BookFromEntry marks the entry booked and inserts the pre-approved booking
// in one transaction. The entry must still be in the notified state.
func (r *MongoWaitlistRepo) BookFromEntry(entryID string, booking *models.Booking) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": entryID, "status": models.WaitlistStatusNotified},
			bson.M{"$set": bson.M{"status": models.WaitlistStatusBooked, "updated_at": now}},
		)
		if err != nil {
			return fmt.Errorf("mark entry booked failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("waitlist entry %s is not awaiting a response", entryID)
		}

		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		return r.compactQueue(sc, booking.SlotID, now)
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("waitlist booking transaction failed: %w", err)
	}
	return nil
}

// compactQueue rewrites the slot's queued positions to a dense 1..N run,
// skipping entries already in place.
func (r *MongoWaitlistRepo) compactQueue(sc mongo.SessionContext, slotID string, now time.Time) error {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(sc, bson.M{"slot_id": slotID, "status": queuedStatuses()}, opts)
	if err != nil {
		return fmt.Errorf("load queued entries failed: %w", err)
	}
	var queued []models.WaitlistEntry
	if err := cursor.All(sc, &queued); err != nil {
		return fmt.Errorf("decode queued entries failed: %w", err)
	}

	for i, entry := range queued {
		if entry.Position == i+1 {
			continue
		}
		if _, err := r.coll.UpdateOne(sc,
			bson.M{"id": entry.ID},
			bson.M{"$set": bson.M{"position": i + 1, "updated_at": now}},
		); err != nil {
			return fmt.Errorf("reposition entry %s failed: %w", entry.ID, err)
		}
	}
	return nil
}

package bookingRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// SetStatusIf transitions the booking guarded by its expected current status.
func (r *MongoBookingRepo) SetStatusIf(id string, expect []models.BookingStatus, newStatus models.BookingStatus, fields bson.M) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": newStatus, "updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	filter := bson.M{"id": id, "status": bson.M{"$in": expect}}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update booking %s status: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// Reschedule inserts the replacement booking and cancels the old one in a
// single transaction. The cancel is guarded on the old booking still being
// active, so a concurrent cancel aborts the whole unit.
func (r *MongoBookingRepo) Reschedule(old *models.Booking, replacement *models.Booking, reason string, at time.Time) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	now := time.Now()
	replacement.CreatedAt = now
	replacement.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, replacement); err != nil {
			return fmt.Errorf("insert replacement booking failed: %w", err)
		}

		filter := bson.M{
			"id":     old.ID,
			"status": bson.M{"$in": bson.A{models.BookingStatusPending, models.BookingStatusApproved}},
		}
		update := bson.M{"$set": bson.M{
			"status":              models.BookingStatusCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        at,
			"rescheduled_to":      replacement.ID,
			"updated_at":          now,
		}}
		res, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("cancel superseded booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("booking %s is no longer active", old.ID)
		}
		return nil
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
		return fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return nil
}

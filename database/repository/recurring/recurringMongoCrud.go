package recurringRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GenerateSeries commits the series and all of its occurrences atomically.
// The per-occurrence existing-slot check runs inside the same session so a
// slot created by a concurrent request aborts rather than double-books.
func (r *MongoRecurringRepo) GenerateSeries(series *models.RecurringAppointment, occurrences []SeriesOccurrence) ([]string, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	now := time.Now()
	series.CreatedAt = now
	series.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var generated []string

	txnFn := func(sc mongo.SessionContext) error {
		generated = generated[:0]
		for _, occ := range occurrences {
			filter := bson.M{
				"faculty_id":   occ.Slot.FacultyID,
				"start_time":   occ.Slot.StartTime,
				"end_time":     occ.Slot.EndTime,
				"is_cancelled": false,
			}
			count, err := r.slotColl.CountDocuments(sc, filter)
			if err != nil {
				return fmt.Errorf("check existing slot failed: %w", err)
			}
			if count > 0 {
				continue
			}

			occ.Slot.CreatedAt = now
			occ.Slot.UpdatedAt = now
			if _, err := r.slotColl.InsertOne(sc, occ.Slot); err != nil {
				return fmt.Errorf("insert series slot failed: %w", err)
			}

			occ.Booking.CreatedAt = now
			occ.Booking.UpdatedAt = now
			if _, err := r.bookingColl.InsertOne(sc, occ.Booking); err != nil {
				return fmt.Errorf("insert series booking failed: %w", err)
			}
			generated = append(generated, occ.Booking.ID)
		}

		series.GeneratedBookings = append([]string{}, generated...)
		if _, err := r.coll.InsertOne(sc, series); err != nil {
			return fmt.Errorf("insert series failed: %w", err)
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
		return nil, fmt.Errorf("series generation failed: %w", err)
	}
	return generated, nil
}

// CancelSeries deactivates the series and cancels its still-active bookings
// in one transaction. Bookings already cancelled or rejected are untouched.
func (r *MongoRecurringRepo) CancelSeries(id, reason string, at time.Time) (int, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return 0, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var cancelled int

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": id, "is_active": true},
			bson.M{"$set": bson.M{
				"is_active":     false,
				"cancelled_at":  at,
				"cancel_reason": reason,
				"updated_at":    time.Now(),
			}},
		)
		if err != nil {
			return fmt.Errorf("deactivate series failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("series %s is not active", id)
		}

		bookingRes, err := r.bookingColl.UpdateMany(sc,
			bson.M{
				"recurring_appointment_id": id,
				"status":                   bson.M{"$nin": bson.A{"cancelled", "rejected"}},
			},
			bson.M{"$set": bson.M{
				"status":              models.BookingStatusCancelled,
				"cancellation_reason": reason,
				"cancelled_at":        at,
				"updated_at":          time.Now(),
			}},
		)
		if err != nil {
			return fmt.Errorf("cancel series bookings failed: %w", err)
		}
		cancelled = int(bookingRes.ModifiedCount)
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
		return 0, fmt.Errorf("series cancellation failed: %w", err)
	}
	return cancelled, nil
}

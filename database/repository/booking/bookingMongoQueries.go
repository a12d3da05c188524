package bookingRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a booking by its unique ID. Returns (nil, nil) when absent.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// CountActiveBySlot counts the bookings on the slot that hold a seat.
func (r *MongoBookingRepo) CountActiveBySlot(slotID string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"slot_id": slotID, "status": activeStatuses()})
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings for slot %s: %w", slotID, err)
	}
	return int(count), nil
}

// FindActiveBySlotAndStudent returns the student's active booking on the
// slot, or (nil, nil) when there is none.
func (r *MongoBookingRepo) FindActiveBySlotAndStudent(slotID, studentID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"slot_id": slotID, "student_id": studentID, "status": activeStatuses()}
	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active booking: %w", err)
	}
	return &booking, nil
}

// ListActiveBySlot returns all seat-holding bookings on the slot.
func (r *MongoBookingRepo) ListActiveBySlot(slotID string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"slot_id": slotID, "status": activeStatuses()})
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings for slot %s: %w", slotID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListByStudent returns all bookings made by the student, newest first.
func (r *MongoBookingRepo) ListByStudent(studentID string) ([]models.Booking, error) {
	return r.list(bson.M{"student_id": studentID})
}

// ListByFaculty returns all bookings against the faculty's slots, newest first.
func (r *MongoBookingRepo) ListByFaculty(facultyID string) ([]models.Booking, error) {
	return r.list(bson.M{"faculty_id": facultyID})
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

package recurringRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a series by its unique ID. Returns (nil, nil) when absent.
func (r *MongoRecurringRepo) GetByID(id string) (*models.RecurringAppointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var series models.RecurringAppointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&series)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series with id %s: %w", id, err)
	}
	return &series, nil
}

// ListActiveByStudent returns the student's active series, newest first.
func (r *MongoRecurringRepo) ListActiveByStudent(studentID string) ([]models.RecurringAppointment, error) {
	return r.list(bson.M{"student_id": studentID, "is_active": true})
}

// ListActiveByFaculty returns the faculty's active series, newest first.
func (r *MongoRecurringRepo) ListActiveByFaculty(facultyID string) ([]models.RecurringAppointment, error) {
	return r.list(bson.M{"faculty_id": facultyID, "is_active": true})
}

func (r *MongoRecurringRepo) list(filter bson.M) ([]models.RecurringAppointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring series: %w", err)
	}
	defer cursor.Close(ctx)

	var series []models.RecurringAppointment
	if err := cursor.All(ctx, &series); err != nil {
		return nil, fmt.Errorf("failed to decode recurring series: %w", err)
	}
	return series, nil
}

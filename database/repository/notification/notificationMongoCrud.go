package notificationRepo

import (
	"fmt"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new notification document.
func (r *MongoNotificationRepo) Create(n *models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// MarkRead flips a single notification to read, scoped to its owner.
func (r *MongoNotificationRepo) MarkRead(id, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// MarkAllRead flips every unread notification the user has.
func (r *MongoNotificationRepo) MarkAllRead(userID string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read for user %s: %w", userID, err)
	}
	return int(res.ModifiedCount), nil
}

// Delete removes the notification, scoped to its owner.
func (r *MongoNotificationRepo) Delete(id, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteOldRead prunes read notifications older than the cutoff.
func (r *MongoNotificationRepo) DeleteOldRead(before time.Time) (int, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{
		"is_read":    true,
		"created_at": bson.M{"$lt": before},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune old notifications: %w", err)
	}
	return int(res.DeletedCount), nil
}

// MarkEmailSent records that the notification's email copy was delivered.
func (r *MongoNotificationRepo) MarkEmailSent(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"email_sent": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s email sent: %w", id, err)
	}
	return nil
}

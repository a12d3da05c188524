package notification

import (
	"time"

	notificationRepo "campusbook/database/repository/notification"
	userRepo "campusbook/database/repository/user"
	"campusbook/models"
	"campusbook/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultNotificationService persists notifications and queues email copies
// through asynq. Email delivery happens on the worker, not in-request.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	UserRepo userRepo.UserRepository
	Queue    *asynq.Client
	Sender   EmailSender
}

func (s *DefaultNotificationService) logger() *zap.Logger {
	return utils.GetLogger().Named("notification")
}

// Notify persists the notification and queues its email copy. Both steps are
// best-effort: failures are logged and swallowed so the triggering operation
// is never affected.
func (s *DefaultNotificationService) Notify(userID string, typ models.NotificationType, title, message, bookingID, slotID string) {
	n := &models.Notification{
		ID:               uuid.NewString(),
		UserID:           userID,
		Type:             typ,
		Title:            title,
		Message:          message,
		RelatedBookingID: bookingID,
		RelatedSlotID:    slotID,
	}
	if err := s.Repo.Create(n); err != nil {
		s.logger().Warn("failed to persist notification",
			zap.String("userId", userID), zap.String("type", string(typ)), zap.Error(err))
		return
	}

	s.enqueueEmail(n)
}

func (s *DefaultNotificationService) enqueueEmail(n *models.Notification) {
	if s.Queue == nil {
		return
	}

	user, err := s.UserRepo.GetByID(n.UserID)
	if err != nil || user == nil || user.Email == "" {
		s.logger().Warn("skipping email, recipient unresolved",
			zap.String("userId", n.UserID), zap.Error(err))
		return
	}

	task, opts, err := NewEmailTask(models.EmailTaskPayload{
		NotificationID: n.ID,
		To:             user.Email,
		Subject:        n.Title,
		Body:           n.Message,
	})
	if err != nil {
		s.logger().Warn("failed to build email task", zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		s.logger().Warn("failed to enqueue email task",
			zap.String("notificationId", n.ID), zap.Error(err))
	}
}

// DeliverEmail sends the queued email and marks the notification delivered.
func (s *DefaultNotificationService) DeliverEmail(payload models.EmailTaskPayload) error {
	if s.Sender == nil {
		return nil
	}
	if err := s.Sender.Send(payload.To, payload.Subject, payload.Body); err != nil {
		return err
	}
	if payload.NotificationID != "" {
		if err := s.Repo.MarkEmailSent(payload.NotificationID); err != nil {
			s.logger().Warn("failed to mark email sent",
				zap.String("notificationId", payload.NotificationID), zap.Error(err))
		}
	}
	return nil
}

// List returns the user's most recent notifications.
func (s *DefaultNotificationService) List(userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(userID, 50)
}

// UnreadCount returns how many notifications the user has not read yet.
func (s *DefaultNotificationService) UnreadCount(userID string) (int, error) {
	return s.Repo.CountUnread(userID)
}

// MarkRead flips one notification to read, scoped to its owner.
func (s *DefaultNotificationService) MarkRead(id, userID string) error {
	ok, err := s.Repo.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NewNotFoundError("notification %s not found", id)
	}
	return nil
}

// MarkAllRead flips all of the user's unread notifications.
func (s *DefaultNotificationService) MarkAllRead(userID string) (int, error) {
	return s.Repo.MarkAllRead(userID)
}

// Delete removes one notification, scoped to its owner.
func (s *DefaultNotificationService) Delete(id, userID string) error {
	ok, err := s.Repo.Delete(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NewNotFoundError("notification %s not found", id)
	}
	return nil
}

// PruneRead removes read notifications older than the retention window.
func (s *DefaultNotificationService) PruneRead(olderThan time.Duration) (int, error) {
	return s.Repo.DeleteOldRead(time.Now().Add(-olderThan))
}

package cron

import (
	"context"
	"encoding/json"
	"time"

	"campusbook/config"
	"campusbook/models"
	"campusbook/services/notification"
	"campusbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitEmailWorker runs the async email worker in the background.
func InitEmailWorker(notifSvc notification.NotificationService) {
	logger := utils.GetLogger().Named("email-worker")

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeEmailDeliver, handleEmailTask(notifSvc))

	go func() {
		logger.Info("starting email worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Warn("email worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("email worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger().Named("email-worker")

		var p models.EmailTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid email payload", zap.Error(err))
			return err
		}

		if err := notifSvc.DeliverEmail(p); err != nil {
			logger.Warn("email delivery failed",
				zap.String("to", p.To), zap.String("notificationId", p.NotificationID), zap.Error(err))
			return err
		}
		logger.Debug("email delivered", zap.String("to", p.To), zap.String("subject", p.Subject))
		return nil
	}
}

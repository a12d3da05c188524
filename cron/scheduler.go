package cron

import (
	"time"

	"campusbook/config"
	"campusbook/services/notification"
	"campusbook/services/waitlist"
	"campusbook/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const notificationRetention = 30 * 24 * time.Hour

// StartScheduler runs the periodic maintenance jobs: lapsing overdue
// waitlist offers and pruning old read notifications. Returns the running
// cron so callers can Stop it on shutdown.
func StartScheduler(waitlistSvc waitlist.WaitlistService, notifSvc notification.NotificationService) *cron.Cron {
	logger := utils.GetLogger().Named("scheduler")

	c := cron.New()

	sweepSpec := config.AppConfig.SweepSchedule
	if sweepSpec == "" {
		sweepSpec = "*/10 * * * *"
	}
	if _, err := c.AddFunc(sweepSpec, func() {
		expired, err := waitlistSvc.ExpireOverdue()
		if err != nil {
			logger.Warn("waitlist expiry sweep failed", zap.Error(err))
			return
		}
		if expired > 0 {
			logger.Info("waitlist offers expired", zap.Int("count", expired))
		}
	}); err != nil {
		logger.Fatal("invalid sweep schedule", zap.String("spec", sweepSpec), zap.Error(err))
	}

	if _, err := c.AddFunc("@daily", func() {
		pruned, err := notifSvc.PruneRead(notificationRetention)
		if err != nil {
			logger.Warn("notification prune failed", zap.Error(err))
			return
		}
		if pruned > 0 {
			logger.Info("old notifications pruned", zap.Int("count", pruned))
		}
	}); err != nil {
		logger.Fatal("failed to register notification prune job", zap.Error(err))
	}

	c.Start()
	logger.Info("maintenance scheduler started", zap.String("sweep", sweepSpec))
	return c
}

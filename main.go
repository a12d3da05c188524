package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusbook/config"
	appcron "campusbook/cron"
	"campusbook/database"
	bookingRepoPkg "campusbook/database/repository/booking"
	notificationRepoPkg "campusbook/database/repository/notification"
	recurringRepoPkg "campusbook/database/repository/recurring"
	slotRepoPkg "campusbook/database/repository/slot"
	userRepoPkg "campusbook/database/repository/user"
	waitlistRepoPkg "campusbook/database/repository/waitlist"
	"campusbook/handlers"
	"campusbook/middleware"
	"campusbook/routes"
	"campusbook/services/booking"
	"campusbook/services/capacity"
	"campusbook/services/identity"
	"campusbook/services/notification"
	"campusbook/services/recurring"
	"campusbook/services/slot"
	"campusbook/services/user"
	"campusbook/services/waitlist"
	"campusbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	waitlistRepo := waitlistRepoPkg.NewMongoWaitlistRepo()
	recurringRepo := recurringRepoPkg.NewMongoRecurringRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// shared infrastructure.
	locker := utils.NewRedisSlotLocker(utils.GetLockClient())
	coordinator := capacity.NewCoordinator(bookingRepo, waitlistRepo)

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:     notificationRepo,
		UserRepo: userRepo,
		Queue:    queueClient,
		Sender: notification.NewSMTPSender(
			config.AppConfig.SMTPHost,
			config.AppConfig.SMTPPort,
			config.AppConfig.SMTPFrom,
		),
	}

	slotService := &slot.DefaultSlotService{
		Repo:         slotRepo,
		BookingRepo:  bookingRepo,
		WaitlistRepo: waitlistRepo,
		Capacity:     coordinator,
		Notifier:     notificationService,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		SlotRepo:     slotRepo,
		UserRepo:     userRepo,
		WaitlistRepo: waitlistRepo,
		Locker:       locker,
		Capacity:     coordinator,
		Notifier:     notificationService,
	}

	waitlistService := &waitlist.DefaultWaitlistService{
		Repo:        waitlistRepo,
		SlotRepo:    slotRepo,
		BookingRepo: bookingRepo,
		Locker:      locker,
		Capacity:    coordinator,
		Notifier:    notificationService,
	}
	coordinator.SetPromoter(waitlistService)

	recurringService := &recurring.DefaultRecurringService{
		Repo:     recurringRepo,
		SlotRepo: slotRepo,
		Notifier: notificationService,
	}

	userService := &user.DefaultUserService{
		Repo:  userRepo,
		Slots: slotService,
		Cache: utils.GetCacheClient(),
	}

	identityService := &identity.JWTService{Users: userRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Slot:         handlers.NewSlotHandler(slotService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Waitlist:     handlers.NewWaitlistHandler(waitlistService),
		Recurring:    handlers.NewRecurringHandler(recurringService),
		Notification: handlers.NewNotificationHandler(notificationService),
		User:         handlers.NewUserHandler(userService),
	}

	routes.RegisterRoutes(router, handlerBundle, identityService)

	// Background workers: email delivery and the maintenance scheduler.
	appcron.InitEmailWorker(notificationService)
	scheduler := appcron.StartScheduler(waitlistService, notificationService)
	defer scheduler.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}

package routes

import (
	"net/http"
	"time"

	"campusbook/handlers"
	"campusbook/middleware"
	"campusbook/services/identity"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterFacultyRoutes registers the faculty-scoped endpoints.
func RegisterFacultyRoutes(r *gin.Engine, hb *handlers.HandlerBundle, identitySvc identity.Service) {
	api := r.Group("/api/faculty")
	api.Use(middleware.Auth(identitySvc), middleware.FacultyOnly())
	{
		api.POST("/slots", hb.Slot.CreateSlot)
		api.GET("/slots", hb.Slot.ListMySlots)
		api.POST("/bulk-slots", hb.Slot.BulkCreateSlots)
		api.PUT("/slots/:id", hb.Slot.UpdateSlot)
		api.DELETE("/slots/:id", hb.Slot.DeleteSlot)
		api.POST("/slots/:id/cancel", hb.Slot.CancelSlot)
		api.GET("/slots/:id/bookings", hb.Booking.ListSlotBookings)

		api.GET("/bookings", hb.Booking.ListFacultyBookings)
		api.PUT("/bookings/:id/approve", hb.Booking.ApproveBooking)
		api.PUT("/bookings/:id/reject", hb.Booking.RejectBooking)
		api.PUT("/bookings/:id/cancel", hb.Booking.CancelBooking)

		api.POST("/generate-share-token", hb.User.GenerateShareToken)
	}
}

// RegisterStudentRoutes registers the student-scoped endpoints.
func RegisterStudentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, identitySvc identity.Service) {
	api := r.Group("/api/student")
	api.Use(middleware.Auth(identitySvc), middleware.StudentOnly())
	{
		api.GET("/faculty", hb.User.ListFaculty)
		api.GET("/faculty/:id/slots", hb.Slot.ListFacultyOpenSlots)

		api.POST("/book-slot", hb.Booking.BookSlot)
		api.GET("/bookings", hb.Booking.ListStudentBookings)
		api.PUT("/bookings/:id/cancel", hb.Booking.CancelBooking)
		api.POST("/reschedule-booking/:id", hb.Booking.RescheduleBooking)
	}
}

// RegisterWaitlistRoutes registers the waitlist endpoints. Join and the
// accept/cancel actions are student moves; the per-slot queue view belongs
// to the slot's owner.
func RegisterWaitlistRoutes(r *gin.Engine, hb *handlers.HandlerBundle, identitySvc identity.Service) {
	api := r.Group("/api/waitlist")
	api.Use(middleware.Auth(identitySvc))
	{
		api.POST("/join", middleware.StudentOnly(), hb.Waitlist.JoinWaitlist)
		api.POST("/:id/accept", middleware.StudentOnly(), hb.Waitlist.AcceptOffer)
		api.POST("/:id/cancel", middleware.StudentOnly(), hb.Waitlist.CancelEntry)
		api.GET("/student/:studentId", middleware.StudentOnly(), hb.Waitlist.ListStudentEntries)
		api.GET("/slot/:slotId", middleware.FacultyOnly(), hb.Waitlist.ListSlotQueue)
	}
}

// RegisterRecurringRoutes registers the recurring series endpoints.
func RegisterRecurringRoutes(r *gin.Engine, hb *handlers.HandlerBundle, identitySvc identity.Service) {
	api := r.Group("/api/recurring")
	api.Use(middleware.Auth(identitySvc))
	{
		api.POST("", middleware.StudentOnly(), hb.Recurring.CreateSeries)
		api.POST("/:id/cancel", hb.Recurring.CancelSeries)
		api.GET("/student/:id", middleware.StudentOnly(), hb.Recurring.ListStudentSeries)
		api.GET("/faculty/:id", middleware.FacultyOnly(), hb.Recurring.ListFacultySeries)
	}
}

// RegisterNotificationRoutes registers the notification feed endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle, identitySvc identity.Service) {
	api := r.Group("/api/notifications")
	api.Use(middleware.Auth(identitySvc))
	{
		api.GET("", hb.Notification.ListNotifications)
		api.PUT("/:id/read", hb.Notification.MarkRead)
		api.POST("/mark-all-read", hb.Notification.MarkAllRead)
		api.DELETE("/:id", hb.Notification.DeleteNotification)
	}
}

// RegisterProfileRoutes registers the caller's own profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle, identitySvc identity.Service) {
	api := r.Group("/api/me")
	api.Use(middleware.Auth(identitySvc))
	{
		api.GET("", hb.User.GetMyProfile)
		api.PUT("", hb.User.UpdateMyProfile)
	}
}

// RegisterPublicRoutes registers the unauthenticated share-link endpoints.
// The :id of the schedule route carries a share token.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.GET("/faculty/:id/schedule", hb.User.PublicSchedule)
		api.GET("/faculty/:id/profile", hb.User.PublicFacultyProfile)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "campusbook is up"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, identitySvc identity.Service) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterFacultyRoutes(r, hb, identitySvc)
	RegisterStudentRoutes(r, hb, identitySvc)
	RegisterWaitlistRoutes(r, hb, identitySvc)
	RegisterRecurringRoutes(r, hb, identitySvc)
	RegisterNotificationRoutes(r, hb, identitySvc)
	RegisterProfileRoutes(r, hb, identitySvc)
}

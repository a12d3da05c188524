package handlers

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Slot         *SlotHandler
	Booking      *BookingHandler
	Waitlist     *WaitlistHandler
	Recurring    *RecurringHandler
	Notification *NotificationHandler
	User         *UserHandler
}

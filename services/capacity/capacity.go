package capacity

import (
	bookingRepo "campusbook/database/repository/booking"
	waitlistRepo "campusbook/database/repository/waitlist"
	"campusbook/utils"

	"go.uber.org/zap"
)

// Promoter advances a slot's waitlist after a seat frees up. The waitlist
// service implements it; the indirection keeps the dependency one-way.
type Promoter interface {
	PromoteNext(slotID string) error
}

// Coordinator owns the seat arithmetic shared by the booking and waitlist
// flows: what counts against capacity, whether a slot is full, and what
// happens when a seat frees.
type Coordinator struct {
	bookings bookingRepo.BookingRepository
	waitlist waitlistRepo.WaitlistRepository
	promoter Promoter
	logger   *zap.Logger
}

// NewCoordinator builds a Coordinator. The promoter is attached later with
// SetPromoter once the waitlist service exists.
func NewCoordinator(bookings bookingRepo.BookingRepository, waitlist waitlistRepo.WaitlistRepository) *Coordinator {
	return &Coordinator{
		bookings: bookings,
		waitlist: waitlist,
		logger:   utils.GetLogger().Named("capacity"),
	}
}

// SetPromoter attaches the waitlist promoter. Must be called during wiring,
// before any traffic.
func (c *Coordinator) SetPromoter(p Promoter) {
	c.promoter = p
}

// ActiveCount returns how many bookings currently hold a seat on the slot.
// Pending and approved both count; cancelled and rejected never do.
func (c *Coordinator) ActiveCount(slotID string) (int, error) {
	return c.bookings.CountActiveBySlot(slotID)
}

// HasSeat reports whether the slot has at least one free seat.
func (c *Coordinator) HasSeat(slotID string, capacity int) (bool, error) {
	active, err := c.bookings.CountActiveBySlot(slotID)
	if err != nil {
		return false, err
	}
	return active < capacity, nil
}

// EnsureSeat fails with a capacity error when the slot is full. Callers must
// hold the slot's lock so the count cannot move underneath them.
func (c *Coordinator) EnsureSeat(slotID string, capacity int) error {
	ok, err := c.HasSeat(slotID, capacity)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NewCapacityExceededError(slotID)
	}
	return nil
}

// SeatFreed reacts to a booking leaving the active set: if the slot now has
// a free seat, the next waiting student is offered it. Promotion is
// best-effort; a failure is logged and the sweep retries later.
func (c *Coordinator) SeatFreed(slotID string) {
	if c.promoter == nil {
		return
	}
	if err := c.promoter.PromoteNext(slotID); err != nil {
		c.logger.Warn("waitlist promotion after freed seat failed",
			zap.String("slotId", slotID), zap.Error(err))
	}
}

// Occupancy returns the booking and queued-waitlist counts for a slot.
func (c *Coordinator) Occupancy(slotID string) (bookingCount, waitlistCount int, err error) {
	bookingCount, err = c.bookings.CountActiveBySlot(slotID)
	if err != nil {
		return 0, 0, err
	}
	waitlistCount, err = c.waitlist.CountQueuedBySlot(slotID)
	if err != nil {
		return 0, 0, err
	}
	return bookingCount, waitlistCount, nil
}

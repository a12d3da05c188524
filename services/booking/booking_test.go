package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"campusbook/models"
	"campusbook/services/capacity"
	"campusbook/utils"
)

func newTestService(slots ...*models.Slot) (*DefaultBookingService, *fakeBookingRepo, *fakeWaitlistRepo) {
	bookings := newFakeBookingRepo()
	waitlist := newFakeWaitlistRepo()
	svc := &DefaultBookingService{
		Repo:         bookings,
		SlotRepo:     newFakeSlotRepo(slots...),
		UserRepo:     &fakeUserRepo{},
		WaitlistRepo: waitlist,
		Locker:       utils.NewLocalSlotLocker(),
		Capacity:     capacity.NewCoordinator(bookings, waitlist),
	}
	return svc, bookings, waitlist
}

func testSlot(id string, seats int) *models.Slot {
	start := time.Now().Add(24 * time.Hour)
	return &models.Slot{
		ID:        id,
		FacultyID: "fac-1",
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Capacity:  seats,
	}
}

func TestRequestCreatesPendingBooking(t *testing.T) {
	svc, repo, _ := newTestService(testSlot("slot-1", 2))

	booking, err := svc.Request("stu-1", "slot-1")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
	if booking.FacultyID != "fac-1" {
		t.Errorf("facultyID = %s, want fac-1 (denormalized from the slot)", booking.FacultyID)
	}
	count, _ := repo.CountActiveBySlot("slot-1")
	if count != 1 {
		t.Errorf("active count = %d, want 1", count)
	}
}

func TestRequestRejectsDuplicate(t *testing.T) {
	svc, _, _ := newTestService(testSlot("slot-1", 5))

	if _, err := svc.Request("stu-1", "slot-1"); err != nil {
		t.Fatalf("first Request() error = %v", err)
	}
	_, err := svc.Request("stu-1", "slot-1")
	if !utils.HasCode(err, utils.CodeDuplicateBooking) {
		t.Fatalf("second Request() error = %v, want duplicate_booking", err)
	}
}

func TestRequestRejectsWaitlistedStudent(t *testing.T) {
	svc, _, waitlist := newTestService(testSlot("slot-1", 2))
	if err := waitlist.Create(&models.WaitlistEntry{
		ID: "wl-1", SlotID: "slot-1", StudentID: "stu-1",
		Position: 1, Status: models.WaitlistStatusWaiting,
	}); err != nil {
		t.Fatal(err)
	}

	// The slot has open seats, but a queued student must go through the
	// offer flow rather than book past the queue.
	_, err := svc.Request("stu-1", "slot-1")
	if !utils.HasCode(err, utils.CodeDuplicateBooking) {
		t.Fatalf("Request() while waitlisted error = %v, want duplicate_booking", err)
	}

	// Once the entry leaves the queue the student may book normally.
	waitlist.mu.Lock()
	waitlist.entries["wl-1"].Status = models.WaitlistStatusCancelled
	waitlist.mu.Unlock()
	if _, err := svc.Request("stu-1", "slot-1"); err != nil {
		t.Errorf("Request() after leaving the queue error = %v", err)
	}
}

func TestRequestWhenFull(t *testing.T) {
	svc, _, _ := newTestService(testSlot("slot-1", 1))

	if _, err := svc.Request("stu-1", "slot-1"); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	_, err := svc.Request("stu-2", "slot-1")
	if !utils.HasCode(err, utils.CodeCapacityExceeded) {
		t.Fatalf("Request() on full slot error = %v, want capacity_exceeded", err)
	}
	appErr, _ := utils.AsAppError(err)
	if appErr.SlotID != "slot-1" {
		t.Errorf("capacity error slotID = %q, want slot-1", appErr.SlotID)
	}

	// The capacity check comes first: even the seat holder sees the slot as
	// full rather than as a duplicate.
	if _, err := svc.Request("stu-1", "slot-1"); !utils.HasCode(err, utils.CodeCapacityExceeded) {
		t.Errorf("seat holder Request() on full slot error = %v, want capacity_exceeded", err)
	}
}

func TestRequestSlotGuards(t *testing.T) {
	cancelled := testSlot("cancelled", 1)
	cancelled.IsCancelled = true
	past := testSlot("past", 1)
	past.StartTime = time.Now().Add(-time.Hour)

	svc, _, _ := newTestService(cancelled, past)

	tests := []struct {
		name     string
		slotID   string
		wantCode string
	}{
		{"missing slot", "no-such-slot", utils.CodeNotFound},
		{"cancelled slot", "cancelled", utils.CodeInvalidState},
		{"slot already started", "past", utils.CodeInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Request("stu-1", tt.slotID)
			if !utils.HasCode(err, tt.wantCode) {
				t.Errorf("Request() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestConcurrentRequestsSingleSeat(t *testing.T) {
	svc, repo, _ := newTestService(testSlot("slot-1", 1))

	const students = 16
	var wg sync.WaitGroup
	errs := make([]error, students)

	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = svc.Request("stu-"+string(rune('a'+n)), "slot-1")
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case utils.HasCode(err, utils.CodeCapacityExceeded):
		default:
			t.Errorf("unexpected error = %v", err)
		}
	}
	if won != 1 {
		t.Errorf("%d requests succeeded on a one-seat slot, want exactly 1", won)
	}
	count, _ := repo.CountActiveBySlot("slot-1")
	if count != 1 {
		t.Errorf("active count = %d, want 1", count)
	}
}

func TestApprove(t *testing.T) {
	svc, _, _ := newTestService(testSlot("slot-1", 1))
	booking, err := svc.Request("stu-1", "slot-1")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	approved, err := svc.Approve("fac-1", booking.ID)
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if approved.Status != models.BookingStatusApproved {
		t.Errorf("status = %s, want approved", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Error("approvedAt not set")
	}

	// Not pending anymore.
	if _, err := svc.Approve("fac-1", booking.ID); !utils.HasCode(err, utils.CodeInvalidState) {
		t.Errorf("second Approve() error = %v, want invalid_state", err)
	}
}

func TestApproveOwnership(t *testing.T) {
	svc, _, _ := newTestService(testSlot("slot-1", 1))
	booking, _ := svc.Request("stu-1", "slot-1")

	if _, err := svc.Approve("fac-other", booking.ID); !utils.HasCode(err, utils.CodeAuthorization) {
		t.Errorf("Approve() by non-owner error = %v, want authorization_error", err)
	}
	if _, err := svc.Approve("fac-1", "no-such-booking"); !utils.HasCode(err, utils.CodeNotFound) {
		t.Errorf("Approve() on missing booking error = %v, want not_found", err)
	}
}

func TestRejectFreesSeat(t *testing.T) {
	svc, repo, _ := newTestService(testSlot("slot-1", 1))
	booking, _ := svc.Request("stu-1", "slot-1")

	rejected, err := svc.Reject("fac-1", booking.ID, "schedule conflict")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if rejected.Status != models.BookingStatusRejected {
		t.Errorf("status = %s, want rejected", rejected.Status)
	}
	if rejected.CancellationReason != "schedule conflict" {
		t.Errorf("reason = %q, want %q", rejected.CancellationReason, "schedule conflict")
	}

	count, _ := repo.CountActiveBySlot("slot-1")
	if count != 0 {
		t.Errorf("active count after reject = %d, want 0", count)
	}
	// The seat is free again.
	if _, err := svc.Request("stu-2", "slot-1"); err != nil {
		t.Errorf("Request() after reject error = %v", err)
	}
}

func TestRejectApprovedBooking(t *testing.T) {
	svc, _, _ := newTestService(testSlot("slot-1", 1))
	booking, _ := svc.Request("stu-1", "slot-1")
	if _, err := svc.Approve("fac-1", booking.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if _, err := svc.Reject("fac-1", booking.ID, ""); !utils.HasCode(err, utils.CodeInvalidState) {
		t.Errorf("Reject() on approved booking error = %v, want invalid_state", err)
	}
}

func TestCancel(t *testing.T) {
	svc, repo, _ := newTestService(testSlot("slot-1", 1))
	booking, _ := svc.Request("stu-1", "slot-1")

	if err := svc.Cancel("stu-1", models.RoleStudent, booking.ID, "cannot make it"); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	stored, _ := repo.GetByID(booking.ID)
	if stored.Status != models.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", stored.Status)
	}
	if stored.CancellationReason != "cannot make it" {
		t.Errorf("reason = %q, want %q", stored.CancellationReason, "cannot make it")
	}

	// Cancelling again is refused: the booking already left the active set.
	err := svc.Cancel("stu-1", models.RoleStudent, booking.ID, "")
	if !utils.HasCode(err, utils.CodeInvalidState) {
		t.Errorf("second Cancel() error = %v, want invalid_state", err)
	}
}

func TestCancelOwnership(t *testing.T) {
	svc, _, _ := newTestService(testSlot("slot-1", 2))
	booking, _ := svc.Request("stu-1", "slot-1")

	tests := []struct {
		name   string
		userID string
		role   models.Role
	}{
		{"another student", "stu-2", models.RoleStudent},
		{"another faculty member", "fac-2", models.RoleFaculty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Cancel(tt.userID, tt.role, booking.ID, "")
			if !utils.HasCode(err, utils.CodeAuthorization) {
				t.Errorf("Cancel() error = %v, want authorization_error", err)
			}
		})
	}

	// The owning faculty member may cancel the student's booking.
	if err := svc.Cancel("fac-1", models.RoleFaculty, booking.ID, "office closed"); err != nil {
		t.Errorf("faculty Cancel() error = %v", err)
	}
}

func TestCancelRejectedBooking(t *testing.T) {
	svc, _, _ := newTestService(testSlot("slot-1", 1))
	booking, _ := svc.Request("stu-1", "slot-1")
	if _, err := svc.Reject("fac-1", booking.ID, ""); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	err := svc.Cancel("stu-1", models.RoleStudent, booking.ID, "")
	if !utils.HasCode(err, utils.CodeInvalidState) {
		t.Errorf("Cancel() on rejected booking error = %v, want invalid_state", err)
	}
}

func TestReschedule(t *testing.T) {
	svc, repo, _ := newTestService(testSlot("slot-1", 1), testSlot("slot-2", 1))
	booking, _ := svc.Request("stu-1", "slot-1")

	replacement, err := svc.Reschedule("stu-1", booking.ID, "slot-2")
	if err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	if replacement.SlotID != "slot-2" {
		t.Errorf("replacement slot = %s, want slot-2", replacement.SlotID)
	}
	if replacement.Status != models.BookingStatusPending {
		t.Errorf("replacement status = %s, want pending", replacement.Status)
	}
	if replacement.OriginalBookingID != booking.ID {
		t.Errorf("originalBookingID = %s, want %s", replacement.OriginalBookingID, booking.ID)
	}

	old, _ := repo.GetByID(booking.ID)
	if old.Status != models.BookingStatusCancelled {
		t.Errorf("old status = %s, want cancelled", old.Status)
	}
	if old.RescheduledTo != replacement.ID {
		t.Errorf("rescheduledTo = %s, want %s", old.RescheduledTo, replacement.ID)
	}

	// The old seat is free again.
	count, _ := repo.CountActiveBySlot("slot-1")
	if count != 0 {
		t.Errorf("active count on old slot = %d, want 0", count)
	}
}

func TestRescheduleGuards(t *testing.T) {
	full := testSlot("slot-full", 1)
	svc, _, _ := newTestService(testSlot("slot-1", 1), testSlot("slot-2", 1), full)
	booking, _ := svc.Request("stu-1", "slot-1")
	if _, err := svc.Request("stu-9", "slot-full"); err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	tests := []struct {
		name      string
		studentID string
		bookingID string
		newSlotID string
		wantCode  string
	}{
		{"missing booking", "stu-1", "nope", "slot-2", utils.CodeNotFound},
		{"another student's booking", "stu-2", booking.ID, "slot-2", utils.CodeAuthorization},
		{"same slot", "stu-1", booking.ID, "slot-1", utils.CodeValidation},
		{"target slot full", "stu-1", booking.ID, "slot-full", utils.CodeCapacityExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reschedule(tt.studentID, tt.bookingID, tt.newSlotID)
			if !utils.HasCode(err, tt.wantCode) {
				t.Errorf("Reschedule() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}

	// A cancelled booking cannot be rescheduled.
	if err := svc.Cancel("stu-1", models.RoleStudent, booking.ID, ""); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, err := svc.Reschedule("stu-1", booking.ID, "slot-2"); !utils.HasCode(err, utils.CodeInvalidState) {
		t.Errorf("Reschedule() on cancelled booking error = %v, want invalid_state", err)
	}
}

// lockingPromoter takes the freed slot's lock the way the waitlist promotion
// does, so lock ordering across slots is exercised for real.
type lockingPromoter struct {
	locker utils.SlotLocker
}

func (p *lockingPromoter) PromoteNext(slotID string) error {
	release, err := p.locker.Lock(context.Background(), slotID)
	if err != nil {
		return err
	}
	release()
	return nil
}

func TestRescheduleOppositeDirections(t *testing.T) {
	svc, repo, _ := newTestService(testSlot("slot-1", 2), testSlot("slot-2", 2))
	svc.Capacity.SetPromoter(&lockingPromoter{locker: svc.Locker})

	b1, err := svc.Request("stu-1", "slot-1")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	b2, err := svc.Request("stu-2", "slot-2")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	done := make(chan error, 2)
	go func() {
		_, err := svc.Reschedule("stu-1", b1.ID, "slot-2")
		done <- err
	}()
	go func() {
		_, err := svc.Reschedule("stu-2", b2.ID, "slot-1")
		done <- err
	}()

	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Reschedule() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("reschedule did not finish; a slot lock is held across the old slot's promotion")
		}
	}

	count1, _ := repo.CountActiveBySlot("slot-1")
	count2, _ := repo.CountActiveBySlot("slot-2")
	if count1 != 1 || count2 != 1 {
		t.Errorf("active counts = %d/%d, want 1/1", count1, count2)
	}
}

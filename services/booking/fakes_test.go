package booking

import (
	"sync"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo is an in-memory BookingRepository with the same guard
// semantics as the Mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) SetStatusIf(id string, expect []models.BookingStatus, newStatus models.BookingStatus, fields bson.M) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, st := range expect {
		if b.Status == st {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	b.Status = newStatus
	applyBookingFields(b, fields)
	return true, nil
}

func (r *fakeBookingRepo) Reschedule(old *models.Booking, replacement *models.Booking, reason string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[old.ID]
	if !ok || !stored.Status.Active() {
		return nil
	}
	stored.Status = models.BookingStatusCancelled
	stored.CancelledAt = &at
	stored.CancellationReason = reason
	stored.RescheduledTo = replacement.ID
	cp := *replacement
	r.bookings[replacement.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) CountActiveBySlot(slotID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.Status.Active() {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) FindActiveBySlotAndStudent(slotID, studentID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.StudentID == studentID && b.Status.Active() {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) ListActiveBySlot(slotID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.Status.Active() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByStudent(studentID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.StudentID == studentID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByFaculty(facultyID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.FacultyID == facultyID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func applyBookingFields(b *models.Booking, fields bson.M) {
	for key, val := range fields {
		switch key {
		case "approved_at":
			t := val.(time.Time)
			b.ApprovedAt = &t
		case "rejected_at":
			t := val.(time.Time)
			b.RejectedAt = &t
		case "cancelled_at":
			t := val.(time.Time)
			b.CancelledAt = &t
		case "cancellation_reason":
			b.CancellationReason = val.(string)
		}
	}
}

// fakeSlotRepo serves slots by id; the write methods are never reached from
// the booking flows.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newFakeSlotRepo(slots ...*models.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[string]*models.Slot)}
	for _, s := range slots {
		cp := *s
		r.slots[s.ID] = &cp
	}
	return r
}

func (r *fakeSlotRepo) Create(slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *fakeSlotRepo) CreateMany(slots []*models.Slot) error {
	for _, s := range slots {
		if err := r.Create(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeSlotRepo) GetByID(id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) Update(slot *models.Slot) error {
	return r.Create(slot)
}

func (r *fakeSlotRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, id)
	return nil
}

func (r *fakeSlotRepo) SetCancelled(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[id]; ok {
		s.IsCancelled = true
	}
	return nil
}

func (r *fakeSlotRepo) ListByFaculty(facultyID string) ([]models.Slot, error) {
	return nil, nil
}

func (r *fakeSlotRepo) ListOpenByFaculty(facultyID string, after time.Time) ([]models.Slot, error) {
	return nil, nil
}

func (r *fakeSlotRepo) ExistsAt(facultyID string, start, end time.Time) (bool, error) {
	return false, nil
}

// fakeWaitlistRepo tracks queue entries; only the lookups matter to the
// booking flows.
type fakeWaitlistRepo struct {
	mu      sync.Mutex
	entries map[string]*models.WaitlistEntry
}

func newFakeWaitlistRepo() *fakeWaitlistRepo {
	return &fakeWaitlistRepo{entries: make(map[string]*models.WaitlistEntry)}
}

func (r *fakeWaitlistRepo) Create(entry *models.WaitlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *fakeWaitlistRepo) GetByID(id string) (*models.WaitlistEntry, error) { return nil, nil }

func (r *fakeWaitlistRepo) SetStatusIf(id string, expect []models.WaitlistStatus, newStatus models.WaitlistStatus, fields bson.M) (bool, error) {
	return false, nil
}

func (r *fakeWaitlistRepo) RemoveAndCompact(id, slotID string, terminal models.WaitlistStatus) error {
	return nil
}

func (r *fakeWaitlistRepo) BookFromEntry(entryID string, booking *models.Booking) error { return nil }

func (r *fakeWaitlistRepo) FindActiveBySlotAndStudent(slotID, studentID string) (*models.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.SlotID == slotID && e.StudentID == studentID && e.Status.Queued() {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWaitlistRepo) CountQueuedBySlot(slotID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.SlotID == slotID && e.Status.Queued() {
			n++
		}
	}
	return n, nil
}

func (r *fakeWaitlistRepo) NextWaiting(slotID string) (*models.WaitlistEntry, error) {
	return nil, nil
}

func (r *fakeWaitlistRepo) HasNotified(slotID string) (bool, error) { return false, nil }

func (r *fakeWaitlistRepo) ListQueuedBySlot(slotID string) ([]models.WaitlistEntry, error) {
	return nil, nil
}

func (r *fakeWaitlistRepo) ListByStudent(studentID string) ([]models.WaitlistEntry, error) {
	return nil, nil
}

func (r *fakeWaitlistRepo) ListOverdueNotified(now time.Time) ([]models.WaitlistEntry, error) {
	return nil, nil
}

// fakeUserRepo resolves display names for notifications.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(user *models.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if r.users == nil {
		return nil, nil
	}
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }

func (r *fakeUserRepo) ListFaculty(department, search string) ([]models.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(id string, fields map[string]interface{}) (*models.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) UpdateShareToken(id, token string) error { return nil }

func (r *fakeUserRepo) GetByShareToken(token string) (*models.User, error) { return nil, nil }

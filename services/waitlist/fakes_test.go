package waitlist

import (
	"errors"
	"sort"
	"sync"
	"time"

	"campusbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeWaitlistRepo is an in-memory WaitlistRepository mirroring the Mongo
// implementation's guards, including dense position compaction.
type fakeWaitlistRepo struct {
	mu       sync.Mutex
	entries  map[string]*models.WaitlistEntry
	bookings *fakeBookingRepo
}

func newFakeWaitlistRepo(bookings *fakeBookingRepo) *fakeWaitlistRepo {
	return &fakeWaitlistRepo{
		entries:  make(map[string]*models.WaitlistEntry),
		bookings: bookings,
	}
}

func (r *fakeWaitlistRepo) Create(entry *models.WaitlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *fakeWaitlistRepo) GetByID(id string) (*models.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeWaitlistRepo) SetStatusIf(id string, expect []models.WaitlistStatus, newStatus models.WaitlistStatus, fields bson.M) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, st := range expect {
		if e.Status == st {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	e.Status = newStatus
	for key, val := range fields {
		switch key {
		case "notification_sent_at":
			t := val.(time.Time)
			e.NotificationSentAt = &t
		case "response_deadline":
			t := val.(time.Time)
			e.ResponseDeadline = &t
		}
	}
	return true, nil
}

func (r *fakeWaitlistRepo) RemoveAndCompact(id, slotID string, terminal models.WaitlistStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || !e.Status.Queued() {
		return errors.New("entry is no longer queued")
	}
	e.Status = terminal
	e.Position = 0
	r.compact(slotID)
	return nil
}

func (r *fakeWaitlistRepo) BookFromEntry(entryID string, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok || e.Status != models.WaitlistStatusNotified {
		return errors.New("entry is no longer notified")
	}
	e.Status = models.WaitlistStatusBooked
	e.Position = 0
	if err := r.bookings.Create(booking); err != nil {
		return err
	}
	r.compact(e.SlotID)
	return nil
}

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
	return len(r.queued(slotID)), nil
}

func (r *fakeWaitlistRepo) NextWaiting(slotID string) (*models.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var next *models.WaitlistEntry
	for _, e := range r.entries {
		if e.SlotID != slotID || e.Status != models.WaitlistStatusWaiting {
			continue
		}
		if next == nil || e.Position < next.Position {
			next = e
		}
	}
	if next == nil {
		return nil, nil
	}
	cp := *next
	return &cp, nil
}

func (r *fakeWaitlistRepo) HasNotified(slotID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.SlotID == slotID && e.Status == models.WaitlistStatusNotified {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWaitlistRepo) ListQueuedBySlot(slotID string) ([]models.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WaitlistEntry
	for _, e := range r.queued(slotID) {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeWaitlistRepo) ListByStudent(studentID string) ([]models.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WaitlistEntry
	for _, e := range r.entries {
		if e.StudentID == studentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeWaitlistRepo) ListOverdueNotified(now time.Time) ([]models.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WaitlistEntry
	for _, e := range r.entries {
		if e.Status == models.WaitlistStatusNotified && e.ResponseDeadline != nil && e.ResponseDeadline.Before(now) {
			out = append(out, *e)
		}
	}
	return out, nil
}

// queued returns the slot's queued entries ordered by position. Callers hold mu.
func (r *fakeWaitlistRepo) queued(slotID string) []*models.WaitlistEntry {
	var out []*models.WaitlistEntry
	for _, e := range r.entries {
		if e.SlotID == slotID && e.Status.Queued() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// compact rewrites the slot's queued positions into a dense 1..N run.
// Callers hold mu.
func (r *fakeWaitlistRepo) compact(slotID string) {
	for i, e := range r.queued(slotID) {
		e.Position = i + 1
	}
}

// fakeBookingRepo covers the booking lookups the waitlist flows make.
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
	for _, st := range expect {
		if b.Status == st {
			b.Status = newStatus
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) Reschedule(old *models.Booking, replacement *models.Booking, reason string, at time.Time) error {
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
	return nil, nil
}

func (r *fakeBookingRepo) ListByStudent(studentID string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) ListByFaculty(facultyID string) ([]models.Booking, error) {
	return nil, nil
}

// fakeSlotRepo serves slots by id; only the lookups are exercised here.
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

func (r *fakeSlotRepo) Update(slot *models.Slot) error { return r.Create(slot) }

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

func (r *fakeSlotRepo) ListByFaculty(facultyID string) ([]models.Slot, error) { return nil, nil }

func (r *fakeSlotRepo) ListOpenByFaculty(facultyID string, after time.Time) ([]models.Slot, error) {
	return nil, nil
}

func (r *fakeSlotRepo) ExistsAt(facultyID string, start, end time.Time) (bool, error) {
	return false, nil
}

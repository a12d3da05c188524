package utils

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLocalSlotLockerSerializesPerSlot(t *testing.T) {
	locker := NewLocalSlotLocker()

	const workers = 32
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Lock(context.Background(), "slot-a")
			if err != nil {
				t.Errorf("Lock() error = %v", err)
				return
			}
			defer release()

			// Unsynchronized read-modify-write; only the lock keeps it safe.
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter = %d, want %d (lost updates under the lock)", counter, workers)
	}
}

func TestLocalSlotLockerIndependentSlots(t *testing.T) {
	locker := NewLocalSlotLocker()

	releaseA, err := locker.Lock(context.Background(), "slot-a")
	if err != nil {
		t.Fatalf("Lock(slot-a) error = %v", err)
	}
	defer releaseA()

	// Holding slot-a must not block slot-b.
	done := make(chan struct{})
	go func() {
		defer close(done)
		releaseB, err := locker.Lock(context.Background(), "slot-b")
		if err != nil {
			t.Errorf("Lock(slot-b) error = %v", err)
			return
		}
		releaseB()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Lock(slot-b) blocked while slot-a was held")
	}
}

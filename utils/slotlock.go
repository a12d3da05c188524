package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SlotLocker serializes the check-then-act spans of booking and waitlist
// operations per slot. Two different slots never contend on the same lock.
type SlotLocker interface {
	// Lock acquires the lock for slotID, returning an unlock func. A lock
	// that cannot be obtained within the locker's patience returns a
	// conflict AppError and the caller should retry the whole operation.
	Lock(ctx context.Context, slotID string) (func(), error)
}

const (
	slotLockPrefix   = "slotlock:"
	slotLockLease    = 10 * time.Second
	slotLockRetry    = 50 * time.Millisecond
	slotLockPatience = 3 * time.Second
)

// RedisSlotLocker implements SlotLocker with a SETNX lease per slot, so the
// critical section holds across replicas sharing the same Redis.
type RedisSlotLocker struct {
	Client *redis.Client
}

func NewRedisSlotLocker(client *redis.Client) *RedisSlotLocker {
	return &RedisSlotLocker{Client: client}
}

func (l *RedisSlotLocker) Lock(ctx context.Context, slotID string) (func(), error) {
	key := slotLockPrefix + slotID
	token := uuid.New().String()
	deadline := time.Now().Add(slotLockPatience)

	for {
		ok, err := l.Client.SetNX(ctx, key, token, slotLockLease).Result()
		if err != nil {
			return nil, NewConflictError(slotID)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, NewConflictError(slotID)
		}
		select {
		case <-ctx.Done():
			return nil, NewConflictError(slotID)
		case <-time.After(slotLockRetry):
		}
	}

	unlock := func() {
		// Release only our own lease; an expired lease may have been
		// re-acquired by another request.
		const script = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`
		l.Client.Eval(context.Background(), script, []string{key}, token)
	}
	return unlock, nil
}

// LocalSlotLocker implements SlotLocker with an in-process mutex arena keyed
// by slot id. Suitable for single-node deployments and tests.
type LocalSlotLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalSlotLocker() *LocalSlotLocker {
	return &LocalSlotLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *LocalSlotLocker) get(slotID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, exists := l.locks[slotID]
	if !exists {
		m = &sync.Mutex{}
		l.locks[slotID] = m
	}
	return m
}

func (l *LocalSlotLocker) Lock(ctx context.Context, slotID string) (func(), error) {
	m := l.get(slotID)
	m.Lock()
	return m.Unlock, nil
}

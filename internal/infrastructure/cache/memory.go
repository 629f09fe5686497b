package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/errors"
	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

const cleanupInterval = 5 * time.Minute

// MemoryBaselineStore keeps baselines in process memory with expiration.
// Values are stored serialized so callers never share a baseline's maps.
type MemoryBaselineStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

type memoryItem struct {
	value      []byte
	expireTime time.Time
}

// NewMemoryBaselineStore creates a store; ttl <= 0 keeps entries until Close
func NewMemoryBaselineStore(ttl time.Duration) *MemoryBaselineStore {
	store := &MemoryBaselineStore{
		items: make(map[string]*memoryItem),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}

	go store.cleanupExpired()

	return store
}

// Get returns the user's baseline, nil if missing or expired
func (ms *MemoryBaselineStore) Get(_ context.Context, userID string) (*entities.Baseline, error) {
	ms.mu.RLock()
	item, exists := ms.items[baselineKey(userID)]
	ms.mu.RUnlock()

	if !exists || item.expired(time.Now()) {
		return nil, nil
	}

	var b entities.Baseline
	if err := json.Unmarshal(item.value, &b); err != nil {
		return nil, errors.ErrCacheFailed("get baseline", err)
	}
	return &b, nil
}

// Save stores the baseline and restarts its expiration
func (ms *MemoryBaselineStore) Save(_ context.Context, baseline *entities.Baseline) error {
	data, err := json.Marshal(baseline)
	if err != nil {
		return errors.ErrCacheFailed("save baseline", err)
	}

	item := &memoryItem{value: data}
	if ms.ttl > 0 {
		item.expireTime = time.Now().Add(ms.ttl)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.items[baselineKey(baseline.UserID)] = item
	return nil
}

// Delete removes a user's baseline
func (ms *MemoryBaselineStore) Delete(_ context.Context, userID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, baselineKey(userID))
	return nil
}

// Close stops the cleanup goroutine
func (ms *MemoryBaselineStore) Close() {
	ms.once.Do(func() { close(ms.stop) })
}

func (i *memoryItem) expired(now time.Time) bool {
	return !i.expireTime.IsZero() && now.After(i.expireTime)
}

// cleanupExpired periodically removes expired items
func (ms *MemoryBaselineStore) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case now := <-ticker.C:
			ms.mu.Lock()
			for key, item := range ms.items {
				if item.expired(now) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}

func baselineKey(userID string) string {
	return "baseline:" + userID
}

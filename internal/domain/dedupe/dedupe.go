// Package dedupe coalesces pending refresh requests so each league is queued at most once.
package dedupe

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Deduper tracks keys with pending work.
type Deduper interface {
	// SeenAndRecord atomically checks whether key is pending and marks it if not.
	// Returns true when the key was already pending.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord clears the pending mark, e.g. when a worker picks the job up or
	// enqueueing failed, so the next request schedules a fresh refresh.
	Unrecord(ctx context.Context, key string)

	// Since reports when key was marked pending.
	Since(key string) (time.Time, bool)

	// Keys lists pending keys, oldest first.
	Keys() []string

	Size() int64
}

// pendingSet implements Deduper with a map guarded by a mutex. With maxSize > 0 the
// oldest mark is evicted when full; a dropped mark only costs one extra refresh.
type pendingSet struct {
	mu      sync.Mutex
	pending map[string]time.Time
	maxSize int
	size    atomic.Int64
	now     func() time.Time
}

// NewInMemoryDeduper creates an in-memory pending set.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &pendingSet{
		maxSize: 10_000,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.pending = make(map[string]time.Time)
	return d
}

func (d *pendingSet) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.pending[key]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.pending) >= d.maxSize {
		d.evictOldest()
	}
	d.pending[key] = d.now()
	d.size.Store(int64(len(d.pending)))
	return false
}

func (d *pendingSet) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.pending, key)
	d.size.Store(int64(len(d.pending)))
}

func (d *pendingSet) Since(key string) (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.pending[key]
	return t, ok
}

func (d *pendingSet) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, tj := d.pending[keys[i]], d.pending[keys[j]]
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return keys[i] < keys[j]
	})
	return keys
}

// evictOldest must be called with d.mu held.
func (d *pendingSet) evictOldest() {
	var oldest string
	var at time.Time
	first := true
	for k, t := range d.pending {
		if first || t.Before(at) || (t.Equal(at) && k < oldest) {
			oldest, at, first = k, t, false
		}
	}
	if !first {
		delete(d.pending, oldest)
	}
}

// Size returns the number of pending keys.
func (d *pendingSet) Size() int64 {
	return d.size.Load()
}

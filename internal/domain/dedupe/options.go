package dedupe

import "time"

// Option applies a configuration option to the in-memory deduper.
type Option func(*pendingSet)

// WithMaxSize bounds the number of pending keys.
// If maxSize > 0 the oldest mark is evicted when full.
// If maxSize <= 0 the set is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(d *pendingSet) {
		d.maxSize = maxSize
	}
}

// WithClock replaces time.Now for pending timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *pendingSet) {
		if now != nil {
			d.now = now
		}
	}
}

package repository

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithHistoryDepth sets how many build summaries are kept per league.
func WithHistoryDepth(depth int) Option {
	return func(s *SnapshotStore) {
		if depth > 0 {
			s.historyDepth = depth
		}
	}
}

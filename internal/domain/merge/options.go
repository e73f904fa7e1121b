package merge

import "github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"

// Option configures a Merger.
type Option func(*Merger)

// WithStrategy selects how matching names are grouped.
func WithStrategy(s Strategy) Option {
	return func(m *Merger) {
		m.strategy = s
	}
}

// WithMatcher sets the pairwise identity relation.
func WithMatcher(nm NameMatcher) Option {
	return func(m *Merger) {
		if nm != nil {
			m.matcher = nm
		}
	}
}

// WithCanonicalizer sets how a raw entity name is cleaned before matching.
func WithCanonicalizer(fn func(string) string) Option {
	return func(m *Merger) {
		if fn != nil {
			m.canonicalize = fn
		}
	}
}

// WithPartition merges independently inside each partition key, e.g. per team.
func WithPartition(fn func(model.RawStatRecord) string) Option {
	return func(m *Merger) {
		m.partition = fn
	}
}

// WithTeam sets how the owning team of an entity is derived from its first record.
func WithTeam(fn func(model.RawStatRecord) string) Option {
	return func(m *Merger) {
		m.team = fn
	}
}

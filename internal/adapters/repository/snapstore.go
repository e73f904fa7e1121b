package repository

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/engine"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/metrics"
)

const defaultHistoryDepth = 10

// league holds everything stored for one league. Readers load current
// without locking; writers hold the store mutex.
type league struct {
	current atomic.Pointer[engine.Snapshot]
	ranks   map[string]map[string]int
	history []BuildSummary
}

// SnapshotStore is an in-memory Store. Published snapshots are treated as
// immutable and shared between readers.
type SnapshotStore struct {
	mu           sync.RWMutex
	leagues      map[string]*league
	historyDepth int
}

// NewSnapshotStore constructs an empty store.
func NewSnapshotStore(opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		leagues:      make(map[string]*league),
		historyDepth: defaultHistoryDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish implements Store.Publish.
func (s *SnapshotStore) Publish(_ context.Context, snap *engine.Snapshot) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	if snap.LeagueID == "" {
		return ErrNoLeagueID
	}

	s.mu.Lock()
	l, ok := s.leagues[snap.LeagueID]
	if !ok {
		l = &league{}
		s.leagues[snap.LeagueID] = l
	}
	l.current.Store(snap)
	l.ranks = copyRanks(snap.Ranks)
	l.history = append([]BuildSummary{summarize(snap)}, l.history...)
	if len(l.history) > s.historyDepth {
		l.history = l.history[:s.historyDepth]
	}
	count := len(s.leagues)
	s.mu.Unlock()

	metrics.UpdateLeagues(count)
	metrics.UpdateSnapshotTime(snap.LeagueID, snap.BuiltAt)
	metrics.UpdateEntities(snap.LeagueID, "player", len(snap.Players))
	metrics.UpdateEntities(snap.LeagueID, "team", len(snap.Teams))
	return nil
}

// Snapshot implements Store.Snapshot.
func (s *SnapshotStore) Snapshot(_ context.Context, leagueID string) (*engine.Snapshot, error) {
	s.mu.RLock()
	l, ok := s.leagues[leagueID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	snap := l.current.Load()
	if snap == nil {
		return nil, ErrNotFound
	}
	return snap, nil
}

// PreviousRanks implements Store.PreviousRanks. The returned maps are copies.
func (s *SnapshotStore) PreviousRanks(_ context.Context, leagueID string) map[string]map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leagues[leagueID]
	if !ok {
		return nil
	}
	return copyRanks(l.ranks)
}

// History implements Store.History.
func (s *SnapshotStore) History(_ context.Context, leagueID string) []BuildSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leagues[leagueID]
	if !ok {
		return nil
	}
	return append([]BuildSummary(nil), l.history...)
}

// Leagues implements Store.Leagues.
func (s *SnapshotStore) Leagues(_ context.Context) []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.leagues))
	for id := range s.leagues {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func summarize(snap *engine.Snapshot) BuildSummary {
	return BuildSummary{
		LeagueID: snap.LeagueID,
		BuiltAt:  snap.BuiltAt,
		Players:  len(snap.Players),
		Teams:    len(snap.Teams),
		Stats:    snap.Stats,
	}
}

func copyRanks(in map[string]map[string]int) map[string]map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]map[string]int, len(in))
	for scope, ranks := range in {
		m := make(map[string]int, len(ranks))
		for k, v := range ranks {
			m[k] = v
		}
		out[scope] = m
	}
	return out
}

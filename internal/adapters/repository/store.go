// Package repository keeps the published league snapshots and the rank
// history that drives standings movement.
package repository

import (
	"context"
	"time"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/engine"
)

// BuildSummary describes one published snapshot.
type BuildSummary struct {
	LeagueID string       `json:"leagueId"`
	BuiltAt  time.Time    `json:"builtAt"`
	Players  int          `json:"players"`
	Teams    int          `json:"teams"`
	Stats    engine.Stats `json:"stats"`
}

// Store provides read/write access to league snapshots.
type Store interface {
	// Publish makes snap the current snapshot of its league and records
	// its rank maps as the baseline for the next build.
	Publish(ctx context.Context, snap *engine.Snapshot) error

	// Snapshot returns the current snapshot of a league.
	// Returns ErrNotFound if nothing was published for it.
	Snapshot(ctx context.Context, leagueID string) (*engine.Snapshot, error)

	// PreviousRanks returns the rank maps of the last published snapshot,
	// keyed by scope. It returns nil for a league never published.
	PreviousRanks(ctx context.Context, leagueID string) map[string]map[string]int

	// History returns the most recent build summaries, newest first.
	History(ctx context.Context, leagueID string) []BuildSummary

	// Leagues returns the ids of every published league, sorted.
	Leagues(ctx context.Context) []string
}

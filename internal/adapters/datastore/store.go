// Package datastore reads league game data from the upstream scorekeeping
// feed, either as exported files or straight from its Postgres database.
package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
)

// Sentinel errors.
var (
	ErrLeagueNotFound = errors.New("league not found")
	ErrInvalidLeague  = errors.New("invalid league id")
)

// Store is the read side of the stats feed.
type Store interface {
	PlayerGameStats(ctx context.Context, leagueID string) ([]model.RawStatRecord, error)
	TeamGameStats(ctx context.Context, leagueID string) ([]model.RawStatRecord, error)
	Schedule(ctx context.Context, leagueID string) ([]model.ScheduleEntry, error)
	Roster(ctx context.Context, leagueID string) ([]model.RosterTeam, error)
}

// DatasetLoader is implemented by stores that can read a whole league at once.
type DatasetLoader interface {
	Dataset(ctx context.Context, leagueID string) (model.Dataset, error)
}

// Dataset reads everything one refresh needs through s.
func Dataset(ctx context.Context, s Store, leagueID string) (model.Dataset, error) {
	if l, ok := s.(DatasetLoader); ok {
		return l.Dataset(ctx, leagueID)
	}
	ds := model.Dataset{LeagueID: leagueID}
	var err error
	if ds.PlayerRecords, err = s.PlayerGameStats(ctx, leagueID); err != nil {
		return ds, fmt.Errorf("player stats: %w", err)
	}
	if ds.TeamRecords, err = s.TeamGameStats(ctx, leagueID); err != nil {
		return ds, fmt.Errorf("team stats: %w", err)
	}
	if ds.Schedule, err = s.Schedule(ctx, leagueID); err != nil {
		return ds, fmt.Errorf("schedule: %w", err)
	}
	if ds.Roster, err = s.Roster(ctx, leagueID); err != nil {
		return ds, fmt.Errorf("roster: %w", err)
	}
	return ds, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/repository"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/engine"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/identity"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/projection"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/ranking"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/types"
)

// TableQuery selects and orders a player or team table.
type TableQuery struct {
	Stat  string
	Mode  string
	Limit int
}

// Snapshot returns the current snapshot of a league.
func (s *Service) Snapshot(ctx context.Context, leagueID string) (*engine.Snapshot, error) {
	snap, err := s.snapshots.Snapshot(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("league %s: %w", leagueID, err)
	}
	return snap, nil
}

// Leagues lists leagues with a published snapshot.
func (s *Service) Leagues(ctx context.Context) []string {
	return s.snapshots.Leagues(ctx)
}

// History returns recent build summaries of a league, newest first.
func (s *Service) History(ctx context.Context, leagueID string) ([]repository.BuildSummary, error) {
	if _, err := s.Snapshot(ctx, leagueID); err != nil {
		return nil, err
	}
	return s.snapshots.History(ctx, leagueID), nil
}

// Players returns the player table ordered by the requested stat.
// Per-100-possession mode is a team view and is rejected here.
func (s *Service) Players(ctx context.Context, leagueID string, q TableQuery) (types.Table, error) {
	return s.table(ctx, leagueID, types.KindPlayer, q)
}

// Teams returns the team table ordered by the requested stat.
func (s *Service) Teams(ctx context.Context, leagueID string, q TableQuery) (types.Table, error) {
	return s.table(ctx, leagueID, types.KindTeam, q)
}

func (s *Service) table(ctx context.Context, leagueID, kind string, q TableQuery) (types.Table, error) {
	key, mode, err := s.parseStat(kind, q.Stat, q.Mode)
	if err != nil {
		return types.Table{}, err
	}
	snap, err := s.Snapshot(ctx, leagueID)
	if err != nil {
		return types.Table{}, err
	}

	limit := q.Limit
	if limit <= 0 || limit > s.maxListLimit {
		limit = s.maxListLimit
	}
	entities := snap.Players
	if kind == types.KindTeam {
		entities = snap.Teams
	}

	keys := projection.TableKeys()
	leaders := ranking.Leaders(entities, key, mode, limit)
	rows := make([]types.StatRow, 0, len(leaders))
	for _, l := range leaders {
		rows = append(rows, types.FromLeader(l, keys, mode))
	}
	return types.Table{
		LeagueID: leagueID,
		Kind:     kind,
		Stat:     key,
		Mode:     string(mode),
		BuiltAt:  snap.BuiltAt,
		Rows:     rows,
	}, nil
}

// Standings returns the league table, or one pool's table when pool is set.
func (s *Service) Standings(ctx context.Context, leagueID, pool string) (types.Standings, error) {
	snap, err := s.Snapshot(ctx, leagueID)
	if err != nil {
		return types.Standings{}, err
	}

	entries := snap.Standings
	if pool = strings.TrimSpace(pool); pool != "" {
		var ok bool
		if entries, ok = findPool(snap.PoolStandings, pool); !ok {
			return types.Standings{}, fmt.Errorf("%w: %s", ErrPoolNotFound, pool)
		}
	}

	rows := make([]types.StandingsRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, types.FromStandings(e))
	}
	return types.Standings{
		LeagueID: leagueID,
		Pool:     pool,
		Pools:    snap.Pools,
		BuiltAt:  snap.BuiltAt,
		Rows:     rows,
	}, nil
}

// pool names are matched case-insensitively, as typed in URLs.
func findPool(pools map[string][]model.StandingsEntry, pool string) ([]model.StandingsEntry, bool) {
	if t, ok := pools[pool]; ok {
		return t, true
	}
	for name, t := range pools {
		if strings.EqualFold(name, pool) {
			return t, true
		}
	}
	return nil, false
}

// Rank places one player or team within the league for a stat. name may be
// a display name, an alias or a URL slug.
func (s *Service) Rank(ctx context.Context, leagueID, kind, name, stat, mode string) (types.RankResult, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = types.KindPlayer
	}
	if kind != types.KindPlayer && kind != types.KindTeam {
		return types.RankResult{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, kind)
	}
	if strings.TrimSpace(name) == "" {
		return types.RankResult{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	key, m, err := s.parseStat(kind, stat, mode)
	if err != nil {
		return types.RankResult{}, err
	}
	snap, err := s.Snapshot(ctx, leagueID)
	if err != nil {
		return types.RankResult{}, err
	}

	entities := snap.Players
	if kind == types.KindTeam {
		entities = snap.Teams
	}
	e, ok := s.findEntity(entities, name)
	if !ok {
		return types.RankResult{}, fmt.Errorf("%w: %s %q", ErrEntityNotFound, kind, name)
	}

	population := ranking.Population(entities, key, m)
	value := projection.Project(*e, key, m)
	rank := ranking.ComputeRank(value, population)
	return types.RankResult{
		LeagueID:   leagueID,
		Kind:       kind,
		Name:       e.CanonicalName,
		Team:       e.Team,
		Stat:       key,
		Mode:       string(m),
		Value:      value,
		Rank:       rank,
		Population: len(population),
		Percentile: ranking.Percentile(rank, len(population)),
	}, nil
}

// findEntity resolves name by display name, then alias, then slug, then the
// fuzzy matcher.
func (s *Service) findEntity(entities []model.CanonicalEntity, name string) (*model.CanonicalEntity, bool) {
	name = strings.TrimSpace(name)
	folded := identity.Fold(name)
	for i := range entities {
		if identity.Fold(entities[i].CanonicalName) == folded {
			return &entities[i], true
		}
	}
	for i := range entities {
		for _, a := range entities[i].Aliases {
			if identity.Fold(a) == folded {
				return &entities[i], true
			}
		}
	}
	slug := identity.Slug(name)
	for i := range entities {
		if identity.Slug(entities[i].CanonicalName) == slug {
			return &entities[i], true
		}
	}
	if !strings.Contains(name, " ") && strings.Contains(name, "-") {
		name = identity.SlugToName(name)
	}
	m := s.engineOpts.Matcher
	if m == nil {
		m = identity.NewMatcher()
	}
	for i := range entities {
		if m.Match(entities[i].CanonicalName, name) {
			return &entities[i], true
		}
	}
	return nil, false
}

// Review returns the near-miss identity pairs of a league.
func (s *Service) Review(ctx context.Context, leagueID string) (types.Review, error) {
	snap, err := s.Snapshot(ctx, leagueID)
	if err != nil {
		return types.Review{}, err
	}
	return types.Review{
		LeagueID: leagueID,
		BuiltAt:  snap.BuiltAt,
		Players:  snap.Review.Players,
		Teams:    snap.Review.Teams,
	}, nil
}

func (s *Service) parseStat(kind, stat, mode string) (model.StatKey, projection.Mode, error) {
	m, err := projection.ParseMode(mode)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if kind == types.KindPlayer && m == projection.Per100Possessions {
		return "", "", fmt.Errorf("%w: %s for players", ErrModeNotSupported, m)
	}
	if strings.TrimSpace(stat) == "" {
		return model.StatPoints, m, nil
	}
	key, err := projection.ParseStatKey(stat)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return key, m, nil
}

// IsNotFound reports whether err means the league, pool or entity is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, ErrEntityNotFound) ||
		errors.Is(err, ErrPoolNotFound)
}

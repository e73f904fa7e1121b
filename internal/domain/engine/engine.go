// Package engine turns one league dataset into a fully computed snapshot:
// merged player and team aggregates, standings per scope and an identity review.
// Build is pure; the only state carried between builds is the rank map passed in.
package engine

import (
	"strings"
	"time"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/identity"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/merge"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/standings"
)

// LeagueScope is the rank scope of the full league table.
const LeagueScope = "league"

// PoolScope is the rank scope of one pool table.
func PoolScope(pool string) string {
	return "pool:" + pool
}

// Options control identity resolution and merging.
type Options struct {
	Aliases                *identity.AliasTable
	Matcher                *identity.Matcher
	Strategy               merge.Strategy
	PartitionPlayersByTeam bool
	ReviewMaxDistance      int
	// DropDuplicateRows discards repeated (entity, team, game) rows before
	// merging. Off by default: every row contributes to its entity's totals.
	DropDuplicateRows bool
}

// DefaultOptions uses the built-in aliases, default matcher and connected components.
func DefaultOptions() Options {
	return Options{
		Aliases:                identity.NewAliasTable(nil),
		Matcher:                identity.NewMatcher(),
		Strategy:               merge.StrategyComponents,
		PartitionPlayersByTeam: true,
		ReviewMaxDistance:      3,
	}
}

// Review lists near-miss name pairs for alias curation.
type Review struct {
	Players []identity.NearMiss `json:"players"`
	Teams   []identity.NearMiss `json:"teams"`
}

// Stats summarizes one build.
type Stats struct {
	PlayerRows       int `json:"playerRows"`
	TeamRows         int `json:"teamRows"`
	DuplicateRows    int `json:"duplicateRows"`
	PlayerAliasFolds int `json:"playerAliasFolds"`
	TeamAliasFolds   int `json:"teamAliasFolds"`
	Results          int `json:"results"`
}

// Snapshot is the computed state of one league.
type Snapshot struct {
	LeagueID      string
	BuiltAt       time.Time
	Players       []model.CanonicalEntity
	Teams         []model.CanonicalEntity
	Standings     []model.StandingsEntry
	PoolStandings map[string][]model.StandingsEntry
	Pools         []string
	Results       []model.GameResult
	Schedule      []model.ScheduleEntry
	Review        Review
	Stats         Stats
	// Ranks is the rank snapshot per scope, to be passed to the next Build.
	Ranks map[string]map[string]int
}

// Build computes a snapshot of ds. previousRanks holds the rank maps of the previous
// snapshot keyed by scope; it may be nil.
func Build(ds model.Dataset, opts Options, previousRanks map[string]map[string]int) *Snapshot {
	if opts.Aliases == nil {
		opts.Aliases = identity.NewAliasTable(nil)
	}
	if opts.Matcher == nil {
		opts.Matcher = identity.NewMatcher()
	}
	teamCanon := opts.Aliases.Canonicalize

	s := &Snapshot{
		LeagueID:      ds.LeagueID,
		PoolStandings: map[string][]model.StandingsEntry{},
		Schedule:      ds.Schedule,
		Ranks:         map[string]map[string]int{},
	}

	teamRows, teamDups := dedupeRows(ds.TeamRecords, true, opts.DropDuplicateRows)
	playerRows, playerDups := dedupeRows(ds.PlayerRecords, false, opts.DropDuplicateRows)
	s.Stats.TeamRows, s.Stats.PlayerRows = len(teamRows), len(playerRows)
	s.Stats.DuplicateRows = teamDups + playerDups

	s.Teams = merge.New(
		merge.WithStrategy(opts.Strategy),
		merge.WithMatcher(opts.Matcher),
		merge.WithCanonicalizer(teamCanon),
	).Merge(teamRows)

	teamOf := teamResolver(s.Teams, ds.Roster, teamCanon, opts.Matcher)
	playerOpts := []merge.Option{
		merge.WithStrategy(opts.Strategy),
		merge.WithMatcher(opts.Matcher),
		merge.WithTeam(teamOf),
	}
	if opts.PartitionPlayersByTeam {
		playerOpts = append(playerOpts, merge.WithPartition(teamOf))
	}
	s.Players = merge.New(playerOpts...).Merge(playerRows)

	s.Stats.TeamAliasFolds = aliasFolds(s.Teams)
	s.Stats.PlayerAliasFolds = aliasFolds(s.Players)

	rosterNames := ds.TeamNames()
	if len(rosterNames) == 0 {
		for _, t := range s.Teams {
			rosterNames = append(rosterNames, t.CanonicalName)
		}
	}
	s.Results = standings.ResultsFromTeamRecords(teamRows)
	s.Stats.Results = len(s.Results)
	pools := standings.PoolsFromSchedule(ds.Schedule, teamCanon)
	calc := standings.New(standings.WithMatcher(opts.Matcher), standings.WithCanonicalizer(teamCanon))

	s.Standings = calc.Compute(rosterNames, s.Results, pools, previousRanks[LeagueScope])
	s.Ranks[LeagueScope] = standings.Ranks(s.Standings)
	s.Pools = standings.PoolNames(s.Standings)
	for _, p := range s.Pools {
		scope := PoolScope(p)
		table := calc.ComputePool(rosterNames, s.Results, pools, p, previousRanks[scope])
		s.PoolStandings[p] = table
		s.Ranks[scope] = standings.Ranks(table)
	}

	s.Review = Review{
		Players: opts.Matcher.NearMisses(entityNames(s.Players), opts.ReviewMaxDistance),
		Teams:   opts.Matcher.NearMisses(entityNames(s.Teams), opts.ReviewMaxDistance),
	}
	return s
}

type rowKey struct {
	entity, team, game string
}

// dedupeRows drops repeated (entity, team, game) rows when drop is set,
// keeping the first. Team rows without an entity name take the team name.
func dedupeRows(rows []model.RawStatRecord, teamRows, drop bool) ([]model.RawStatRecord, int) {
	seen := make(map[rowKey]struct{}, len(rows))
	out := make([]model.RawStatRecord, 0, len(rows))
	for _, r := range rows {
		if teamRows && strings.TrimSpace(r.EntityName) == "" {
			r.EntityName = r.TeamName
		}
		if teamRows && strings.TrimSpace(r.TeamName) == "" {
			r.TeamName = r.EntityName
		}
		k := rowKey{
			entity: strings.ToLower(strings.TrimSpace(r.EntityName)),
			team:   strings.ToLower(strings.TrimSpace(r.TeamName)),
			game:   strings.TrimSpace(r.GameID),
		}
		if drop && k.game != "" {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, r)
	}
	return out, len(rows) - len(out)
}

// teamResolver maps a player row's team to the display name of its merged team entity,
// falling back to the roster and finally to the canonical spelling.
func teamResolver(teams []model.CanonicalEntity, roster []model.RosterTeam, canon func(string) string, m *identity.Matcher) func(model.RawStatRecord) string {
	known := map[string]string{}
	var names []string
	for _, t := range teams {
		names = append(names, t.CanonicalName)
		for _, r := range t.Records {
			known[canon(r.EntityName)] = t.CanonicalName
		}
	}
	for _, r := range roster {
		n := canon(r.Name)
		if _, ok := known[n]; !ok {
			known[n] = n
			names = append(names, n)
		}
	}
	return func(r model.RawStatRecord) string {
		n := canon(r.TeamName)
		if v, ok := known[n]; ok {
			return v
		}
		for _, candidate := range names {
			if m.Match(candidate, n) {
				return candidate
			}
		}
		return n
	}
}

func aliasFolds(es []model.CanonicalEntity) int {
	n := 0
	for _, e := range es {
		if len(e.Aliases) > 1 {
			n += len(e.Aliases) - 1
		}
	}
	return n
}

func entityNames(es []model.CanonicalEntity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.CanonicalName
	}
	return out
}

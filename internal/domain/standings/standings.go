// Package standings derives league tables from completed game results.
package standings

import (
	"sort"
	"strings"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/identity"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
)

// NameMatcher resolves result team names to roster names.
type NameMatcher interface {
	Match(a, b string) bool
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithMatcher sets the team identity relation.
func WithMatcher(m NameMatcher) Option {
	return func(c *Calculator) {
		if m != nil {
			c.matcher = m
		}
	}
}

// WithCanonicalizer sets how result and schedule team names are cleaned.
func WithCanonicalizer(fn func(string) string) Option {
	return func(c *Calculator) {
		if fn != nil {
			c.canonicalize = fn
		}
	}
}

// Calculator builds standings tables.
type Calculator struct {
	matcher      NameMatcher
	canonicalize func(string) string
}

// New returns a Calculator over the default matcher and alias table.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		matcher:      identity.NewMatcher(),
		canonicalize: identity.Canonicalize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = New()

// Compute ranks every team of the league.
func Compute(teams []string, results []model.GameResult, pools map[string]string, previousRanks map[string]int) []model.StandingsEntry {
	return defaultCalculator.Compute(teams, results, pools, previousRanks)
}

// ComputePool ranks the teams of one pool.
func ComputePool(teams []string, results []model.GameResult, pools map[string]string, pool string, previousRanks map[string]int) []model.StandingsEntry {
	return defaultCalculator.ComputePool(teams, results, pools, pool, previousRanks)
}

// Compute seeds one row per roster team, folds every result in, then ranks.
// Result sides that match no roster team get a row of their own.
func (c *Calculator) Compute(teams []string, results []model.GameResult, pools map[string]string, previousRanks map[string]int) []model.StandingsEntry {
	entries := c.tally(teams, results, pools)
	rank(entries, previousRanks)
	return entries
}

// ComputePool is Compute restricted to teams assigned to pool. Games against
// teams outside the pool still count.
func (c *Calculator) ComputePool(teams []string, results []model.GameResult, pools map[string]string, pool string, previousRanks map[string]int) []model.StandingsEntry {
	all := c.tally(teams, results, pools)
	entries := make([]model.StandingsEntry, 0, len(all))
	for _, e := range all {
		if e.Pool == pool {
			entries = append(entries, e)
		}
	}
	rank(entries, previousRanks)
	return entries
}

func (c *Calculator) tally(teams []string, results []model.GameResult, pools map[string]string) []model.StandingsEntry {
	entries := make([]model.StandingsEntry, 0, len(teams))
	for _, t := range teams {
		name := c.canonicalize(t)
		if name == "" || c.find(entries, name) >= 0 {
			continue
		}
		entries = append(entries, model.StandingsEntry{TeamName: name, Pool: c.poolOf(name, pools)})
	}

	resolve := func(team string) int {
		name := c.canonicalize(team)
		if i := c.find(entries, name); i >= 0 {
			return i
		}
		entries = append(entries, model.StandingsEntry{TeamName: name, Pool: c.poolOf(name, pools)})
		return len(entries) - 1
	}

	for _, r := range results {
		if strings.TrimSpace(r.Home.Team) == "" || strings.TrimSpace(r.Away.Team) == "" {
			continue
		}
		h, a := resolve(r.Home.Team), resolve(r.Away.Team)
		if h == a {
			continue
		}
		record(&entries[h], r.Home.Points, r.Away.Points)
		record(&entries[a], r.Away.Points, r.Home.Points)
	}
	return entries
}

// find prefers an exact name before asking the matcher.
func (c *Calculator) find(entries []model.StandingsEntry, name string) int {
	for i := range entries {
		if entries[i].TeamName == name {
			return i
		}
	}
	for i := range entries {
		if c.matcher.Match(entries[i].TeamName, name) {
			return i
		}
	}
	return -1
}

func (c *Calculator) poolOf(name string, pools map[string]string) string {
	if p, ok := pools[name]; ok {
		return p
	}
	teams := make([]string, 0, len(pools))
	for team := range pools {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	for _, team := range teams {
		if c.matcher.Match(c.canonicalize(team), name) {
			return pools[team]
		}
	}
	return ""
}

func record(e *model.StandingsEntry, own, opp float64) {
	e.Games++
	e.PointsFor += own
	e.PointsAgainst += opp
	e.PointsDiff = e.PointsFor - e.PointsAgainst
	switch {
	case own > opp:
		e.Wins++
	case own < opp:
		e.Losses++
	}
}

// rank sorts by win percentage, point differential, then points per game, keeping
// input order for full ties, and sets Rank and Movement.
func rank(entries []model.StandingsEntry, previousRanks map[string]int) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.WinPct() != b.WinPct() {
			return a.WinPct() > b.WinPct()
		}
		if a.PointsDiff != b.PointsDiff {
			return a.PointsDiff > b.PointsDiff
		}
		return a.AvgPoints() > b.AvgPoints()
	})
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Movement = movement(entries[i].Rank, previousRanks, entries[i].TeamName)
	}
}

func movement(current int, previousRanks map[string]int, team string) model.Movement {
	prev, ok := previousRanks[team]
	switch {
	case !ok || prev == current:
		return model.MovementSame
	case current < prev:
		return model.MovementUp
	default:
		return model.MovementDown
	}
}

// Ranks captures the table as the rank snapshot for the next refresh.
func Ranks(entries []model.StandingsEntry) map[string]int {
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.TeamName] = e.Rank
	}
	return out
}

package samplegen

import "time"

// Config holds configuration for a generated league.
type Config struct {
	LeagueID       string    // League id, also the output file stem
	OutputDir      string    // Directory the export is written to
	Seed           uint64    // Seed for every random choice
	Teams          int       // Number of teams
	Pools          int       // Number of pools teams are split into
	PlayersPerTeam int       // Roster size per team
	Rounds         int       // Times each pair inside a pool meets
	VariantRate    float64   // Share of rows written with an alternate spelling
	DuplicateRate  float64   // Share of player rows repeated verbatim
	Start          time.Time // Tip-off of the first game
	Verify         bool      // Load the written file back and build a snapshot
}

// Stats holds generation statistics.
type Stats struct {
	Teams          int
	Players        int
	Games          int
	PlayerRows     int
	TeamRows       int
	VariantRows    int
	DuplicateRows  int
	ResolvedPlayer int
	ResolvedTeams  int
	Duration       time.Duration
}

// Defaults used by the CLI and by Normalize.
const (
	DefaultTeams          = 8
	DefaultPools          = 2
	DefaultPlayersPerTeam = 10
	DefaultRounds         = 2
	DefaultVariantRate    = 0.15
	DefaultDuplicateRate  = 0.02
)

// Normalize fills zero fields with defaults and clamps the rest.
func (c *Config) Normalize() {
	if c.LeagueID == "" {
		c.LeagueID = "sample"
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Teams < 2 {
		c.Teams = DefaultTeams
	}
	if c.Pools < 1 {
		c.Pools = DefaultPools
	}
	// every pool needs at least two teams to schedule a game
	if c.Pools > c.Teams/2 {
		c.Pools = c.Teams / 2
	}
	if c.PlayersPerTeam < 5 {
		c.PlayersPerTeam = DefaultPlayersPerTeam
	}
	if c.PlayersPerTeam > len(surnames) {
		c.PlayersPerTeam = len(surnames)
	}
	if c.Rounds < 1 {
		c.Rounds = DefaultRounds
	}
	if c.Teams > len(cities) {
		c.Teams = len(cities)
	}
	c.VariantRate = clamp01(c.VariantRate)
	c.DuplicateRate = clamp01(c.DuplicateRate)
	if c.Start.IsZero() {
		c.Start = time.Date(2025, 1, 4, 19, 30, 0, 0, time.UTC)
	}
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

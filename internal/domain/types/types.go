// Package types contains the JSON read models shared by the service and the API.
package types

import (
	"time"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/identity"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/projection"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/ranking"
)

// Entity kinds accepted by rank queries.
const (
	KindPlayer = "player"
	KindTeam   = "team"
)

// Refresh acknowledgement statuses.
const (
	StatusQueued    = "queued"
	StatusCoalesced = "coalesced"
)

// StatRow is one entity of a player or team table.
type StatRow struct {
	Rank        int                       `json:"rank"`
	Name        string                    `json:"name"`
	Slug        string                    `json:"slug"`
	Team        string                    `json:"team,omitempty"`
	Aliases     []string                  `json:"aliases,omitempty"`
	GamesPlayed int                       `json:"gamesPlayed"`
	Value       float64                   `json:"value"`
	Stats       map[model.StatKey]float64 `json:"stats"`
}

// Table is a ranked player or team table.
type Table struct {
	LeagueID string        `json:"leagueId"`
	Kind     string        `json:"kind"`
	Stat     model.StatKey `json:"stat"`
	Mode     string        `json:"mode"`
	BuiltAt  time.Time     `json:"builtAt"`
	Rows     []StatRow     `json:"rows"`
}

// FromLeader converts a ranked entity, projecting keys in mode.
func FromLeader(l ranking.Leader, keys []model.StatKey, mode projection.Mode) StatRow {
	row := StatRow{
		Rank:        l.Rank,
		Name:        l.Name,
		Slug:        identity.Slug(l.Name),
		Team:        l.Team,
		GamesPlayed: l.Games,
		Value:       l.Value,
	}
	if l.Entity != nil {
		row.Aliases = l.Entity.Aliases
		row.Stats = projection.Row(*l.Entity, keys, mode)
	}
	return row
}

// StandingsRow is one team line of a standings table.
type StandingsRow struct {
	Rank          int            `json:"rank"`
	Team          string         `json:"team"`
	Slug          string         `json:"slug"`
	Pool          string         `json:"pool,omitempty"`
	Games         int            `json:"games"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	WinPct        float64        `json:"winPct"`
	PointsFor     float64        `json:"pointsFor"`
	PointsAgainst float64        `json:"pointsAgainst"`
	PointsDiff    float64        `json:"pointsDiff"`
	AvgPoints     float64        `json:"avgPoints"`
	Movement      model.Movement `json:"movement"`
}

// FromStandings converts a standings entry.
func FromStandings(e model.StandingsEntry) StandingsRow {
	return StandingsRow{
		Rank:          e.Rank,
		Team:          e.TeamName,
		Slug:          identity.Slug(e.TeamName),
		Pool:          e.Pool,
		Games:         e.Games,
		Wins:          e.Wins,
		Losses:        e.Losses,
		WinPct:        e.WinPct(),
		PointsFor:     e.PointsFor,
		PointsAgainst: e.PointsAgainst,
		PointsDiff:    e.PointsDiff,
		AvgPoints:     e.AvgPoints(),
		Movement:      e.Movement,
	}
}

// Standings is a league or pool table.
type Standings struct {
	LeagueID string         `json:"leagueId"`
	Pool     string         `json:"pool,omitempty"`
	Pools    []string       `json:"pools,omitempty"`
	BuiltAt  time.Time      `json:"builtAt"`
	Rows     []StandingsRow `json:"rows"`
}

// RankResult places one entity within its league population.
type RankResult struct {
	LeagueID   string        `json:"leagueId"`
	Kind       string        `json:"kind"`
	Name       string        `json:"name"`
	Team       string        `json:"team,omitempty"`
	Stat       model.StatKey `json:"stat"`
	Mode       string        `json:"mode"`
	Value      float64       `json:"value"`
	Rank       int           `json:"rank"`
	Population int           `json:"population"`
	Percentile float64       `json:"percentile"`
}

// RefreshAck answers a refresh request.
type RefreshAck struct {
	Status      string    `json:"status"`
	LeagueID    string    `json:"leagueId"`
	JobID       string    `json:"jobId,omitempty"`
	RequestedAt time.Time `json:"requestedAt"`
}

// Review lists near-miss identities of one league.
type Review struct {
	LeagueID string              `json:"leagueId"`
	BuiltAt  time.Time           `json:"builtAt"`
	Players  []identity.NearMiss `json:"players"`
	Teams    []identity.NearMiss `json:"teams"`
}

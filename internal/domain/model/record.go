// Package model contains domain models passed between layers.
package model

import "time"

// RawStatRecord is one player's (or team's) line for one game, as read from the data store.
// Missing numeric fields are zero.
type RawStatRecord struct {
	EntityName string
	TeamName   string
	GameID     string
	Counting   map[StatKey]float64
	Rates      map[StatKey]float64
	Minutes    float64
	Timestamp  time.Time
}

// Stat returns the counting value for key, or zero.
func (r RawStatRecord) Stat(key StatKey) float64 {
	return r.Counting[key]
}

// Possessions estimates possessions used in this line: FGA + 0.44*FTA - OREB + TOV.
func (r RawStatRecord) Possessions() float64 {
	return r.Stat(StatFGA) + 0.44*r.Stat(StatFTA) - r.Stat(StatOffRebounds) + r.Stat(StatTurnovers)
}

// CanonicalEntity aggregates every record resolved to one identity.
type CanonicalEntity struct {
	CanonicalName string
	// Team is the canonical team of a player entity; empty for teams.
	Team         string
	Aliases      []string
	GamesPlayed  int
	TotalMinutes float64
	Totals       map[StatKey]float64
	// RateTotals sums per-game rate values over records with minutes > 0.
	RateTotals map[StatKey]float64
	Records    []RawStatRecord
}

// NewEntity starts an empty aggregate named name.
func NewEntity(name string) *CanonicalEntity {
	return &CanonicalEntity{
		CanonicalName: name,
		Totals:        map[StatKey]float64{},
		RateTotals:    map[StatKey]float64{},
	}
}

// Add folds r into the aggregate. alias is the spelling r was resolved from.
func (e *CanonicalEntity) Add(r RawStatRecord, alias string) {
	if e.Totals == nil {
		e.Totals = map[StatKey]float64{}
	}
	if e.RateTotals == nil {
		e.RateTotals = map[StatKey]float64{}
	}
	for k, v := range r.Counting {
		e.Totals[k] += v
	}
	e.TotalMinutes += r.Minutes
	if r.Minutes > 0 {
		e.GamesPlayed++
		for k, v := range r.Rates {
			e.RateTotals[k] += v
		}
	}
	e.Records = append(e.Records, r)
	e.AddAlias(alias)
}

// AddAlias records a source spelling once, keeping first-seen order.
func (e *CanonicalEntity) AddAlias(alias string) {
	if alias == "" {
		return
	}
	for _, a := range e.Aliases {
		if a == alias {
			return
		}
	}
	e.Aliases = append(e.Aliases, alias)
}

// Possessions sums possession estimates over every contributing record.
func (e *CanonicalEntity) Possessions() float64 {
	var p float64
	for _, r := range e.Records {
		p += r.Possessions()
	}
	return p
}

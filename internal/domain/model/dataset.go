package model

import "time"

// ScheduleEntry is one fixture from the league schedule.
type ScheduleEntry struct {
	GameID    string
	HomeTeam  string
	AwayTeam  string
	MatchTime time.Time
	Pool      string
	Status    string
}

// RosterTeam is a registered team of a league.
type RosterTeam struct {
	TeamID string
	Name   string
}

// Dataset is everything a refresh reads for one league.
type Dataset struct {
	LeagueID      string
	PlayerRecords []RawStatRecord
	TeamRecords   []RawStatRecord
	Schedule      []ScheduleEntry
	Roster        []RosterTeam
}

// TeamNames lists roster names in roster order.
func (d Dataset) TeamNames() []string {
	out := make([]string, 0, len(d.Roster))
	for _, t := range d.Roster {
		out = append(out, t.Name)
	}
	return out
}

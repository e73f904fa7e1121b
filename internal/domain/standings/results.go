package standings

import (
	"strings"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
)

// ResultsFromTeamRecords pairs per-game team rows into results. A game id with
// exactly two distinct sides is a completed game; anything else is skipped.
// Sides are taken in row order and score from the points stat.
func ResultsFromTeamRecords(records []model.RawStatRecord) []model.GameResult {
	var order []string
	sides := map[string][]model.GameSide{}
	for _, r := range records {
		id := strings.TrimSpace(r.GameID)
		team := strings.TrimSpace(r.TeamName)
		if team == "" {
			team = strings.TrimSpace(r.EntityName)
		}
		if id == "" || team == "" {
			continue
		}
		if _, ok := sides[id]; !ok {
			order = append(order, id)
		}
		dup := false
		for _, s := range sides[id] {
			if s.Team == team {
				dup = true
				break
			}
		}
		if !dup {
			sides[id] = append(sides[id], model.GameSide{Team: team, Points: r.Stat(model.StatPoints)})
		}
	}

	out := make([]model.GameResult, 0, len(order))
	for _, id := range order {
		s := sides[id]
		if len(s) != 2 {
			continue
		}
		out = append(out, model.GameResult{GameID: id, Home: s[0], Away: s[1]})
	}
	return out
}

// PoolsFromSchedule maps each team named in a pooled fixture to its pool.
// The first fixture naming a team wins.
func PoolsFromSchedule(schedule []model.ScheduleEntry, canonicalize func(string) string) map[string]string {
	if canonicalize == nil {
		canonicalize = strings.TrimSpace
	}
	out := map[string]string{}
	for _, s := range schedule {
		pool := strings.TrimSpace(s.Pool)
		if pool == "" {
			continue
		}
		for _, t := range []string{s.HomeTeam, s.AwayTeam} {
			name := canonicalize(t)
			if name == "" {
				continue
			}
			if _, ok := out[name]; !ok {
				out[name] = pool
			}
		}
	}
	return out
}

// PoolNames lists the distinct pools of a table in row order.
func PoolNames(entries []model.StandingsEntry) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range entries {
		if e.Pool != "" && !seen[e.Pool] {
			seen[e.Pool] = true
			out = append(out, e.Pool)
		}
	}
	return out
}

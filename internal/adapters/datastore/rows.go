package datastore

import (
	"strconv"
	"strings"
	"time"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
)

// row is one upstream record with lower-cased column names and string values.
type row map[string]string

func (r row) first(cols ...string) string {
	for _, c := range cols {
		if v := strings.TrimSpace(r[c]); v != "" {
			return v
		}
	}
	return ""
}

func (r row) time(cols ...string) time.Time {
	v := r.first(cols...)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

var (
	nameCols     = []string{"full_name", "player_name", "name"}
	teamCols     = []string{"team", "team_name", "teamname"}
	gameCols     = []string{"game_id", "game_key", "numeric_id"}
	timeCols     = []string{"created_at", "matchtime", "timestamp"}
	minutesCols  = []string{"sminutes", "tot_sminutes", "minutes"}
	teamNameCols = []string{"name", "team_name", "team"}
)

// statRecord decodes a player or team row. Unknown columns are ignored and
// unparsable numbers read as zero.
func statRecord(r row, team bool) model.RawStatRecord {
	rec := model.RawStatRecord{
		GameID:    r.first(gameCols...),
		Timestamp: r.time(timeCols...),
		Minutes:   parseMinutes(r.first(minutesCols...)),
		Counting:  map[model.StatKey]float64{},
		Rates:     map[model.StatKey]float64{},
	}
	if team {
		rec.EntityName = r.first(teamNameCols...)
		rec.TeamName = rec.EntityName
	} else {
		rec.EntityName = r.first(nameCols...)
		if rec.EntityName == "" {
			rec.EntityName = strings.TrimSpace(r.first("firstname") + " " + r.first("familyname"))
		}
		rec.TeamName = r.first(teamCols...)
	}

	for col, v := range r {
		key, ok := model.LookupStatKey(col)
		if !ok || key == model.StatMinutes || key == model.StatGamesPlayed {
			continue
		}
		switch key.Kind() {
		case model.KindCounting:
			rec.Counting[key] = parseNumber(v)
		case model.KindRate:
			rec.Rates[key] = parseNumber(v)
		}
	}
	return rec
}

func scheduleEntry(r row) model.ScheduleEntry {
	return model.ScheduleEntry{
		GameID:    r.first("game_key", "game_id", "numeric_id"),
		HomeTeam:  r.first("hometeam", "home_team"),
		AwayTeam:  r.first("awayteam", "away_team"),
		MatchTime: r.time("matchtime", "match_time"),
		Pool:      r.first("pool", "competitionname", "group"),
		Status:    r.first("status"),
	}
}

func rosterTeam(r row) model.RosterTeam {
	return model.RosterTeam{
		TeamID: r.first("team_id", "id"),
		Name:   r.first("name", "team_name"),
	}
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseMinutes accepts "MM:SS" clock strings or decimal minutes.
func parseMinutes(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	mm, ss, ok := strings.Cut(s, ":")
	if !ok {
		return parseNumber(s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return 0
	}
	sec, err := strconv.Atoi(strings.TrimSpace(ss))
	if err != nil {
		return float64(m)
	}
	return float64(m) + float64(sec)/60
}

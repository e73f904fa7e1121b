// Package ranking places one value within a population of entity values.
package ranking

import (
	"sort"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/projection"
)

// ComputeRank is one plus the number of population values strictly greater than value.
// Equal values share a rank. It takes no stat key: the key and stat mode are
// applied when building the population with Population, so callers rank with
// ComputeRank(projection.Project(e, key, mode), Population(entities, key, mode)).
func ComputeRank(value float64, population []float64) int {
	rank := 1
	for _, v := range population {
		if v > value {
			rank++
		}
	}
	return rank
}

// Population projects key for every entity that played at least one game.
func Population(entities []model.CanonicalEntity, key model.StatKey, mode projection.Mode) []float64 {
	out := make([]float64, 0, len(entities))
	for _, e := range entities {
		if e.GamesPlayed < 1 {
			continue
		}
		out = append(out, projection.Project(e, key, mode))
	}
	return out
}

// Percentile is the share of the population ranked strictly below rank, in [0, 100].
// A population of one is at the 100th percentile.
func Percentile(rank, size int) float64 {
	if size <= 0 || rank < 1 {
		return 0
	}
	if size == 1 {
		return 100
	}
	below := size - rank
	if below < 0 {
		below = 0
	}
	return float64(below) / float64(size-1) * 100
}

// Leader is one row of a leaderboard.
type Leader struct {
	Rank   int
	Name   string
	Team   string
	Value  float64
	Games  int
	Entity *model.CanonicalEntity
}

// Leaders ranks entities with at least one game by key, highest first, and returns
// up to limit rows. A non-positive limit returns everyone. Ties keep input order.
func Leaders(entities []model.CanonicalEntity, key model.StatKey, mode projection.Mode, limit int) []Leader {
	rows := make([]Leader, 0, len(entities))
	for i := range entities {
		e := &entities[i]
		if e.GamesPlayed < 1 {
			continue
		}
		rows = append(rows, Leader{
			Name:   e.CanonicalName,
			Team:   e.Team,
			Value:  projection.Project(*e, key, mode),
			Games:  e.GamesPlayed,
			Entity: e,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	for i := range rows {
		if i > 0 && rows[i].Value == rows[i-1].Value {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Package projection turns aggregated entity stats into display values.
package projection

import (
	"fmt"
	"math"
	"strings"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
)

// Mode selects how counting stats are scaled.
type Mode string

const (
	Total             Mode = "total"
	PerGame           Mode = "per_game"
	Per40             Mode = "per_40"
	Per100Possessions Mode = "per_100"
)

const (
	minutesPer40      = 40.0
	possessionsPer100 = 100.0
)

// Modes lists every mode in display order.
var Modes = []Mode{Total, PerGame, Per40, Per100Possessions}

// ParseMode accepts mode names as used by the site's toggles.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "total", "totals":
		return Total, nil
	case "per_game", "pergame", "avg", "average", "averages":
		return PerGame, nil
	case "per_40", "per40":
		return Per40, nil
	case "per_100", "per100", "per_100_possessions", "per100possessions":
		return Per100Possessions, nil
	default:
		return "", fmt.Errorf("unknown stat mode %q", s)
	}
}

// ParseStatKey resolves a canonical key or an upstream column name such as
// "spoints" or "tot_sreboundstotal".
func ParseStatKey(s string) (model.StatKey, error) {
	k, ok := model.LookupStatKey(s)
	if !ok {
		return "", fmt.Errorf("unknown stat %q", s)
	}
	return k, nil
}

// Project returns the value of key for e in mode. Zero denominators yield 0.
func Project(e model.CanonicalEntity, key model.StatKey, mode Mode) float64 {
	switch key.Kind() {
	case model.KindRate:
		return perGame(e.RateTotals[key], e.GamesPlayed)
	case model.KindRatio:
		parts := model.RatioParts[key]
		return ratio(e.Totals[parts[0]], e.Totals[parts[1]])
	}

	switch key {
	case model.StatGamesPlayed:
		return float64(e.GamesPlayed)
	case model.StatMinutes:
		if mode == Total {
			return e.TotalMinutes
		}
		return perGame(e.TotalMinutes, e.GamesPlayed)
	}

	sum := e.Totals[key]
	switch mode {
	case PerGame:
		return perGame(sum, e.GamesPlayed)
	case Per40:
		if e.TotalMinutes <= 0 {
			return 0
		}
		return sum / e.TotalMinutes * minutesPer40
	case Per100Possessions:
		poss := e.Possessions()
		if poss <= 0 {
			return 0
		}
		return round1(sum / poss * possessionsPer100)
	default:
		return sum
	}
}

func perGame(sum float64, games int) float64 {
	if games <= 0 {
		return 0
	}
	return sum / float64(games)
}

func ratio(made, attempted float64) float64 {
	if attempted <= 0 {
		return 0
	}
	return made / attempted * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Row projects a set of keys for one entity.
func Row(e model.CanonicalEntity, keys []model.StatKey, mode Mode) map[model.StatKey]float64 {
	out := make(map[model.StatKey]float64, len(keys))
	for _, k := range keys {
		out[k] = Project(e, k, mode)
	}
	return out
}

// TableKeys is the default column set of player and team tables.
func TableKeys() []model.StatKey {
	keys := []model.StatKey{model.StatGamesPlayed, model.StatMinutes}
	keys = append(keys, model.CountingKeys...)
	return append(keys,
		model.StatFGPct, model.StatTwoPct, model.StatThreePct, model.StatFTPct,
		model.StatEFGPct, model.StatTSPct, model.StatOffRating, model.StatDefRating,
		model.StatNetRating, model.StatUsagePct, model.StatPIE,
	)
}

package model

import "strings"

// StatKey names one statistic of a player or team row.
type StatKey string

// Counting stats: summed across games and scaled by the projection mode.
const (
	StatPoints      StatKey = "points"
	StatRebounds    StatKey = "rebounds"
	StatOffRebounds StatKey = "off_rebounds"
	StatDefRebounds StatKey = "def_rebounds"
	StatAssists     StatKey = "assists"
	StatSteals      StatKey = "steals"
	StatBlocks      StatKey = "blocks"
	StatTurnovers   StatKey = "turnovers"
	StatFouls       StatKey = "fouls"
	StatFGM         StatKey = "fgm"
	StatFGA         StatKey = "fga"
	StatTwoPM       StatKey = "two_pm"
	StatTwoPA       StatKey = "two_pa"
	StatThreePM     StatKey = "three_pm"
	StatThreePA     StatKey = "three_pa"
	StatFTM         StatKey = "ftm"
	StatFTA         StatKey = "fta"
	StatPlusMinus   StatKey = "plus_minus"
	StatMinutes     StatKey = "minutes"
	StatGamesPlayed StatKey = "games_played"
)

// Rate stats: per-game values averaged over games, never scaled.
const (
	StatEFGPct             StatKey = "efg_pct"
	StatTSPct              StatKey = "ts_pct"
	StatOffRating          StatKey = "off_rating"
	StatDefRating          StatKey = "def_rating"
	StatNetRating          StatKey = "net_rating"
	StatUsagePct           StatKey = "usage_pct"
	StatPIE                StatKey = "pie"
	StatAstPct             StatKey = "ast_pct"
	StatRebPct             StatKey = "reb_pct"
	StatPtsPct2PT          StatKey = "pts_pct_2pt"
	StatPtsPct3PT          StatKey = "pts_pct_3pt"
	StatPtsPctFT           StatKey = "pts_pct_ft"
	StatPtsPctPaint        StatKey = "pts_pct_paint"
	StatPtsPctFastbreak    StatKey = "pts_pct_fastbreak"
	StatPtsPctSecondChance StatKey = "pts_pct_second_chance"
	StatPtsPctOffTurnovers StatKey = "pts_pct_off_turnovers"
)

// Ratio stats: made over attempted, computed from counting totals.
const (
	StatFGPct    StatKey = "fg_pct"
	StatTwoPct   StatKey = "two_pct"
	StatThreePct StatKey = "three_pct"
	StatFTPct    StatKey = "ft_pct"
)

// StatKind classifies a StatKey.
type StatKind int

const (
	KindCounting StatKind = iota
	KindRate
	KindRatio
)

func (k StatKind) String() string {
	switch k {
	case KindRate:
		return "rate"
	case KindRatio:
		return "ratio"
	default:
		return "counting"
	}
}

var rateKeys = map[StatKey]struct{}{
	StatEFGPct: {}, StatTSPct: {}, StatOffRating: {}, StatDefRating: {}, StatNetRating: {},
	StatUsagePct: {}, StatPIE: {}, StatAstPct: {}, StatRebPct: {},
	StatPtsPct2PT: {}, StatPtsPct3PT: {}, StatPtsPctFT: {}, StatPtsPctPaint: {},
	StatPtsPctFastbreak: {}, StatPtsPctSecondChance: {}, StatPtsPctOffTurnovers: {},
}

// RatioParts maps a ratio key to its made and attempted counting keys.
var RatioParts = map[StatKey][2]StatKey{
	StatFGPct:    {StatFGM, StatFGA},
	StatTwoPct:   {StatTwoPM, StatTwoPA},
	StatThreePct: {StatThreePM, StatThreePA},
	StatFTPct:    {StatFTM, StatFTA},
}

// Kind reports how k aggregates. Anything not known as a rate or ratio is counting.
func (k StatKey) Kind() StatKind {
	if _, ok := rateKeys[k]; ok {
		return KindRate
	}
	if _, ok := RatioParts[k]; ok {
		return KindRatio
	}
	return KindCounting
}

// CountingKeys lists the counting stats shown in tables, in display order.
var CountingKeys = []StatKey{
	StatPoints, StatRebounds, StatOffRebounds, StatDefRebounds, StatAssists,
	StatSteals, StatBlocks, StatTurnovers, StatFouls,
	StatFGM, StatFGA, StatTwoPM, StatTwoPA, StatThreePM, StatThreePA, StatFTM, StatFTA,
	StatPlusMinus,
}

// upstream scorekeeping feed columns; team rows carry the same names behind "tot_".
var columnAliases = map[string]StatKey{
	"spoints":                  StatPoints,
	"sreboundstotal":           StatRebounds,
	"sreboundsoffensive":       StatOffRebounds,
	"sreboundsdefensive":       StatDefRebounds,
	"sassists":                 StatAssists,
	"ssteals":                  StatSteals,
	"sblocks":                  StatBlocks,
	"sturnovers":               StatTurnovers,
	"sfoulspersonal":           StatFouls,
	"sfieldgoalsmade":          StatFGM,
	"sfieldgoalsattempted":     StatFGA,
	"stwopointersmade":         StatTwoPM,
	"stwopointersattempted":    StatTwoPA,
	"stwoptfieldgoalsmade":     StatTwoPM,
	"sthreepointersmade":       StatThreePM,
	"sthreepointersattempted":  StatThreePA,
	"sthreeptfieldgoalsmade":   StatThreePM,
	"sfreethrowsmade":          StatFTM,
	"sfreethrowsattempted":     StatFTA,
	"splusminuspoints":         StatPlusMinus,
	"sminutes":                 StatMinutes,
	"sfieldgoalspercentage":    StatFGPct,
	"sthreepointerspercentage": StatThreePct,
	"sfreethrowspercentage":    StatFTPct,
}

// LookupStatKey resolves a canonical key or an upstream column name.
// ok is false for names that are neither.
func LookupStatKey(name string) (StatKey, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "tot_")
	if k, ok := columnAliases[n]; ok {
		return k, true
	}
	k := StatKey(n)
	if k == StatMinutes || k == StatGamesPlayed || k.Kind() != KindCounting {
		return k, true
	}
	for _, c := range CountingKeys {
		if c == k {
			return k, true
		}
	}
	return "", false
}

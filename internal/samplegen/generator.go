package samplegen

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
)

// League is a generated export in the layout the file data store reads.
type League struct {
	LeagueID    string        `yaml:"league_id"`
	Teams       []TeamRow     `yaml:"teams"`
	Schedule    []GameRow     `yaml:"schedule"`
	PlayerStats []PlayerRow   `yaml:"player_stats"`
	TeamStats   []TeamStatRow `yaml:"team_stats"`
}

// TeamRow is one registered team.
type TeamRow struct {
	TeamID int    `yaml:"team_id"`
	Name   string `yaml:"name"`
}

// GameRow is one fixture.
type GameRow struct {
	GameKey   string `yaml:"game_key"`
	HomeTeam  string `yaml:"hometeam"`
	AwayTeam  string `yaml:"awayteam"`
	MatchTime string `yaml:"matchtime"`
	Pool      string `yaml:"competitionname"`
	Status    string `yaml:"status"`
}

// PlayerRow is one player's box score line for a game.
type PlayerRow struct {
	FullName   string `yaml:"full_name,omitempty"`
	FirstName  string `yaml:"firstname,omitempty"`
	FamilyName string `yaml:"familyname,omitempty"`
	Team       string `yaml:"team"`
	GameKey    string `yaml:"game_key"`
	Minutes    string `yaml:"sminutes"`
	Points     int    `yaml:"spoints"`
	Rebounds   int    `yaml:"sreboundstotal"`
	Assists    int    `yaml:"sassists"`
	Steals     int    `yaml:"ssteals"`
	Blocks     int    `yaml:"sblocks"`
	Turnovers  int    `yaml:"sturnovers"`
	Fouls      int    `yaml:"sfoulspersonal"`
	FGM        int    `yaml:"sfieldgoalsmade"`
	FGA        int    `yaml:"sfieldgoalsattempted"`
	ThreePM    int    `yaml:"sthreepointersmade"`
	ThreePA    int    `yaml:"sthreepointersattempted"`
	FTM        int    `yaml:"sfreethrowsmade"`
	FTA        int    `yaml:"sfreethrowsattempted"`
}

// TeamStatRow is one team's totals for a game.
type TeamStatRow struct {
	Name      string `yaml:"name"`
	GameKey   string `yaml:"game_key"`
	Points    int    `yaml:"tot_spoints"`
	Rebounds  int    `yaml:"tot_sreboundstotal"`
	Assists   int    `yaml:"tot_sassists"`
	Turnovers int    `yaml:"tot_sturnovers"`
	FGM       int    `yaml:"tot_sfieldgoalsmade"`
	FGA       int    `yaml:"tot_sfieldgoalsattempted"`
	ThreePM   int    `yaml:"tot_sthreepointersmade"`
	ThreePA   int    `yaml:"tot_sthreepointersattempted"`
	FTM       int    `yaml:"tot_sfreethrowsmade"`
	FTA       int    `yaml:"tot_sfreethrowsattempted"`
}

type player struct {
	first, last string
}

func (p player) name() string { return p.first + " " + p.last }

type generator struct {
	cfg   *Config
	rng   *rand.Rand
	ids   *rand.ChaCha8
	stats *Stats
}

func newGenerator(cfg *Config, stats *Stats) *generator {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:], cfg.Seed)
	src := rand.NewChaCha8(seed)
	binary.LittleEndian.PutUint64(seed[8:], cfg.Seed^0x5eed)
	return &generator{
		cfg:   cfg,
		rng:   rand.New(src),
		ids:   rand.NewChaCha8(seed),
		stats: stats,
	}
}

// Generate builds a league from cfg. The same seed yields the same league.
func Generate(ctx context.Context, cfg *Config, stats *Stats) (*League, error) {
	cfg.Normalize()
	g := newGenerator(cfg, stats)

	lg := &League{LeagueID: cfg.LeagueID}
	teams := make([]string, cfg.Teams)
	rosters := make(map[string][]player, cfg.Teams)
	for i := range teams {
		teams[i] = cities[i] + " " + mascots[i]
		lg.Teams = append(lg.Teams, TeamRow{TeamID: i + 1, Name: teams[i]})
		rosters[teams[i]] = g.roster()
	}

	games, err := g.schedule(teams)
	if err != nil {
		return nil, err
	}
	lg.Schedule = games

	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled: %w", err)
		}
		home, away := g.boxScore(game.GameKey, game.HomeTeam, rosters[game.HomeTeam]), g.boxScore(game.GameKey, game.AwayTeam, rosters[game.AwayTeam])
		g.breakTie(&home, &away)
		lg.PlayerStats = append(lg.PlayerStats, g.playerRows(home)...)
		lg.PlayerStats = append(lg.PlayerStats, g.playerRows(away)...)
		lg.TeamStats = append(lg.TeamStats, g.teamRow(home), g.teamRow(away))
	}

	stats.Teams = len(teams)
	stats.Players = len(teams) * cfg.PlayersPerTeam
	stats.Games = len(games)
	stats.PlayerRows = len(lg.PlayerStats)
	stats.TeamRows = len(lg.TeamStats)

	logger.Get().Info(ctx, "generated league",
		logger.String("league", cfg.LeagueID),
		logger.Int("teams", stats.Teams),
		logger.Int("games", stats.Games),
		logger.Int("playerRows", stats.PlayerRows),
		logger.Int("variantRows", stats.VariantRows),
		logger.Int("duplicateRows", stats.DuplicateRows))
	return lg, nil
}

// roster picks distinct surnames so no two teammates can be folded together.
func (g *generator) roster() []player {
	order := g.rng.Perm(len(surnames))
	out := make([]player, g.cfg.PlayersPerTeam)
	for i := range out {
		out[i] = player{
			first: firstNames[g.rng.IntN(len(firstNames))],
			last:  surnames[order[i]],
		}
	}
	return out
}

// schedule splits teams round-robin into pools and pairs every team of a
// pool with every other, alternating home court per round.
func (g *generator) schedule(teams []string) ([]GameRow, error) {
	pools := make([][]string, g.cfg.Pools)
	for i, t := range teams {
		pools[i%len(pools)] = append(pools[i%len(pools)], t)
	}

	var games []GameRow
	tip := g.cfg.Start
	for round := 0; round < g.cfg.Rounds; round++ {
		for p, members := range pools {
			pool := fmt.Sprintf("Pool %c", 'A'+p)
			for i := 0; i < len(members); i++ {
				for j := i + 1; j < len(members); j++ {
					home, away := members[i], members[j]
					if round%2 == 1 {
						home, away = away, home
					}
					id, err := uuid.NewRandomFromReader(g.ids)
					if err != nil {
						return nil, fmt.Errorf("game id: %w", err)
					}
					games = append(games, GameRow{
						GameKey:   id.String(),
						HomeTeam:  home,
						AwayTeam:  away,
						MatchTime: tip.Format(time.RFC3339),
						Pool:      pool,
						Status:    "final",
					})
					tip = tip.Add(gameSlotStep)
				}
			}
		}
		tip = tip.Add(gameSpacing)
	}
	return games, nil
}

type boxScore struct {
	game, team string
	lines      []PlayerRow
	players    []player
}

func (b boxScore) points() int {
	n := 0
	for _, l := range b.lines {
		n += l.Points
	}
	return n
}

// boxScore plays a game for one side; 200 player minutes are shared out
// in whole seconds.
func (g *generator) boxScore(game, team string, roster []player) boxScore {
	b := boxScore{game: game, team: team, players: roster}
	total := quarters * quarterMins * secondsInMin * 5
	weights := make([]int, len(roster))
	sum := 0
	for i := range weights {
		weights[i] = 1 + g.rng.IntN(10)
		if i < 5 {
			weights[i] += 10
		}
		sum += weights[i]
	}
	for i := range roster {
		secs := total * weights[i] / sum
		share := float64(weights[i]) / float64(sum)
		l := PlayerRow{
			FullName: roster[i].name(),
			Team:     team,
			GameKey:  game,
			Minutes:  fmt.Sprintf("%02d:%02d", secs/secondsInMin, secs%secondsInMin),
		}
		twoPA := g.rng.IntN(int(40*share) + 2)
		l.ThreePA = g.rng.IntN(int(20*share) + 2)
		l.FTA = g.rng.IntN(int(16*share) + 1)
		twoPM := g.makes(twoPA, 0.5)
		l.ThreePM = g.makes(l.ThreePA, 0.35)
		l.FTM = g.makes(l.FTA, 0.75)
		l.FGA = twoPA + l.ThreePA
		l.FGM = twoPM + l.ThreePM
		l.Points = 2*twoPM + 3*l.ThreePM + l.FTM
		l.Rebounds = g.rng.IntN(int(30*share) + 2)
		l.Assists = g.rng.IntN(int(18*share) + 1)
		l.Steals = g.rng.IntN(3)
		l.Blocks = g.rng.IntN(2)
		l.Turnovers = g.rng.IntN(4)
		l.Fouls = g.rng.IntN(6)
		b.lines = append(b.lines, l)
	}
	return b
}

func (g *generator) makes(attempts int, p float64) int {
	n := 0
	for range attempts {
		if g.rng.Float64() < p {
			n++
		}
	}
	return n
}

// breakTie hands the home side one extra free throw; basketball games do not
// end level.
func (g *generator) breakTie(home, away *boxScore) {
	if home.points() != away.points() {
		return
	}
	l := &home.lines[0]
	l.FTA++
	l.FTM++
	l.Points++
}

// playerRows renders a box score, spelling some names and team names the
// way inconsistent feeds do and repeating a few rows verbatim.
func (g *generator) playerRows(b boxScore) []PlayerRow {
	out := make([]PlayerRow, 0, len(b.lines))
	for i, l := range b.lines {
		if g.rng.Float64() < g.cfg.VariantRate {
			l = g.variant(l, b.players[i])
			g.stats.VariantRows++
		}
		out = append(out, l)
		if g.rng.Float64() < g.cfg.DuplicateRate {
			out = append(out, l)
			g.stats.DuplicateRows++
		}
	}
	return out
}

func (g *generator) variant(l PlayerRow, p player) PlayerRow {
	switch g.rng.IntN(5) {
	case 0:
		l.FullName = p.first[:1] + " " + p.last
	case 1:
		l.FullName = strings.ToUpper(p.name())
	case 2:
		l.FullName = "  " + p.first + "  " + p.last + " "
	case 3:
		l.FullName = ""
		l.FirstName, l.FamilyName = p.first, p.last
	default:
		l.Team = l.Team + " " + teamSuffixes[g.rng.IntN(len(teamSuffixes))]
	}
	return l
}

func (g *generator) teamRow(b boxScore) TeamStatRow {
	name := b.team
	if g.rng.Float64() < g.cfg.VariantRate {
		name = name + " " + teamSuffixes[g.rng.IntN(len(teamSuffixes))]
		g.stats.VariantRows++
	}
	r := TeamStatRow{Name: name, GameKey: b.game}
	for _, l := range b.lines {
		r.Points += l.Points
		r.Rebounds += l.Rebounds
		r.Assists += l.Assists
		r.Turnovers += l.Turnovers
		r.FGM += l.FGM
		r.FGA += l.FGA
		r.ThreePM += l.ThreePM
		r.ThreePA += l.ThreePA
		r.FTM += l.FTM
		r.FTA += l.FTA
	}
	return r
}

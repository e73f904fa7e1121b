package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/datastore"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const bblYAML = `
league_id: bbl
teams:
  - {team_id: 1, name: Leicester Riders}
  - {team_id: 2, name: London Lions}
  - {team_id: 3, name: Bristol Flyers}
schedule:
  - {game_key: g1, hometeam: Leicester Riders, awayteam: London Lions, competitionname: A}
  - {game_key: g2, hometeam: London Lions, awayteam: Bristol Flyers, competitionname: A}
  - {game_key: g3, hometeam: Bristol Flyers, awayteam: Leicester Riders, competitionname: A}
team_stats:
  - {name: Leicester Riders, game_key: g1, tot_spoints: 80}
  - {name: London Lions, game_key: g1, tot_spoints: 75}
  - {name: London Lions, game_key: g2, tot_spoints: 90}
  - {name: Bristol Flyers, game_key: g2, tot_spoints: 70}
  - {name: Bristol Flyers, game_key: g3, tot_spoints: 60}
  - {name: Leicester Riders Senior Men I, game_key: g3, tot_spoints: 65}
player_stats:
  - {full_name: Rhys Farrell, team: Leicester Riders, game_key: g1, sminutes: "30:00", spoints: 20}
  - {full_name: R Farrell, team: Leicester Riders Senior Men I, game_key: g3, sminutes: "28:00", spoints: 12}
  - {full_name: John Smith, team: London Lions, game_key: g1, sminutes: "30:00", spoints: 10}
  - {full_name: John Smith, team: London Lions, game_key: g2, sminutes: "25:00", spoints: 14}
  - {full_name: Ben Jones, team: Bristol Flyers, game_key: g2, sminutes: "32:00", spoints: 18}
  - {full_name: Ben Jones, team: Bristol Flyers, game_key: g3, sminutes: "30:00", spoints: 22}
`

// leagueDir writes the bbl export into a fresh directory.
func leagueDir(t *testing.T) string {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bbl.yaml"), []byte(bblYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

// gatedStore blocks every dataset read until released, announcing each
// league as it enters.
type gatedStore struct {
	*datastore.FileStore
	entered chan string
	release chan struct{}
}

func newGatedStore(dir string) *gatedStore {
	return &gatedStore{
		FileStore: datastore.NewFileStore(dir),
		entered:   make(chan string, 16),
		release:   make(chan struct{}),
	}
}

func (g *gatedStore) Dataset(ctx context.Context, leagueID string) (model.Dataset, error) {
	g.entered <- leagueID
	select {
	case <-g.release:
	case <-ctx.Done():
		return model.Dataset{}, ctx.Err()
	}
	return g.FileStore.Dataset(ctx, leagueID)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

package datastore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const leagueYAML = `
league_id: bbl-2025
teams:
  - team_id: 1
    name: Leicester Riders
  - team_id: 2
    name: London Lions
schedule:
  - game_key: g1
    hometeam: Leicester Riders
    awayteam: London Lions
    matchtime: "2025-01-10 19:30:00"
    competitionname: Pool A
    status: final
player_stats:
  - firstname: Rhys
    familyname: Farrell
    team: Leicester Riders
    game_key: g1
    sminutes: "31:30"
    spoints: 18
    sreboundstotal: 6
    sfieldgoalsmade: 7
    sfieldgoalsattempted: 12
    sfieldgoalspercentage: 58.3
    efg_pct: 0.61
    unknown_column: whatever
  - full_name: John Smith
    team_name: London Lions
    game_key: g1
    sminutes: 24.5
    spoints: 10
team_stats:
  - name: Leicester Riders
    game_key: g1
    tot_spoints: 80
    tot_sminutes: "200:00"
  - name: London Lions
    game_key: g1
    tot_spoints: 75
`

func writeLeague(dir, name, body string) {
	So(os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600), ShouldBeNil)
}

func TestParseMinutes(t *testing.T) {
	Convey("Minutes parse from clock strings and decimals", t, func() {
		So(parseMinutes("31:30"), ShouldEqual, 31.5)
		So(parseMinutes("24.5"), ShouldEqual, 24.5)
		So(parseMinutes(" 12 "), ShouldEqual, 12)
		So(parseMinutes(""), ShouldEqual, 0)
		So(parseMinutes("DNP"), ShouldEqual, 0)
		So(parseMinutes("7:xx"), ShouldEqual, 7)
	})
}

func TestStatRecord(t *testing.T) {
	Convey("Given an upstream player row", t, func() {
		r := row{
			"firstname": "Rhys", "familyname": "Farrell", "team": "Leicester Riders",
			"numeric_id": "991", "sminutes": "20:00", "spoints": "14", "sassists": "",
			"sthreepointerspercentage": "40", "ts_pct": "55%",
		}
		rec := statRecord(r, false)

		Convey("Identity columns are picked up", func() {
			So(rec.EntityName, ShouldEqual, "Rhys Farrell")
			So(rec.TeamName, ShouldEqual, "Leicester Riders")
			So(rec.GameID, ShouldEqual, "991")
			So(rec.Minutes, ShouldEqual, 20)
		})

		Convey("Counting and rate stats are split, ratio columns dropped", func() {
			So(rec.Stat(model.StatPoints), ShouldEqual, 14)
			So(rec.Stat(model.StatAssists), ShouldEqual, 0)
			So(rec.Rates[model.StatTSPct], ShouldEqual, 55)
			_, hasRatio := rec.Counting[model.StatThreePct]
			So(hasRatio, ShouldBeFalse)
		})
	})

	Convey("A team row names the entity after the team", t, func() {
		rec := statRecord(row{"name": "London Lions", "game_key": "g1", "tot_spoints": "75"}, true)
		So(rec.EntityName, ShouldEqual, "London Lions")
		So(rec.TeamName, ShouldEqual, "London Lions")
		So(rec.Stat(model.StatPoints), ShouldEqual, 75)
	})
}

func TestFileStore(t *testing.T) {
	Convey("Given a data directory with one league export", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		writeLeague(dir, "bbl-2025.yaml", leagueYAML)
		writeLeague(dir, "notes.txt", "ignored")
		s := NewFileStore(dir)

		Convey("The dataset decodes every section", func() {
			ds, err := Dataset(ctx, s, "bbl-2025")
			So(err, ShouldBeNil)
			So(ds.LeagueID, ShouldEqual, "bbl-2025")
			So(ds.TeamNames(), ShouldResemble, []string{"Leicester Riders", "London Lions"})
			So(ds.Roster[0].TeamID, ShouldEqual, "1")

			So(ds.Schedule, ShouldHaveLength, 1)
			So(ds.Schedule[0].Pool, ShouldEqual, "Pool A")
			So(ds.Schedule[0].MatchTime.Hour(), ShouldEqual, 19)

			So(ds.PlayerRecords, ShouldHaveLength, 2)
			So(ds.PlayerRecords[0].EntityName, ShouldEqual, "Rhys Farrell")
			So(ds.PlayerRecords[0].Minutes, ShouldEqual, 31.5)
			So(ds.PlayerRecords[0].Stat(model.StatFGA), ShouldEqual, 12)
			So(ds.PlayerRecords[0].Rates[model.StatEFGPct], ShouldEqual, 0.61)
			So(ds.PlayerRecords[1].Minutes, ShouldEqual, 24.5)

			So(ds.TeamRecords, ShouldHaveLength, 2)
			So(ds.TeamRecords[0].Minutes, ShouldEqual, 200)
			So(ds.TeamRecords[1].Stat(model.StatPoints), ShouldEqual, 75)
		})

		Convey("Per-section reads agree with the dataset", func() {
			players, err := s.PlayerGameStats(ctx, "bbl-2025")
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 2)
			teams, err := s.TeamGameStats(ctx, "bbl-2025")
			So(err, ShouldBeNil)
			So(teams, ShouldHaveLength, 2)
			sched, err := s.Schedule(ctx, "bbl-2025")
			So(err, ShouldBeNil)
			So(sched[0].HomeTeam, ShouldEqual, "Leicester Riders")
			roster, err := s.Roster(ctx, "bbl-2025")
			So(err, ShouldBeNil)
			So(roster, ShouldHaveLength, 2)
		})

		Convey("JSON exports are read too", func() {
			writeLeague(dir, "cup.json", `{"league_id":"cup","teams":[{"name":"Solo"}],"team_stats":[{"name":"Solo","game_key":"x","tot_spoints":50}]}`)
			ds, err := s.Dataset(ctx, "cup")
			So(err, ShouldBeNil)
			So(ds.TeamRecords[0].Stat(model.StatPoints), ShouldEqual, 50)
		})

		Convey("Leagues lists exports only", func() {
			ids, err := s.Leagues()
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"bbl-2025"})
		})

		Convey("Missing and unsafe league ids are rejected", func() {
			_, err := s.Dataset(ctx, "missing")
			So(errors.Is(err, ErrLeagueNotFound), ShouldBeTrue)
			_, err = s.Dataset(ctx, "../etc/passwd")
			So(errors.Is(err, ErrInvalidLeague), ShouldBeTrue)
			_, err = s.Roster(ctx, "")
			So(errors.Is(err, ErrInvalidLeague), ShouldBeTrue)
		})

		Convey("Malformed files report a decode error", func() {
			writeLeague(dir, "broken.yaml", "teams: [oops")
			_, err := s.Dataset(ctx, "broken")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrLeagueNotFound), ShouldBeFalse)
		})
	})
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SWISH_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SWISH_TEST_POSTGRES_DSN not set")
	}
	Convey("Given a live upstream database", t, func() {
		ctx := context.Background()
		s, err := OpenPostgres(ctx, dsn)
		So(err, ShouldBeNil)
		defer s.Close()

		Convey("An unknown league is not found", func() {
			_, err := s.Dataset(ctx, "no-such-league-id")
			So(errors.Is(err, ErrLeagueNotFound), ShouldBeTrue)
		})
	})
}

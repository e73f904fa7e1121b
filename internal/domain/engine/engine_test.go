package engine_test

import (
	"testing"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/engine"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/merge"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func teamRow(game, team string, pts float64) model.RawStatRecord {
	return model.RawStatRecord{GameID: game, TeamName: team, Minutes: 200, Counting: map[model.StatKey]float64{model.StatPoints: pts}}
}

func playerRow(game, name, team string, minutes, pts float64) model.RawStatRecord {
	return model.RawStatRecord{GameID: game, EntityName: name, TeamName: team, Minutes: minutes, Counting: map[model.StatKey]float64{model.StatPoints: pts}}
}

func dataset() model.Dataset {
	return model.Dataset{
		LeagueID: "bbl-2025",
		Roster: []model.RosterTeam{
			{TeamID: "1", Name: "Leicester Riders"},
			{TeamID: "2", Name: "London Lions"},
			{TeamID: "3", Name: "Milton Keynes Breakers"},
			{TeamID: "4", Name: "Bristol Flyers"},
		},
		Schedule: []model.ScheduleEntry{
			{GameID: "g1", HomeTeam: "Leicester Riders", AwayTeam: "London Lions", Pool: "A"},
			{GameID: "g2", HomeTeam: "MK Breakers", AwayTeam: "Bristol Flyers", Pool: "B"},
		},
		TeamRecords: []model.RawStatRecord{
			teamRow("g1", "Leicester Riders Senior Men I", 80),
			teamRow("g1", "London Lions", 75),
			teamRow("g2", "MK Breakers", 70),
			teamRow("g2", "Bristol Flyers", 70),
			teamRow("g2", "Bristol Flyers", 70),
		},
		PlayerRecords: []model.RawStatRecord{
			playerRow("g1", "Rhys Farrell", "Leicester Riders", 30, 20),
			playerRow("g1", "John Smith", "London Lions", 30, 10),
			playerRow("g3", "R Farrell", "Leicester Riders Senior Men I", 28, 12),
			playerRow("g2", "J Smith", "Bristol Flyers", 25, 8),
		},
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a league dataset", t, func() {
		ds := dataset()

		Convey("When built with default options", func() {
			s := engine.Build(ds, engine.DefaultOptions(), nil)

			Convey("Then team spellings resolve to one entity each", func() {
				So(s.Teams, ShouldHaveLength, 4)
				So(s.Teams[0].CanonicalName, ShouldEqual, "Leicester Riders")
				So(s.Teams[0].Aliases, ShouldResemble, []string{"Leicester Riders Senior Men I"})
				So(s.Teams[2].CanonicalName, ShouldEqual, "Milton Keynes Breakers")
				So(s.Stats.DuplicateRows, ShouldEqual, 0)
				So(s.Stats.TeamRows, ShouldEqual, 5)
				So(s.Stats.Results, ShouldEqual, 2)
			})

			Convey("Then players merge within their team only", func() {
				So(s.Players, ShouldHaveLength, 3)
				So(s.Players[0].CanonicalName, ShouldEqual, "Rhys Farrell")
				So(s.Players[0].Team, ShouldEqual, "Leicester Riders")
				So(s.Players[0].Totals[model.StatPoints], ShouldEqual, 32)
				So(s.Players[0].GamesPlayed, ShouldEqual, 2)
				So(s.Players[2].CanonicalName, ShouldEqual, "J Smith")
				So(s.Players[2].Team, ShouldEqual, "Bristol Flyers")
				So(s.Stats.PlayerAliasFolds, ShouldEqual, 1)
			})

			Convey("Then the league table is ranked", func() {
				names := make([]string, 0, len(s.Standings))
				for _, e := range s.Standings {
					names = append(names, e.TeamName)
				}
				So(names, ShouldResemble, []string{"Leicester Riders", "Milton Keynes Breakers", "Bristol Flyers", "London Lions"})
				So(s.Ranks[engine.LeagueScope]["London Lions"], ShouldEqual, 4)
			})

			Convey("Then each pool has its own table and rank scope", func() {
				So(s.Pools, ShouldResemble, []string{"A", "B"})
				So(s.PoolStandings["A"], ShouldHaveLength, 2)
				So(s.PoolStandings["A"][0].TeamName, ShouldEqual, "Leicester Riders")
				So(s.Ranks[engine.PoolScope("B")], ShouldResemble, map[string]int{"Milton Keynes Breakers": 1, "Bristol Flyers": 2})
			})
		})

		Convey("When built after a previous snapshot", func() {
			prev := map[string]map[string]int{
				engine.LeagueScope: {"London Lions": 1, "Leicester Riders": 2},
			}
			s := engine.Build(ds, engine.DefaultOptions(), prev)

			Convey("Then movement compares against the previous ranks", func() {
				So(s.Standings[0].Movement, ShouldEqual, model.MovementUp)
				So(s.Standings[3].Movement, ShouldEqual, model.MovementDown)
				So(s.Standings[1].Movement, ShouldEqual, model.MovementSame)
			})
		})

		Convey("When players are not partitioned by team", func() {
			opts := engine.DefaultOptions()
			opts.PartitionPlayersByTeam = false
			s := engine.Build(ds, opts, nil)

			Convey("Then same-name players of different teams fold together", func() {
				So(s.Players, ShouldHaveLength, 2)
			})
		})

		Convey("When merged greedily", func() {
			opts := engine.DefaultOptions()
			opts.Strategy = merge.StrategyGreedy
			s := engine.Build(ds, opts, nil)

			Convey("Then the first spelling names the entity", func() {
				So(s.Players[0].CanonicalName, ShouldEqual, "Rhys Farrell")
				So(s.Teams[0].CanonicalName, ShouldEqual, "Leicester Riders")
			})
		})
	})

	Convey("Given an empty dataset", t, func() {
		s := engine.Build(model.Dataset{LeagueID: "empty"}, engine.Options{}, nil)

		Convey("Then the snapshot is empty but usable", func() {
			So(s.Players, ShouldBeEmpty)
			So(s.Standings, ShouldBeEmpty)
			So(s.Ranks[engine.LeagueScope], ShouldBeEmpty)
			So(s.Review.Players, ShouldBeNil)
		})
	})
}

func TestBuildReview(t *testing.T) {
	Convey("Given near-identical players on one team", t, func() {
		ds := model.Dataset{
			LeagueID: "l",
			PlayerRecords: []model.RawStatRecord{
				playerRow("g1", "John Smith", "Lions", 30, 10),
				playerRow("g2", "Jane Smith", "Lions", 30, 10),
			},
		}
		s := engine.Build(ds, engine.DefaultOptions(), nil)

		Convey("Then the pair is reported for review", func() {
			So(s.Players, ShouldHaveLength, 2)
			So(s.Review.Players, ShouldHaveLength, 1)
			So(s.Review.Players[0].Distance, ShouldEqual, 3)
		})
	})
}

func TestBuildDuplicateRows(t *testing.T) {
	Convey("Given a player row repeated verbatim in one game", t, func() {
		ds := model.Dataset{
			LeagueID: "l",
			PlayerRecords: []model.RawStatRecord{
				playerRow("g1", "Rhys Farrell", "Leicester Riders", 30, 20),
				playerRow("g1", "Rhys Farrell", "Leicester Riders", 30, 20),
			},
		}

		Convey("When built with default options", func() {
			s := engine.Build(ds, engine.DefaultOptions(), nil)

			Convey("Then both rows count towards the totals", func() {
				So(s.Players, ShouldHaveLength, 1)
				So(s.Players[0].Totals[model.StatPoints], ShouldEqual, 40)
				So(s.Players[0].Records, ShouldHaveLength, 2)
				So(s.Stats.PlayerRows, ShouldEqual, 2)
				So(s.Stats.DuplicateRows, ShouldEqual, 0)
			})
		})

		Convey("When duplicate rows are dropped", func() {
			opts := engine.DefaultOptions()
			opts.DropDuplicateRows = true
			s := engine.Build(ds, opts, nil)

			Convey("Then only the first row counts", func() {
				So(s.Players, ShouldHaveLength, 1)
				So(s.Players[0].Totals[model.StatPoints], ShouldEqual, 20)
				So(s.Players[0].Records, ShouldHaveLength, 1)
				So(s.Stats.PlayerRows, ShouldEqual, 1)
				So(s.Stats.DuplicateRows, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a team row repeated in one game", t, func() {
		opts := engine.DefaultOptions()
		opts.DropDuplicateRows = true
		s := engine.Build(dataset(), opts, nil)

		Convey("Then dropping it leaves the results unchanged", func() {
			So(s.Stats.DuplicateRows, ShouldEqual, 1)
			So(s.Stats.TeamRows, ShouldEqual, 4)
			So(s.Stats.Results, ShouldEqual, 2)
		})
	})
}

package projection_test

import (
	"testing"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/projection"
	. "github.com/smartystreets/goconvey/convey"
)

func entity() model.CanonicalEntity {
	e := model.NewEntity("Leicester Riders")
	e.Add(model.RawStatRecord{
		GameID:  "g1",
		Minutes: 40,
		Counting: map[model.StatKey]float64{
			model.StatPoints: 20, model.StatFGM: 6, model.StatFGA: 30,
			model.StatOffRebounds: 5, model.StatTurnovers: 5,
		},
		Rates: map[model.StatKey]float64{model.StatTSPct: 60},
	}, "Leicester Riders")
	e.Add(model.RawStatRecord{
		GameID:  "g2",
		Minutes: 20,
		Counting: map[model.StatKey]float64{
			model.StatPoints: 13, model.StatFGM: 3, model.StatFGA: 16,
			model.StatTurnovers: 4,
		},
		Rates: map[model.StatKey]float64{model.StatTSPct: 50},
	}, "Leicester Riders")
	return *e
}

func TestProjectCounting(t *testing.T) {
	Convey("Given an entity with two games", t, func() {
		e := entity()

		Convey("Then total is the sum", func() {
			So(projection.Project(e, model.StatPoints, projection.Total), ShouldEqual, 33)
		})

		Convey("Then per game divides by games played", func() {
			So(projection.Project(e, model.StatPoints, projection.PerGame), ShouldEqual, 16.5)
		})

		Convey("Then per 40 scales by minutes", func() {
			So(projection.Project(e, model.StatPoints, projection.Per40), ShouldAlmostEqual, 22, 1e-9)
		})

		Convey("Then per 100 possessions uses FGA + 0.44 FTA - OREB + TOV", func() {
			// possessions: (30 - 5 + 5) + (16 + 4) = 50
			So(projection.Project(e, model.StatPoints, projection.Per100Possessions), ShouldEqual, 66)
			So(projection.Project(e, model.StatTurnovers, projection.Per100Possessions), ShouldEqual, 18)
		})

		Convey("Then minutes total sums and every other mode averages", func() {
			So(projection.Project(e, model.StatMinutes, projection.Total), ShouldEqual, 60)
			So(projection.Project(e, model.StatMinutes, projection.PerGame), ShouldEqual, 30)
			So(projection.Project(e, model.StatMinutes, projection.Per40), ShouldEqual, 30)
			So(projection.Project(e, model.StatMinutes, projection.Per100Possessions), ShouldEqual, 30)
		})

		Convey("Then games played is reported as is", func() {
			So(projection.Project(e, model.StatGamesPlayed, projection.PerGame), ShouldEqual, 2)
		})
	})

	Convey("Given an entity that never played", t, func() {
		e := *model.NewEntity("Bench")
		e.Add(model.RawStatRecord{Counting: map[model.StatKey]float64{model.StatPoints: 0}}, "Bench")

		Convey("Then every scaled mode is zero", func() {
			for _, m := range projection.Modes {
				So(projection.Project(e, model.StatPoints, m), ShouldEqual, 0)
				So(projection.Project(e, model.StatTSPct, m), ShouldEqual, 0)
			}
		})
	})

	Convey("Given a fractional per 100 value", t, func() {
		e := *model.NewEntity("Lions")
		e.Add(model.RawStatRecord{
			Minutes:  40,
			Counting: map[model.StatKey]float64{model.StatPoints: 10, model.StatFGA: 30},
		}, "Lions")

		Convey("Then it is rounded to one decimal", func() {
			So(projection.Project(e, model.StatPoints, projection.Per100Possessions), ShouldEqual, 33.3)
		})
	})
}

func TestProjectRatesAndRatios(t *testing.T) {
	Convey("Given an entity with rate and shooting stats", t, func() {
		e := entity()

		Convey("Then a rate is the mean over games in every mode", func() {
			for _, m := range projection.Modes {
				So(projection.Project(e, model.StatTSPct, m), ShouldEqual, 55)
			}
		})

		Convey("Then a ratio is made over attempted in every mode", func() {
			for _, m := range projection.Modes {
				So(projection.Project(e, model.StatFGPct, m), ShouldAlmostEqual, 9.0/46*100, 1e-9)
				So(projection.Project(e, model.StatFTPct, m), ShouldEqual, 0)
			}
		})

		Convey("Then Row projects every requested key", func() {
			row := projection.Row(e, []model.StatKey{model.StatPoints, model.StatTSPct}, projection.PerGame)
			So(row[model.StatPoints], ShouldEqual, 16.5)
			So(row[model.StatTSPct], ShouldEqual, 55)
			So(projection.TableKeys(), ShouldContain, model.StatFGPct)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given mode names", t, func() {
		for in, want := range map[string]projection.Mode{
			"":         projection.Total,
			"Totals":   projection.Total,
			"per_game": projection.PerGame,
			"averages": projection.PerGame,
			"per40":    projection.Per40,
			"per_100":  projection.Per100Possessions,
		} {
			got, err := projection.ParseMode(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}
		_, err := projection.ParseMode("per_36")
		So(err, ShouldNotBeNil)
	})

	Convey("Given stat names", t, func() {
		k, err := projection.ParseStatKey("tot_spoints")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, model.StatPoints)

		_, err = projection.ParseStatKey("hustle")
		So(err, ShouldNotBeNil)
	})
}

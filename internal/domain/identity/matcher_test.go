package identity_test

import (
	"testing"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/identity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNamesMatch(t *testing.T) {
	Convey("Given pairs of normalized names", t, func() {
		m := identity.NewMatcher()
		cases := []struct {
			a, b string
			want bool
			rule string
		}{
			{"R Faure", "Reiss Faure-Daley", true, identity.RuleTokenSubset},
			{"R Farrell", "Rhys Farrell", true, identity.RuleTokenSubset},
			{"Chuck Duru", "Chukwuma Duru", true, identity.RuleSurnamePrefix},
			{"Murray Henry", "Murray Hendry", true, identity.RuleEditDistance},
			{"John Smith", "Jane Smith", false, identity.RuleNone},
			{"José Silva", "Jose Silva", true, identity.RuleExact},
			{"Worcester Wolves II", "Worcester Wolves II", true, identity.RuleExact},
			{"Worcester Wolves II", "Worcester Wolves", false, identity.RuleSquadDesignator},
			{"Worcester Wolves II", "Worcester Wolves III", false, identity.RuleSquadDesignator},
			{"Worcester Wolves V", "Worcester Wolves", false, identity.RuleSquadDesignator},
			{"Worcester Wolves X", "Worcester Wolves", false, identity.RuleSquadDesignator},
			{"Worcester Wolves IV", "Worcester Wolves V", false, identity.RuleSquadDesignator},
			{"Lions 2", "Lions", false, identity.RuleSquadDesignator},
			{"Lions A", "Lions B", false, identity.RuleSquadDesignator},
			{"", "", true, identity.RuleEmpty},
			{"", "John Smith", false, identity.RuleEmpty},
		}

		Convey("Then each pair resolves through the expected rule", func() {
			for _, c := range cases {
				ok, rule := m.Explain(c.a, c.b)
				So(ok, ShouldEqual, c.want)
				So(rule, ShouldEqual, c.rule)
				So(identity.NamesMatch(c.a, c.b), ShouldEqual, c.want)
			}
		})

		Convey("Then matching is symmetric", func() {
			for _, c := range cases {
				So(m.Match(c.b, c.a), ShouldEqual, m.Match(c.a, c.b))
			}
		})
	})
}

func TestRuleChain(t *testing.T) {
	Convey("Given a matcher with a custom chain", t, func() {
		never := identity.Rule{
			Name:  "never",
			Check: func(a, b identity.Candidate) identity.Verdict { return identity.Different },
		}
		m := identity.NewMatcher(identity.WithRules(never))

		Convey("Then the first deciding rule wins", func() {
			ok, rule := m.Explain("Rhys Farrell", "Rhys Farrell")
			So(ok, ShouldBeFalse)
			So(rule, ShouldEqual, "never")
			So(m.Rules(), ShouldHaveLength, 1)
		})
	})

	Convey("Given the default rules", t, func() {
		rules := identity.DefaultRules()
		names := make([]string, len(rules))
		for i, r := range rules {
			names[i] = r.Name
		}

		Convey("Then they run in a fixed order", func() {
			So(names, ShouldResemble, []string{
				identity.RuleSquadDesignator,
				identity.RuleExact,
				identity.RuleTokenSubset,
				identity.RuleSurnamePrefix,
				identity.RuleEditDistance,
			})
		})

		Convey("Then each rule can be checked on its own", func() {
			a := identity.NewCandidate("Chuck Duru")
			b := identity.NewCandidate("Chukwuma Duru")
			So(rules[1].Check(a, b), ShouldEqual, identity.Pass)
			So(rules[2].Check(a, b), ShouldEqual, identity.Pass)
			So(rules[3].Check(a, b), ShouldEqual, identity.Same)
			So(identity.Same.String(), ShouldEqual, "same")
		})
	})
}

func TestNearMisses(t *testing.T) {
	Convey("Given entity names after merging", t, func() {
		m := identity.NewMatcher()
		names := []string{"John Smith", "Jane Smith", "Worcester Wolves", "Worcester Wolves II", "Rhys Farrell", "R Farrell"}

		Convey("When reviewing with a small distance", func() {
			got := m.NearMisses(names, 3)

			Convey("Then only close, unmatched pairs are reported", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].A, ShouldEqual, "John Smith")
				So(got[0].B, ShouldEqual, "Jane Smith")
				So(got[0].Distance, ShouldEqual, 3)
				So(got[1].Rule, ShouldEqual, identity.RuleSquadDesignator)
			})
		})

		Convey("When the distance is zero", func() {
			So(m.NearMisses(names, 0), ShouldBeNil)
		})
	})
}

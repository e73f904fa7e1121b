// Package merge folds per-game stat rows into one aggregate per resolved identity.
package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/identity"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
)

// Strategy selects how the pairwise match relation is turned into groups.
type Strategy string

const (
	// StrategyComponents groups names by connected components of the match relation.
	// The grouping does not depend on input order.
	StrategyComponents Strategy = "components"
	// StrategyGreedy puts each name in the first bucket whose first name it matches,
	// in discovery order.
	StrategyGreedy Strategy = "greedy"
)

// ParseStrategy maps a configuration value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyComponents:
		return StrategyComponents, nil
	case StrategyGreedy:
		return StrategyGreedy, nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q", s)
	}
}

// NameMatcher is the identity relation used to group names.
type NameMatcher interface {
	Match(a, b string) bool
}

// Merger groups raw records into canonical entities.
type Merger struct {
	strategy     Strategy
	matcher      NameMatcher
	canonicalize func(string) string
	partition    func(model.RawStatRecord) string
	team         func(model.RawStatRecord) string
}

// New returns a Merger using connected components, the default matcher and
// identity.Canonicalize, so built-in aliases fold before matching.
func New(opts ...Option) *Merger {
	m := &Merger{
		strategy:     StrategyComponents,
		matcher:      identity.NewMatcher(),
		canonicalize: identity.Canonicalize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MergeByIdentity merges records with the default Merger over matcher.
func MergeByIdentity(records []model.RawStatRecord, matcher NameMatcher) []model.CanonicalEntity {
	return New(WithMatcher(matcher)).Merge(records)
}

type group struct {
	names []string // canonical names, first-seen order
	first int      // index of the first contributing record
	recs  []int
}

// Merge returns one entity per resolved identity, ordered by first appearance.
// Every record contributes to exactly one entity.
func (m *Merger) Merge(records []model.RawStatRecord) []model.CanonicalEntity {
	canon := make([]string, len(records))
	var partOrder []string
	parts := map[string][]int{}
	for i, r := range records {
		canon[i] = m.canonicalize(r.EntityName)
		key := ""
		if m.partition != nil {
			key = m.partition(r)
		}
		if _, ok := parts[key]; !ok {
			partOrder = append(partOrder, key)
		}
		parts[key] = append(parts[key], i)
	}

	var groups []*group
	for _, key := range partOrder {
		if m.strategy == StrategyGreedy {
			groups = append(groups, m.greedy(parts[key], canon)...)
		} else {
			groups = append(groups, m.components(parts[key], canon)...)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].first < groups[j].first })

	out := make([]model.CanonicalEntity, 0, len(groups))
	for _, g := range groups {
		name := g.names[0]
		if m.strategy != StrategyGreedy {
			sorted := append([]string(nil), g.names...)
			sort.Strings(sorted)
			name = identity.MostCompleteName(sorted)
		}
		e := model.NewEntity(name)
		if m.team != nil {
			e.Team = m.team(records[g.first])
		}
		for _, i := range g.recs {
			e.Add(records[i], strings.TrimSpace(records[i].EntityName))
		}
		out = append(out, *e)
	}
	return out
}

// components unions every matching pair of distinct names.
func (m *Merger) components(idx []int, canon []string) []*group {
	var names []string
	pos := map[string]int{}
	for _, i := range idx {
		if _, ok := pos[canon[i]]; !ok {
			pos[canon[i]] = len(names)
			names = append(names, canon[i])
		}
	}

	uf := newUnionFind(len(names))
	for a := 0; a < len(names); a++ {
		for b := a + 1; b < len(names); b++ {
			if uf.find(a) != uf.find(b) && m.matcher.Match(names[a], names[b]) {
				uf.union(a, b)
			}
		}
	}

	byRoot := map[int]*group{}
	var groups []*group
	for _, n := range names {
		root := uf.find(pos[n])
		g, ok := byRoot[root]
		if !ok {
			g = &group{first: -1}
			byRoot[root] = g
			groups = append(groups, g)
		}
		g.names = append(g.names, n)
	}
	for _, i := range idx {
		g := byRoot[uf.find(pos[canon[i]])]
		if g.first < 0 {
			g.first = i
		}
		g.recs = append(g.recs, i)
	}
	return groups
}

// greedy compares each record against the first name of every existing bucket.
func (m *Merger) greedy(idx []int, canon []string) []*group {
	var groups []*group
	for _, i := range idx {
		var target *group
		for _, g := range groups {
			if m.matcher.Match(g.names[0], canon[i]) {
				target = g
				break
			}
		}
		if target == nil {
			target = &group{first: i}
			groups = append(groups, target)
		}
		if !contains(target.names, canon[i]) {
			target.names = append(target.names, canon[i])
		}
		target.recs = append(target.recs, i)
	}
	return groups
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

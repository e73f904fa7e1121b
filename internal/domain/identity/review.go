package identity

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// NearMiss is a pair of names the matcher kept apart although their spellings are close.
// It feeds manual curation of the alias table.
type NearMiss struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Distance int    `json:"distance"`
	Rule     string `json:"rule"`
}

// NearMisses compares every pair of names and returns those that do not match
// but whose folded edit distance is at most maxDistance, closest first.
func (m *Matcher) NearMisses(names []string, maxDistance int) []NearMiss {
	if maxDistance <= 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = Fold(n)
	}
	var out []NearMiss
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if keys[i] == keys[j] {
				continue
			}
			d := levenshtein.ComputeDistance(keys[i], keys[j])
			if d > maxDistance {
				continue
			}
			ok, rule := m.Explain(names[i], names[j])
			if ok {
				continue
			}
			out = append(out, NearMiss{A: names[i], B: names[j], Distance: d, Rule: rule})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

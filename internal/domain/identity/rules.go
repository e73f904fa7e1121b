package identity

import (
	"regexp"
	"sort"
	"strings"
)

// Rule names, in chain order.
const (
	RuleSquadDesignator = "squad_designator"
	RuleExact           = "exact"
	RuleTokenSubset     = "token_subset"
	RuleSurnamePrefix   = "surname_prefix"
	RuleEditDistance    = "edit_distance"
)

const (
	nicknamePrefixLen  = 3
	maxLengthDiff      = 2
	minEditLength      = 5
	maxPositionalDiffs = 2
)

var designatorRe = regexp.MustCompile(`^(ii|iii|iv|v|vi|vii|viii|ix|x|\d+)$`)

// DefaultRules is the standard chain.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleSquadDesignator, Check: squadDesignator},
		{Name: RuleExact, Check: exact},
		{Name: RuleTokenSubset, Check: tokenSubset},
		{Name: RuleSurnamePrefix, Check: surnamePrefix},
		{Name: RuleEditDistance, Check: editDistance},
	}
}

func last(ts []string) string {
	if len(ts) == 0 {
		return ""
	}
	return ts[len(ts)-1]
}

func designator(c Candidate) string {
	if len(c.Tokens) < 2 {
		return ""
	}
	if t := last(c.Tokens); designatorRe.MatchString(t) {
		return t
	}
	return ""
}

// squadDesignator keeps "Wolves II" apart from "Wolves" and "Lions A" apart from "Lions B".
func squadDesignator(a, b Candidate) Verdict {
	if a.Key == b.Key {
		return Pass
	}
	if designator(a) != designator(b) {
		return Different
	}
	la, lb := last(a.Tokens), last(b.Tokens)
	if len(a.Tokens) > 1 && len(b.Tokens) > 1 && len(la) == 1 && len(lb) == 1 && la != lb {
		return Different
	}
	return Pass
}

func exact(a, b Candidate) Verdict {
	if a.Key == b.Key {
		return Same
	}
	return Pass
}

func initialOf(short, long string) bool {
	return len(short) == 1 && strings.HasPrefix(long, short)
}

// covers reports whether long accounts for short: equal, a prefix, or an initial.
func covers(long, short string) bool {
	return long == short || strings.HasPrefix(long, short)
}

// tokenSubset matches "R Faure" with "Reiss Faure-Daley" and "R Farrell" with "Rhys Farrell".
func tokenSubset(a, b Candidate) Verdict {
	ta, tb := a.Tokens, b.Tokens
	if len(ta) == len(tb) {
		for i := range ta {
			if ta[i] != tb[i] && !initialOf(ta[i], tb[i]) && !initialOf(tb[i], ta[i]) {
				return Pass
			}
		}
		return Same
	}
	short, long := ta, tb
	if len(short) > len(long) {
		short, long = long, short
	}
	used := make([]bool, len(long))
	// longest tokens first so initials do not claim a token a full word needs
	order := make([]string, len(short))
	copy(order, short)
	sort.SliceStable(order, func(i, j int) bool { return len(order[i]) > len(order[j]) })
	for _, s := range order {
		found := false
		for j, l := range long {
			if !used[j] && covers(l, s) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return Pass
		}
	}
	return Same
}

// surnamePrefix matches nicknames: "Chuck Duru" with "Chukwuma Duru".
func surnamePrefix(a, b Candidate) Verdict {
	ta, tb := a.Tokens, b.Tokens
	if len(ta) < 2 || len(ta) != len(tb) || last(ta) != last(tb) {
		return Pass
	}
	fa, fb := ta[0], tb[0]
	if len(fa) >= nicknamePrefixLen && len(fb) >= nicknamePrefixLen && fa[:nicknamePrefixLen] == fb[:nicknamePrefixLen] {
		return Same
	}
	if strings.Contains(fa, fb) || strings.Contains(fb, fa) {
		return Same
	}
	return Pass
}

// editDistance tolerates small typos in longer names: "Murray Henry" with "Murray Hendry".
func editDistance(a, b Candidate) Verdict {
	ra, rb := []rune(a.Key), []rune(b.Key)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(rb)-len(ra) > maxLengthDiff || len(rb) <= minEditLength {
		return Pass
	}
	diffs := 0
	for i := range ra {
		if ra[i] != rb[i] {
			diffs++
		}
	}
	if diffs <= maxPositionalDiffs {
		return Same
	}
	return Pass
}

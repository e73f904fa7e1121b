package identity

// Verdict is the outcome of one matching rule.
type Verdict int

const (
	// Pass defers to the next rule.
	Pass Verdict = iota
	// Same declares the names one entity.
	Same
	// Different declares the names distinct entities.
	Different
)

func (v Verdict) String() string {
	switch v {
	case Same:
		return "same"
	case Different:
		return "different"
	default:
		return "pass"
	}
}

// Candidate is a name prepared for comparison.
type Candidate struct {
	Name   string
	Key    string
	Tokens []string
}

// NewCandidate folds name and splits it into tokens.
func NewCandidate(name string) Candidate {
	key := Fold(name)
	return Candidate{Name: name, Key: key, Tokens: tokens(key)}
}

// Rule is one step of the matching chain.
type Rule struct {
	Name  string
	Check func(a, b Candidate) Verdict
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithRules replaces the rule chain.
func WithRules(rules ...Rule) Option {
	return func(m *Matcher) {
		if len(rules) > 0 {
			m.rules = rules
		}
	}
}

// Matcher decides whether two normalized names denote the same entity by running
// an ordered rule chain; the first rule that does not pass decides.
type Matcher struct {
	rules []Rule
}

// NewMatcher returns a matcher over DefaultRules unless overridden.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{rules: DefaultRules()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Rules returns a copy of the chain.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// RuleEmpty and RuleNone are reported by Explain when no chain rule decided.
const (
	RuleEmpty = "empty"
	RuleNone  = "none"
)

// Explain reports whether a and b match and which rule decided it.
func (m *Matcher) Explain(a, b string) (bool, string) {
	ca, cb := NewCandidate(a), NewCandidate(b)
	if ca.Key == "" || cb.Key == "" {
		return ca.Key == cb.Key, RuleEmpty
	}
	for _, r := range m.rules {
		switch r.Check(ca, cb) {
		case Same:
			return true, r.Name
		case Different:
			return false, r.Name
		}
	}
	return false, RuleNone
}

// Match reports whether a and b denote the same entity.
func (m *Matcher) Match(a, b string) bool {
	ok, _ := m.Explain(a, b)
	return ok
}

var defaultMatcher = NewMatcher()

// NamesMatch runs the default rule chain over two already-normalized names.
// Empty names match only empty names.
func NamesMatch(a, b string) bool {
	return defaultMatcher.Match(a, b)
}

package identity

import (
	"strings"
)

// knownAliases lists irregular spellings seen in the upstream feed that no
// normalization rule can derive.
var knownAliases = map[string]string{
	"MK Breakers":                "Milton Keynes Breakers",
	"M.K. Breakers":              "Milton Keynes Breakers",
	"Milton Keynes Breakers (M)": "Milton Keynes Breakers",
	"LDN Lions":                  "London Lions",
	"London Lions (NBL)":         "London Lions",
	"Worcester Wolves (NBL)":     "Worcester Wolves",
	"Leicester Riders (Men)":     "Leicester Riders",
	"Thames Valley Cavs":         "Thames Valley Cavaliers",
	"TV Cavaliers":               "Thames Valley Cavaliers",
	"Team Solent Kestrels":       "Solent Kestrels",
	"Essex Rebels (M)":           "Essex Rebels",
}

// AliasTable maps alias spellings to canonical names. Lookups are
// case-insensitive on the trimmed, whitespace-collapsed name.
// A table is immutable once built and safe for concurrent reads.
type AliasTable struct {
	entries map[string]string
}

// NewAliasTable returns the built-in table extended (and overridden) by extra.
func NewAliasTable(extra map[string]string) *AliasTable {
	t := &AliasTable{entries: make(map[string]string, len(knownAliases)+len(extra))}
	for k, v := range knownAliases {
		t.set(k, v)
	}
	for k, v := range extra {
		t.set(k, v)
	}
	return t
}

func aliasKey(name string) string {
	return strings.ToLower(strings.TrimSpace(spaceRe.ReplaceAllString(name, " ")))
}

func (t *AliasTable) set(alias, canonical string) {
	k := aliasKey(alias)
	if k == "" || strings.TrimSpace(canonical) == "" {
		return
	}
	t.entries[k] = strings.TrimSpace(canonical)
}

// Lookup returns the canonical name for alias, if known.
func (t *AliasTable) Lookup(alias string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.entries[aliasKey(alias)]
	return v, ok
}

// Len is the number of entries.
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Apply replaces a known alias with its canonical name; unknown names pass through.
func (t *AliasTable) Apply(name string) string {
	if v, ok := t.Lookup(name); ok {
		return v
	}
	return name
}

// Canonicalize applies the alias table, then Normalize. The alias lookup is retried
// on the normalized form so noisy variants of an alias also resolve.
func (t *AliasTable) Canonicalize(name string) string {
	n := Normalize(t.Apply(name))
	if v, ok := t.Lookup(n); ok {
		return Normalize(v)
	}
	return n
}

var defaultAliases = NewAliasTable(nil)

// ApplyKnownAliasMap resolves name through the built-in alias table.
func ApplyKnownAliasMap(name string) string {
	return defaultAliases.Apply(name)
}

// Canonicalize is Normalize(ApplyKnownAliasMap(name)) over the built-in table.
func Canonicalize(name string) string {
	return defaultAliases.Canonicalize(name)
}

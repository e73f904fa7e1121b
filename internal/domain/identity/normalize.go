// Package identity reconciles inconsistent spellings of team and player names.
//
// Names go through three stages: an irregular alias table, a normalizer that strips
// registration noise ("Senior Men", "!", a trailing first-team "I"), and a fuzzy
// matcher that decides whether two normalized spellings denote the same entity.
package identity

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	seniorMenRe   = regexp.MustCompile(`(?i)\s+Senior\s+Men\s*`)
	trailingOneRe = regexp.MustCompile(`(?i)\s+I\s*$`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// Normalize removes registration noise from a team name:
// the "Senior Men" token pair, "!" characters and a trailing lone "I"
// ("II", "III", "IV" are separate squads and are kept). Whitespace is collapsed.
// Normalize is total and idempotent.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = seniorMenRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "!", "")
	s = trailingOneRe.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Fold is the comparison key of a name: lowercased with accents stripped.
func Fold(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	return strings.ToLower(strings.TrimSpace(spaceRe.ReplaceAllString(s, " ")))
}

// tokens splits a folded name on whitespace and hyphens.
func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
}

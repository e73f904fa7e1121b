package identity

import (
	"regexp"
	"strings"
)

// MostCompleteName picks the display spelling among variants: the one with the most
// full (longer than one letter) words, then the longest. The first variant wins ties.
func MostCompleteName(names []string) string {
	best := ""
	bestWords := -1
	for _, n := range names {
		w := fullWords(n)
		if w > bestWords || (w == bestWords && len(n) > len(best)) {
			best, bestWords = n, w
		}
	}
	return best
}

func fullWords(name string) int {
	n := 0
	for _, p := range strings.Fields(name) {
		if len([]rune(p)) > 1 {
			n++
		}
	}
	return n
}

var (
	slugStripRe  = regexp.MustCompile(`[^a-z0-9]+`)
	slugSuffixRe = regexp.MustCompile(`-\d+$`)
)

// Slug renders a name as a URL path segment: "Rhys Farrell" -> "rhys-farrell".
func Slug(name string) string {
	return strings.Trim(slugStripRe.ReplaceAllString(Fold(name), "-"), "-")
}

// SlugToName turns a slug back into a searchable name, dropping a numeric
// disambiguation suffix: "r-farrell-1" -> "R Farrell".
func SlugToName(slug string) string {
	s := slugSuffixRe.ReplaceAllString(strings.TrimSpace(slug), "")
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		parts[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

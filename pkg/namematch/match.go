// Package namematch decides whether two free-text person names refer to the
// same person. It is the resilience fallback used when the upstream name
// filter is unavailable, rejected by the account configuration, or returns
// zero rows.
package namematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize lowercases, strips diacritics, maps everything outside
// [a-z0-9 ] to a space, and collapses whitespace. Idempotent.
func Normalize(name string) string {
	s := strings.ToLower(name)

	if decomposed, _, err := transform.String(stripMarks, s); err == nil {
		s = decomposed
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Matches reports whether candidate plausibly names the same person as
// query. Comparison runs on normalized forms in three stages: substring
// containment either direction, token-subset containment, then bounded edit
// distance.
func Matches(candidate, query string) bool {
	c := Normalize(candidate)
	q := Normalize(query)
	if c == "" || q == "" {
		return false
	}

	if strings.Contains(c, q) || strings.Contains(q, c) {
		return true
	}

	if tokenSubset(c, q) {
		return true
	}

	return Distance(c, q) <= threshold(len(q))
}

// tokenSubset reports whether every token of the query appears inside some
// token of the candidate. Order-insensitive, so "jon smith" matches
// "Jonathan Smith".
func tokenSubset(candidate, query string) bool {
	candidateTokens := strings.Fields(candidate)
	for _, qt := range strings.Fields(query) {
		found := false
		for _, ct := range candidateTokens {
			if strings.Contains(ct, qt) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func threshold(queryLen int) int {
	switch {
	case queryLen <= 5:
		return 1
	case queryLen <= 8:
		return 2
	default:
		return 3
	}
}

// Distance computes the Levenshtein edit distance between two strings with
// unit insert, delete, and substitute costs.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

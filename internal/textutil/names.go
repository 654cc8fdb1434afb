package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NormalizeName folds full-width ASCII and half-width katakana to their
// canonical widths, recomposes voiced marks, and removes ASCII and
// ideographic spaces, so names typed in different input modes compare equal.
func NormalizeName(name string) string {
	folded := norm.NFC.String(width.Fold.String(name))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '　' || r == '\t' {
			return -1
		}
		return r
	}, folded)
}

// NameMatches reports whether two names are equal after normalization or
// one contains the other.
func NameMatches(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

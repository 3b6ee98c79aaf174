package domain

import (
	"strings"
	"unicode"
)

// NormalizePlate uppercases a license plate and strips all whitespace.
// "b 1234 xy" and "B1234XY" normalize to the same value.
// Normalization is idempotent: NormalizePlate(NormalizePlate(s)) == NormalizePlate(s).
func NormalizePlate(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}

// PlateMatches compares an officer-entered (or OCR-derived) plate against the
// registered plate: exact equality after normalization. No fuzzy matching and
// no partial credit — a single differing character is a non-match.
//
// Stateless and deterministic; callers recompute it on every input change
// rather than caching the result.
func PlateMatches(input, actual string) bool {
	return NormalizePlate(input) == NormalizePlate(actual)
}

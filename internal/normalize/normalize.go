// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize canonicalizes free text and splits affiliation strings
// into comparable tokens. Affiliation strings mix department, institution,
// city, country, and postal code in inconsistent order, so token-level
// filtering happens here before any institution match is attempted.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// minTokenLen is the shortest affiliation fragment worth keeping. Shorter
// fragments are state codes, house numbers, and similar noise.
const minTokenLen = 5

// Normalize collapses any run of whitespace to a single space, trims, and
// lower-cases the result. Input is NFC-normalized first so visually
// identical strings compare equal. Normalize is idempotent and maps the
// empty string to itself.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// SplitAffiliation splits a raw affiliation string on ";", "," and "."
// delimiters, normalizes each part, and discards parts shorter than five
// characters or purely numeric (postal codes). Duplicate tokens are removed
// while preserving first-seen order.
func SplitAffiliation(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ',' || r == '.'
	})

	seen := make(map[string]struct{}, len(parts))
	var tokens []string
	for _, part := range parts {
		token := Normalize(part)
		if len(token) < minTokenLen || isNumeric(token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

// isNumeric reports whether s consists entirely of digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether any needle occurs in the normalized text as a
// plain substring. Needles must already be normalized; journals and keywords
// are short compound phrases where containment is intentional ("lancet"
// matching "lancet oncology").
func ContainsAny(text string, needles []string) bool {
	t := Normalize(text)
	if t == "" {
		return false
	}
	for _, n := range needles {
		if n != "" && strings.Contains(t, n) {
			return true
		}
	}
	return false
}

// institutionWords is the fixed indicator vocabulary for the heuristic
// institution classifier.
var institutionWords = []string{
	"university", "hospital", "clinic", "institute", "college",
	"center", "centre", "school", "department", "laboratory", "lab",
}

// LooksLikeInstitution reports whether a normalized affiliation token
// contains an institution-indicator word. Used for the "all institutions
// mentioned" summary where no configured-list match is required.
func LooksLikeInstitution(token string) bool {
	for _, w := range institutionWords {
		if strings.Contains(token, w) {
			return true
		}
	}
	return false
}

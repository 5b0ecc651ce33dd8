// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance matches records against configured criteria and applies
// the weighted scoring rules. Two matching modes coexist deliberately:
// journals and keywords use plain substring containment, institutions use
// whole-word matching so "Yale" does not fire inside "Royale".
package relevance

import (
	"regexp"
	"strings"

	"github.com/pdiddy/relevance-finder/internal/normalize"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

// instPattern pairs a configured institution's display name with its
// compiled word-boundary pattern.
type instPattern struct {
	name string
	re   *regexp.Regexp
}

// Matcher holds the criteria lists pre-normalized and pre-compiled once at
// construction. It is immutable and safe for concurrent use.
type Matcher struct {
	journals     []string
	keywords     []string // normalized, parallel to keywordNames
	keywordNames []string
	institutions []instPattern
	selected     []instPattern
}

// NewMatcher normalizes the criteria entries and compiles the institution
// patterns. Blank entries are dropped.
func NewMatcher(c types.Criteria) *Matcher {
	m := &Matcher{
		journals:     normalizeList(c.Journals),
		institutions: compileInstitutions(c.Institutions),
		selected:     compileInstitutions(c.SelectedInstitutions),
	}
	for _, k := range c.Keywords {
		if n := normalize.Normalize(k); n != "" {
			m.keywords = append(m.keywords, n)
			m.keywordNames = append(m.keywordNames, strings.TrimSpace(k))
		}
	}
	return m
}

func normalizeList(entries []string) []string {
	var out []string
	for _, e := range entries {
		if n := normalize.Normalize(e); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func compileInstitutions(entries []string) []instPattern {
	var out []instPattern
	for _, e := range entries {
		n := normalize.Normalize(e)
		if n == "" {
			continue
		}
		out = append(out, instPattern{
			name: e,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(n) + `\b`),
		})
	}
	return out
}

// Journal reports whether any configured journal substring occurs in the
// normalized journal name.
func (m *Matcher) Journal(journal string) bool {
	return normalize.ContainsAny(journal, m.journals)
}

// TitleKeyword reports whether any configured keyword substring occurs in
// the normalized title.
func (m *Matcher) TitleKeyword(title string) bool {
	return normalize.ContainsAny(title, m.keywords)
}

// Institution reports whether text contains any configured institution as a
// whole-word match.
func (m *Matcher) Institution(text string) bool {
	t := normalize.Normalize(text)
	for _, p := range m.institutions {
		if p.re.MatchString(t) {
			return true
		}
	}
	return false
}

// AnyInstitution reports whether any of the tokens matches any configured
// institution.
func (m *Matcher) AnyInstitution(tokens []string) bool {
	for _, tok := range tokens {
		if m.Institution(tok) {
			return true
		}
	}
	return false
}

// InstitutionNames returns the set of configured institutions matched among
// the tokens, by display name, in configured-list order. A record mentioning
// the same institution via two tokens reports it once.
func (m *Matcher) InstitutionNames(tokens []string) []string {
	return matchNames(m.institutions, tokens)
}

// SelectedNames is InstitutionNames for the secondary institution list.
func (m *Matcher) SelectedNames(tokens []string) []string {
	return matchNames(m.selected, tokens)
}

// HasSelected reports whether a secondary institution list is configured.
func (m *Matcher) HasSelected() bool {
	return len(m.selected) > 0
}

func matchNames(patterns []instPattern, tokens []string) []string {
	var names []string
	for _, p := range patterns {
		for _, tok := range tokens {
			if p.re.MatchString(normalize.Normalize(tok)) {
				names = append(names, p.name)
				break
			}
		}
	}
	return names
}

// MatchedKeywords returns the display names of the configured keywords
// contained in the normalized title, in configured-list order.
func (m *Matcher) MatchedKeywords(title string) []string {
	t := normalize.Normalize(title)
	if t == "" {
		return nil
	}
	var out []string
	for i, k := range m.keywords {
		if strings.Contains(t, k) {
			out = append(out, m.keywordNames[i])
		}
	}
	return out
}

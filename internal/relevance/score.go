// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"strings"

	"github.com/pdiddy/relevance-finder/pkg/types"
)

// Rule descriptions, used verbatim as the audit trail. Each names its rule
// and weight and is appended in evaluation order.
const (
	ReasonJournal     = "High-impact journal (+2)"
	ReasonPubType     = "High-evidence publication type (+2)"
	ReasonAuthors     = "Large author team (+1)"
	ReasonInstitution = "Renowned institution (+1)"
	ReasonKeyword     = "Keyword in title (+2)"
	ReasonFunding     = "Funding reported (+2)"
)

// minLargeTeam is the author count at which the author-team rule fires.
const minLargeTeam = 5

// valuedPublicationTypes are the publication types that signal high-evidence
// study designs. Compared case-insensitively, label for label.
var valuedPublicationTypes = map[string]struct{}{
	"randomized controlled trial": {},
	"systematic review":           {},
	"meta-analysis":               {},
	"guideline":                   {},
	"practice guideline":          {},
}

// Score applies the weighted rules to a record. Rules are evaluated in a
// fixed order, each independently additive and each firing at most once per
// record, no matter how many tokens or list entries match. A record with no
// signals scores 0 with nil reasons. Pure and deterministic.
func Score(rec *types.Record, m *Matcher) (int, []string) {
	score := 0
	var reasons []string

	if m.Journal(rec.Journal) {
		score += 2
		reasons = append(reasons, ReasonJournal)
	}

	if hasValuedPublicationType(rec.PublicationTypes) {
		score += 2
		reasons = append(reasons, ReasonPubType)
	}

	if rec.AuthorCount >= minLargeTeam {
		score++
		reasons = append(reasons, ReasonAuthors)
	}

	if m.AnyInstitution(rec.AffiliationTokens) {
		score++
		reasons = append(reasons, ReasonInstitution)
	}

	if m.TitleKeyword(rec.Title) {
		score += 2
		reasons = append(reasons, ReasonKeyword)
	}

	if rec.HasGrant {
		score += 2
		reasons = append(reasons, ReasonFunding)
	}

	return score, reasons
}

func hasValuedPublicationType(labels []string) bool {
	for _, label := range labels {
		if _, ok := valuedPublicationTypes[strings.ToLower(strings.TrimSpace(label))]; ok {
			return true
		}
	}
	return false
}

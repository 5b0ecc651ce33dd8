// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary folds a finished sequence of scored records into
// per-dimension frequency tables. It runs strictly after batch processing
// and never mutates the records.
package summary

import (
	"sort"

	"github.com/pdiddy/relevance-finder/internal/normalize"
	"github.com/pdiddy/relevance-finder/internal/relevance"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

// OthersLabel is the reserved bucket for records matching none of the
// entries of a summary view that tracks misses.
const OthersLabel = "Others"

// Tables holds the summary views of one run. Each table is sorted by count
// descending, ties resolved by first encounter, and omits zero-count rows.
type Tables struct {
	// Journals counts records per exact post-extraction journal name.
	Journals []types.LabelCount `json:"journals" yaml:"journals"`

	// RenownedInstitutions counts records mentioning each configured
	// institution, each institution at most once per record. No miss bucket.
	RenownedInstitutions []types.LabelCount `json:"renowned_institutions" yaml:"renowned_institutions"`

	// SelectedInstitutions is the same fold over the secondary list, with
	// an "Others" bucket for records matching none of its entries.
	SelectedInstitutions []types.LabelCount `json:"selected_institutions,omitempty" yaml:"selected_institutions,omitempty"`

	// InstitutionMentions counts affiliation tokens that look institutional
	// by vocabulary, regardless of any configured list.
	InstitutionMentions []types.LabelCount `json:"institution_mentions" yaml:"institution_mentions"`

	// PublicationTypes counts label occurrences across all records.
	PublicationTypes []types.LabelCount `json:"publication_types" yaml:"publication_types"`

	// TitleKeywords counts, per configured keyword, the records whose
	// normalized title contains it, each record at most once per keyword.
	TitleKeywords []types.LabelCount `json:"title_keywords" yaml:"title_keywords"`
}

// Build computes all summary tables in one pass over the scored sequence.
func Build(records []types.ScoredRecord, m *relevance.Matcher) Tables {
	journals := newCounter()
	renowned := newCounter()
	selected := newCounter()
	mentions := newCounter()
	pubTypes := newCounter()
	keywords := newCounter()

	for i := range records {
		rec := &records[i].Record

		journals.add(rec.Journal)

		for _, name := range m.InstitutionNames(rec.AffiliationTokens) {
			renowned.add(name)
		}

		if m.HasSelected() {
			names := m.SelectedNames(rec.AffiliationTokens)
			if len(names) == 0 {
				selected.add(OthersLabel)
			}
			for _, name := range names {
				selected.add(name)
			}
		}

		for _, tok := range rec.AffiliationTokens {
			if normalize.LooksLikeInstitution(tok) {
				mentions.add(tok)
			}
		}

		for _, label := range rec.PublicationTypes {
			pubTypes.add(label)
		}

		for _, kw := range m.MatchedKeywords(rec.Title) {
			keywords.add(kw)
		}
	}

	return Tables{
		Journals:             journals.pairs(),
		RenownedInstitutions: renowned.pairs(),
		SelectedInstitutions: selected.pairs(),
		InstitutionMentions:  mentions.pairs(),
		PublicationTypes:     pubTypes.pairs(),
		TitleKeywords:        keywords.pairs(),
	}
}

// counter accumulates label frequencies while remembering first-encounter
// order so ties sort deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *counter) pairs() []types.LabelCount {
	out := make([]types.LabelCount, 0, len(c.order))
	for _, label := range c.order {
		out = append(out, types.LabelCount{Label: label, Count: c.counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

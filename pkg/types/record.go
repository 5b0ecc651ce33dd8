// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the relevance-finder
// pipeline: the structured record extracted from PubMed XML, the scored
// record produced by the relevance rules, and the run configuration.
package types

import "strings"

// Record is the flat, structured form of one PubMed citation after field
// extraction. Every field has a defined default ("N/A", empty string, or
// empty list) so downstream stages never see a missing sub-element.
type Record struct {
	// PMID is the PubMed identifier of the citation.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title, or "N/A".
	Title string `json:"title" yaml:"title"`

	// Journal is the full journal title, or "N/A".
	Journal string `json:"journal" yaml:"journal"`

	// Date is the display publication date: the year when present, the
	// free-form MedlineDate fallback otherwise, or "N/A".
	Date string `json:"date" yaml:"date"`

	// Affiliations lists the raw affiliation strings in document order.
	Affiliations []string `json:"affiliations" yaml:"affiliations"`

	// AffiliationTokens lists the normalized, delimiter-split affiliation
	// fragments, deduplicated in first-seen order.
	AffiliationTokens []string `json:"affiliation_tokens" yaml:"affiliation_tokens"`

	// PublicationTypes lists the publication-type labels in document order.
	PublicationTypes []string `json:"publication_types" yaml:"publication_types"`

	// AuthorCount is the number of author entries on the citation.
	AuthorCount int `json:"author_count" yaml:"author_count"`

	// Abstract is the abstract text with fragments newline-joined, or "N/A".
	Abstract string `json:"abstract" yaml:"abstract"`

	// Citation is a human-readable citation string. It is always present:
	// missing authors yield "Unknown Author" and a missing year "n.d.".
	Citation string `json:"citation" yaml:"citation"`

	// EntryDate is the date the citation entered the database, as
	// YYYY-MM-DD degrading to YYYY-MM or YYYY, or empty when unknown.
	EntryDate string `json:"entry_date,omitempty" yaml:"entry_date,omitempty"`

	// MeSHTerms lists the MeSH descriptor names.
	MeSHTerms []string `json:"mesh_terms,omitempty" yaml:"mesh_terms,omitempty"`

	// Chemicals lists the chemical substance names.
	Chemicals []string `json:"chemicals,omitempty" yaml:"chemicals,omitempty"`

	// Keywords lists the author-supplied keywords.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// GeneSymbols lists the gene/protein symbols.
	GeneSymbols []string `json:"gene_symbols,omitempty" yaml:"gene_symbols,omitempty"`

	// HasGrant reports whether the citation carries a funding/grant marker.
	HasGrant bool `json:"has_grant" yaml:"has_grant"`
}

// Permalink returns the canonical PubMed URL for the record, or an empty
// string when the PMID is unknown.
func (r *Record) Permalink() string {
	if r.PMID == "" {
		return ""
	}
	return "https://pubmed.ncbi.nlm.nih.gov/" + r.PMID + "/"
}

// JoinedPublicationTypes returns the publication-type labels joined with
// "; " for display and export.
func (r *Record) JoinedPublicationTypes() string {
	return strings.Join(r.PublicationTypes, "; ")
}

// JoinedAffiliations returns the raw affiliation strings joined with "; ".
func (r *Record) JoinedAffiliations() string {
	return strings.Join(r.Affiliations, "; ")
}

// ScoredRecord is a Record annotated with its relevance score and the
// ordered list of rule descriptions that fired. Reasons appear in rule
// evaluation order and are used verbatim as an audit trail.
type ScoredRecord struct {
	Record `yaml:",inline"`

	// Score is the sum of the weights of the rules that fired.
	Score int `json:"score" yaml:"score"`

	// Reasons describes each fired rule, in evaluation order.
	Reasons []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// JoinedReasons returns the reasons joined with "; " for display and export.
func (s *ScoredRecord) JoinedReasons() string {
	return strings.Join(s.Reasons, "; ")
}

// LabelCount is one row of a summary table: a dimension value and the
// number of times it was counted.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

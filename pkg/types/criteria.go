// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Criteria holds the user-configured relevance lists. It is constructed
// once per run and read-only thereafter; the pipeline shares it across
// workers without copying.
type Criteria struct {
	// Journals lists journal-name substrings matched against the
	// normalized journal title (plain containment).
	Journals []string `json:"journals" yaml:"journals"`

	// Institutions lists institution names matched against affiliation
	// tokens (word-boundary). Drives both scoring and the "renowned
	// institutions" summary.
	Institutions []string `json:"institutions" yaml:"institutions"`

	// SelectedInstitutions is an optional second institution list used
	// only for an independent summary breakdown; it does not score.
	SelectedInstitutions []string `json:"selected_institutions,omitempty" yaml:"selected_institutions,omitempty"`

	// Keywords lists keyword substrings matched against the normalized
	// title (plain containment).
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// IsEmpty reports whether no list carries any entries.
func (c Criteria) IsEmpty() bool {
	return len(c.Journals) == 0 && len(c.Institutions) == 0 &&
		len(c.SelectedInstitutions) == 0 && len(c.Keywords) == 0
}

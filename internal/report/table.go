// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders scored records and summary tables for consumption:
// a human-readable table, a CSV export, and a YAML run file.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/relevance-finder/internal/summary"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

// Status is the run-level outcome triple. It is always reported, even for
// zero-result runs, so an empty run is distinguishable from a fatal parse
// failure.
type Status struct {
	PMIDsFound int `json:"pmids_found" yaml:"pmids_found"`
	ParsedOK   int `json:"parsed_ok" yaml:"parsed_ok"`
	ParsedFail int `json:"parsed_fail" yaml:"parsed_fail"`
}

// FormatTable writes records as a human-readable table to w. Callers pass
// records already sorted score-descending.
func FormatTable(records []types.ScoredRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records to display.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-5s  %-12s  %-40s  %s\n",
		"Rank", "Score", "Date", "Journal", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range records {
		fmt.Fprintf(w, "%-4d  %-5d  %-12s  %-40s  %s\n",
			i+1, r.Score, truncate(r.Date, 12), truncate(r.Journal, 40), truncate(r.Title, 60))
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
}

// FormatSummaries writes the summary tables as label/count listings.
func FormatSummaries(tables summary.Tables, w io.Writer) {
	writeSummary(w, "Journals", tables.Journals)
	writeSummary(w, "Renowned institutions", tables.RenownedInstitutions)
	writeSummary(w, "Selected institutions", tables.SelectedInstitutions)
	writeSummary(w, "Institutions mentioned", tables.InstitutionMentions)
	writeSummary(w, "Publication types", tables.PublicationTypes)
	writeSummary(w, "Keywords in titles", tables.TitleKeywords)
}

// FormatStatus writes the run-level status triple.
func FormatStatus(s Status, w io.Writer) {
	fmt.Fprintf(w, "PMIDs found: %d, parsed: %d, failed: %d\n",
		s.PMIDsFound, s.ParsedOK, s.ParsedFail)
}

func writeSummary(w io.Writer, title string, rows []types.LabelCount) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, row := range rows {
		fmt.Fprintf(w, "  %-50s  %d\n", truncate(row.Label, 50), row.Count)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/relevance-finder/pkg/types"
)

// csvHeader is the tabular export column set.
var csvHeader = []string{
	"pmid", "title", "journal", "date", "publication_types", "affiliations",
	"score", "reasons", "citation", "abstract", "entry_date", "mesh_terms",
	"chemicals", "author_keywords", "gene_symbols", "permalink",
}

// WriteCSV writes records as UTF-8 CSV with a header row. Multi-value
// fields are semicolon-joined.
func WriteCSV(w io.Writer, records []types.ScoredRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i := range records {
		r := &records[i]
		row := []string{
			r.PMID,
			r.Title,
			r.Journal,
			r.Date,
			r.JoinedPublicationTypes(),
			r.JoinedAffiliations(),
			strconv.Itoa(r.Score),
			r.JoinedReasons(),
			r.Citation,
			r.Abstract,
			r.EntryDate,
			strings.Join(r.MeSHTerms, "; "),
			strings.Join(r.Chemicals, "; "),
			strings.Join(r.Keywords, "; "),
			strings.Join(r.GeneSymbols, "; "),
			r.Permalink(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/relevance-finder/internal/summary"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

func sampleScored() []types.ScoredRecord {
	return []types.ScoredRecord{
		{
			Record: types.Record{
				PMID:             "38111222",
				Title:            "Semaglutide outcomes in type 2 diabetes",
				Journal:          "Lancet Diabetes Endocrinol",
				Date:             "2024 Feb",
				Affiliations:      []string{"Harvard University, Boston, MA"},
				AffiliationTokens: []string{"harvard university", "boston"},
				PublicationTypes: []string{"Randomized Controlled Trial", "Journal Article"},
				AuthorCount:      6,
				Abstract:         "BACKGROUND: Something.",
				Citation:         "Marso SP (2024). Semaglutide outcomes in type 2 diabetes. Lancet Diabetes Endocrinol.",
				EntryDate:        "2024-02-14",
				MeSHTerms:        []string{"Diabetes Mellitus, Type 2", "Humans"},
				Chemicals:        []string{"Semaglutide"},
				Keywords:         []string{"GLP-1", "cardiovascular"},
				HasGrant:         true,
			},
			Score:   6,
			Reasons: []string{"High-impact journal (+2)", "High-evidence publication type (+2)", "Funding reported (+2)"},
		},
		{
			Record: types.Record{
				PMID:    "38111223",
				Title:   "A smaller study",
				Journal: "N/A",
				Date:    "N/A",
			},
			Score: 0,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleScored()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "38111222", first[0])
	assert.Equal(t, "Randomized Controlled Trial; Journal Article", first[4])
	assert.Equal(t, "6", first[6])
	assert.Equal(t, "High-impact journal (+2); High-evidence publication type (+2); Funding reported (+2)", first[7])
	assert.Equal(t, "Diabetes Mellitus, Type 2; Humans", first[11])
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/38111222/", first[15])

	second := rows[2]
	assert.Equal(t, "38111223", second[0])
	assert.Equal(t, "0", second[6])
	assert.Equal(t, "", second[7])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}

func TestRunFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	original := RunFile{
		Query: "semaglutide AND cardiovascular",
		Criteria: types.Criteria{
			Journals:     []string{"Lancet Diabetes Endocrinol"},
			Institutions: []string{"Harvard University"},
			Keywords:     []string{"semaglutide"},
		},
		Status:  Status{PMIDsFound: 2, ParsedOK: 2, ParsedFail: 0},
		Records: sampleScored(),
		Summaries: summary.Tables{
			Journals: []types.LabelCount{{Label: "Lancet Diabetes Endocrinol", Count: 1}},
		},
	}

	require.NoError(t, WriteRunFile(path, original))

	loaded, err := ReadRunFile(path)
	require.NoError(t, err)

	assert.Equal(t, original.Query, loaded.Query)
	assert.Equal(t, original.Criteria, loaded.Criteria)
	assert.Equal(t, original.Status, loaded.Status)
	require.Len(t, loaded.Records, 2)
	assert.Equal(t, original.Records[0].Record, loaded.Records[0].Record)
	assert.Equal(t, original.Records[0].Score, loaded.Records[0].Score)
	assert.Equal(t, original.Records[0].Reasons, loaded.Records[0].Reasons)
	assert.Equal(t, original.Summaries.Journals, loaded.Summaries.Journals)
	assert.False(t, loaded.Timestamp.IsZero())
}

func TestReadRunFileMissing(t *testing.T) {
	_, err := ReadRunFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleScored(), &buf)

	out := buf.String()
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "Semaglutide outcomes in type 2 diabetes")
	assert.Contains(t, out, "2 records")
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "No records to display.")
}

func TestFormatSummaries(t *testing.T) {
	var buf bytes.Buffer
	FormatSummaries(summary.Tables{
		Journals:     []types.LabelCount{{Label: "Lancet Diabetes Endocrinol", Count: 3}},
		TitleKeywords: []types.LabelCount{{Label: "semaglutide", Count: 2}},
	}, &buf)

	out := buf.String()
	assert.Contains(t, out, "Journals:")
	assert.Contains(t, out, "Lancet Diabetes Endocrinol")
	assert.Contains(t, out, "Keywords in titles:")
	assert.NotContains(t, out, "Selected institutions:")
}

func TestFormatStatus(t *testing.T) {
	var buf bytes.Buffer
	FormatStatus(Status{PMIDsFound: 10, ParsedOK: 9, ParsedFail: 1}, &buf)
	assert.Equal(t, "PMIDs found: 10, parsed: 9, failed: 1\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, strings.Repeat("a", 7)+"...", truncate(strings.Repeat("a", 20), 10))
}

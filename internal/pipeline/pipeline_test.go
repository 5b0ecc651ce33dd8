// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/relevance-finder/internal/relevance"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

func testMatcher() *relevance.Matcher {
	return relevance.NewMatcher(types.Criteria{
		Journals:     []string{"Lancet"},
		Institutions: []string{"Harvard"},
		Keywords:     []string{"semaglutide"},
	})
}

// articleXML builds one well-formed PubmedArticle element. An empty pmid
// produces a record that fails extraction.
func articleXML(pmid, title, journal string) string {
	return fmt.Sprintf(`<PubmedArticle>
  <MedlineCitation>
    <PMID>%s</PMID>
    <Article>
      <Journal><Title>%s</Title><JournalIssue><PubDate><Year>2024</Year></PubDate></JournalIssue></Journal>
      <ArticleTitle>%s</ArticleTitle>
    </Article>
  </MedlineCitation>
</PubmedArticle>`, pmid, journal, title)
}

func batchXML(articles ...string) string {
	return "<PubmedArticleSet>" + strings.Join(articles, "\n") + "</PubmedArticleSet>"
}

func TestProcessPartialFailure(t *testing.T) {
	var articles []string
	for i := 1; i <= 10; i++ {
		pmid := fmt.Sprintf("%d", i)
		if i == 5 {
			pmid = "" // malformed: no identifier
		}
		articles = append(articles, articleXML(pmid, "Title", "Journal"))
	}

	result, err := Process(context.Background(), strings.NewReader(batchXML(articles...)),
		testMatcher(), types.PipelineConfig{Workers: 3}, io.Discard)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if result.OK != 9 {
		t.Errorf("OK = %d, want 9", result.OK)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if len(result.Records) != 9 {
		t.Errorf("len(Records) = %d, want 9", len(result.Records))
	}
	for _, rec := range result.Records {
		if rec.PMID == "" {
			t.Error("malformed record present in scored sequence")
		}
	}

	if len(result.Failures) != 1 {
		t.Fatalf("Failures = %v", result.Failures)
	}
	f := result.Failures[0]
	if f.Index != 4 || f.Kind != FailureExtract {
		t.Errorf("failure = %+v, want index 4, kind extract", f)
	}
}

func TestProcessScoresRecords(t *testing.T) {
	batch := batchXML(
		articleXML("1", "Semaglutide outcomes", "Lancet Diabetes Endocrinol"),
		articleXML("2", "Unrelated", "Cell Reports"),
	)

	result, err := Process(context.Background(), strings.NewReader(batch),
		testMatcher(), types.PipelineConfig{}, io.Discard)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.OK != 2 {
		t.Fatalf("OK = %d, want 2", result.OK)
	}

	SortByScore(result.Records)
	// Journal (+2) and keyword (+2) for the first record.
	if result.Records[0].PMID != "1" || result.Records[0].Score != 4 {
		t.Errorf("top record = %s score %d, want PMID 1 score 4",
			result.Records[0].PMID, result.Records[0].Score)
	}
	if result.Records[1].Score != 0 {
		t.Errorf("bottom record score = %d, want 0", result.Records[1].Score)
	}
}

func TestProcessBatchError(t *testing.T) {
	_, err := Process(context.Background(), strings.NewReader("not a batch at all"),
		testMatcher(), types.PipelineConfig{}, io.Discard)
	if err == nil {
		t.Fatal("Process should fail on a malformed batch")
	}

	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Errorf("err = %T, want *BatchError", err)
	}
}

func TestProcessEmptyBatch(t *testing.T) {
	result, err := Process(context.Background(),
		strings.NewReader("<PubmedArticleSet></PubmedArticleSet>"),
		testMatcher(), types.PipelineConfig{}, io.Discard)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Total() != 0 || len(result.Records) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestProcessDeterministicScores(t *testing.T) {
	batch := batchXML(
		articleXML("1", "Semaglutide outcomes", "Lancet"),
		articleXML("2", "Another study", "JAMA"),
		articleXML("3", "Third study", "Nature"),
	)
	m := testMatcher()

	scores := make(map[string]int)
	for run := 0; run < 5; run++ {
		result, err := Process(context.Background(), strings.NewReader(batch),
			m, types.PipelineConfig{Workers: 2}, io.Discard)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		for _, rec := range result.Records {
			if run == 0 {
				scores[rec.PMID] = rec.Score
			} else if scores[rec.PMID] != rec.Score {
				t.Errorf("run %d: score for %s changed: %d != %d",
					run, rec.PMID, rec.Score, scores[rec.PMID])
			}
		}
	}
}

func TestProcessCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Process(ctx, strings.NewReader(batchXML(articleXML("1", "T", "J"))),
		testMatcher(), types.PipelineConfig{}, io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

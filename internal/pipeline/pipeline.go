// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives per-record extraction and scoring over a raw
// batch. Records are independent of one another, so they run on a bounded
// worker pool; failures are counted per record and never abort the batch.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/relevance-finder/internal/pubmed"
	"github.com/pdiddy/relevance-finder/internal/relevance"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

const defaultWorkers = 4

// BatchError reports that the raw batch itself could not be parsed. It is
// fatal to the run, unlike per-record failures.
type BatchError struct {
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch parse: %v", e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// FailureKind classifies a per-record failure for diagnostics.
type FailureKind string

const (
	// FailureDecode marks a record whose XML sub-structure did not decode.
	FailureDecode FailureKind = "decode"

	// FailureExtract marks a record whose fields could not be extracted.
	FailureExtract FailureKind = "extract"
)

// RecordFailure retains one dropped record's position and failure kind.
type RecordFailure struct {
	Index int
	Kind  FailureKind
	Err   error
}

// Result holds the outcome of one batch-processing run.
type Result struct {
	Records  []types.ScoredRecord
	OK       int
	Failed   int
	Failures []RecordFailure
}

// Total returns the number of raw records processed.
func (r Result) Total() int {
	return r.OK + r.Failed
}

// HasFailures reports whether any record was dropped.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Process parses a raw batch and scores each record against the matcher.
// Per-record failures increment the failure count and exclude the record;
// only a malformed top-level batch returns an error (a *BatchError, with an
// empty result). The order of Records is not defined; callers sort for
// display. Per-record progress goes to w.
func Process(ctx context.Context, raw io.Reader, m *relevance.Matcher, cfg types.PipelineConfig, w io.Writer) (Result, error) {
	entries, err := pubmed.ParseBatch(raw)
	if err != nil {
		return Result{}, &BatchError{Err: err}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var (
		mu     sync.Mutex
		result Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			scored, ferr := processEntry(entry, m)

			mu.Lock()
			defer mu.Unlock()
			if ferr != nil {
				ferr.Index = i
				result.Failed++
				result.Failures = append(result.Failures, *ferr)
				fmt.Fprintf(w, "failed:  record %d (%v)\n", i+1, ferr.Err)
				return nil
			}
			result.OK++
			result.Records = append(result.Records, *scored)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	sort.Slice(result.Failures, func(a, b int) bool {
		return result.Failures[a].Index < result.Failures[b].Index
	})

	fmt.Fprintf(w, "\nBatch summary: %d scored, %d failed (total: %d)\n",
		result.OK, result.Failed, result.Total())
	return result, nil
}

// processEntry runs extraction and scoring for one raw record as a unit.
func processEntry(entry pubmed.BatchEntry, m *relevance.Matcher) (*types.ScoredRecord, *RecordFailure) {
	if entry.Err != nil {
		return nil, &RecordFailure{Kind: FailureDecode, Err: entry.Err}
	}

	rec, err := pubmed.Extract(entry.Article)
	if err != nil {
		return nil, &RecordFailure{Kind: FailureExtract, Err: err}
	}

	score, reasons := relevance.Score(rec, m)
	return &types.ScoredRecord{
		Record:  *rec,
		Score:   score,
		Reasons: reasons,
	}, nil
}

// SortByScore orders records score-descending, stable within equal scores.
// Display ordering is a caller concern, not a pipeline invariant.
func SortByScore(records []types.ScoredRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/relevance-finder/internal/criteria"
	"github.com/pdiddy/relevance-finder/internal/eutils"
	"github.com/pdiddy/relevance-finder/internal/pipeline"
	"github.com/pdiddy/relevance-finder/internal/relevance"
	"github.com/pdiddy/relevance-finder/internal/report"
	"github.com/pdiddy/relevance-finder/internal/summary"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a record batch against the configured criteria",
	Long: `Score runs the extraction, scoring, and summary pipeline over a raw
PubMed XML batch. The batch comes from --input (a file written by fetch) or
is fetched live with --query. Criteria lists are plain-text files, one entry
per line, or a single YAML file via --criteria.

Records are printed score-descending with per-rule reasons, followed by the
summary tables and the run status. Use --csv and --run-file to export.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("input", "", "raw PubMed XML batch file")
	scoreCmd.Flags().String("query", "", "fetch a fresh batch for this search term instead of --input")
	scoreCmd.Flags().Int("max-results", 0, "maximum number of records to fetch with --query")
	scoreCmd.Flags().String("criteria", "", "YAML file with all criteria lists")
	scoreCmd.Flags().String("journals", "", "plain-text journal list, one entry per line")
	scoreCmd.Flags().String("institutions", "", "plain-text institution list, one entry per line")
	scoreCmd.Flags().String("selected-institutions", "", "secondary institution list for the summary breakdown")
	scoreCmd.Flags().String("keywords", "", "plain-text keyword list, one entry per line")
	scoreCmd.Flags().Int("workers", 0, "records processed concurrently (default 4)")
	scoreCmd.Flags().String("csv", "", "write the scored records to this CSV file")
	scoreCmd.Flags().String("run-file", "", "write the full run (records, summaries, status) to this YAML file")
	scoreCmd.Flags().Duration("timeout", 0, "HTTP request timeout for --query (default 30s)")
	scoreCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	query, _ := cmd.Flags().GetString("query")
	if input == "" && query == "" {
		return fmt.Errorf("provide --input or --query")
	}

	crit, err := loadCriteria(cmd)
	if err != nil {
		return err
	}
	if crit.IsEmpty() {
		fmt.Fprintln(os.Stderr, "warning: no criteria configured, all records will score 0")
	}
	matcher := relevance.NewMatcher(crit)

	raw, pmidsFound, err := loadBatch(cmd, input, query)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		report.FormatStatus(report.Status{PMIDsFound: pmidsFound}, os.Stdout)
		return nil
	}

	workers, _ := cmd.Flags().GetInt("workers")
	if workers == 0 {
		workers = viper.GetInt("pipeline.workers")
	}
	pipeCfg := types.PipelineConfig{Workers: workers}

	result, err := pipeline.Process(context.Background(), bytes.NewReader(raw), matcher, pipeCfg, os.Stderr)
	if err != nil {
		return err
	}
	if pmidsFound == 0 {
		pmidsFound = result.Total()
	}

	pipeline.SortByScore(result.Records)
	tables := summary.Build(result.Records, matcher)
	status := report.Status{
		PMIDsFound: pmidsFound,
		ParsedOK:   result.OK,
		ParsedFail: result.Failed,
	}

	report.FormatTable(result.Records, os.Stdout)
	report.FormatSummaries(tables, os.Stdout)
	fmt.Fprintln(os.Stdout)
	report.FormatStatus(status, os.Stdout)

	if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
		if err := writeCSVFile(csvPath, result.Records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", csvPath)
	}

	if runPath, _ := cmd.Flags().GetString("run-file"); runPath != "" {
		rf := report.RunFile{
			Query:     query,
			Criteria:  crit,
			Status:    status,
			Records:   result.Records,
			Summaries: tables,
		}
		if err := report.WriteRunFile(runPath, rf); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", runPath)
	}

	return nil
}

// loadCriteria builds the criteria from --criteria (YAML) or the per-list
// plain-text files, falling back to paths from the config file.
func loadCriteria(cmd *cobra.Command) (types.Criteria, error) {
	if yamlPath, _ := cmd.Flags().GetString("criteria"); yamlPath != "" {
		return criteria.LoadYAML(yamlPath)
	}

	files := types.CriteriaFilesConfig{
		Journals:             flagOrConfig(cmd, "journals", "criteria_files.journals"),
		Institutions:         flagOrConfig(cmd, "institutions", "criteria_files.institutions"),
		SelectedInstitutions: flagOrConfig(cmd, "selected-institutions", "criteria_files.selected_institutions"),
		Keywords:             flagOrConfig(cmd, "keywords", "criteria_files.keywords"),
	}
	return criteria.LoadFiles(files)
}

func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(key)
}

// loadBatch returns the raw XML batch and, for live queries, the number of
// PMIDs the search found.
func loadBatch(cmd *cobra.Command, input, query string) ([]byte, int, error) {
	if input != "" {
		raw, err := os.ReadFile(input)
		if err != nil {
			return nil, 0, fmt.Errorf("reading batch: %w", err)
		}
		return raw, 0, nil
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	client := eutils.NewClient(fetchConfig(cmd))
	pmids, raw, err := client.SearchAndFetch(context.Background(), strings.TrimSpace(query), maxResults)
	if err != nil {
		return nil, 0, err
	}
	return raw, len(pmids), nil
}

func writeCSVFile(path string, records []types.ScoredRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()
	return report.WriteCSV(f, records)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/relevance-finder/internal/eutils"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "relevance-finder/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <search term>",
	Short: "Fetch a raw PubMed record batch for a search term",
	Long: `Fetch runs a PubMed search for the given term and retrieves the matching
records as raw PubMed XML. The batch is written to --out (or stdout) for
later scoring. Requests are rate limited to NCBI's published ceiling.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Int("max-results", 0, "maximum number of records to fetch (default 50, capped at 200)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().String("out", "", "write the raw XML batch to this file (default stdout)")
	fetchCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")

	rootCmd.AddCommand(fetchCmd)
}

func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	apiKey, _ := cmd.Flags().GetString("api-key")

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIKey: secretDefault("ncbi-api-key", apiKey),
		Email:  secretDefault("eutils-email", ""),
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a PubMed search term")
	}
	query := strings.Join(args, " ")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	outPath, _ := cmd.Flags().GetString("out")

	client := eutils.NewClient(fetchConfig(cmd))

	pmids, raw, err := client.SearchAndFetch(context.Background(), query, maxResults)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "found %d PMIDs\n", len(pmids))
	if len(pmids) == 0 {
		return nil
	}

	if outPath == "" {
		_, err := os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return fmt.Errorf("writing batch: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}

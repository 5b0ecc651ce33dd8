// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the relevance-finder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/relevance-finder/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, the stored secret for key
// otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the relevance-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "relevance-finder",
	Short: "Score PubMed records against configurable relevance criteria",
	Long: `relevance-finder fetches bibliographic records from PubMed, extracts
structured fields from their XML, and computes an additive relevance score
for each record against configured criteria: notable journals, notable
institutions, topical keywords, and structural signals such as publication
type and funding.

Use fetch to retrieve a raw record batch and score to run the extraction,
scoring, and summary pipeline over it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./relevance-finder.yaml or ~/.config/relevance-finder/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("relevance-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "relevance-finder"))
		}
	}

	viper.SetEnvPrefix("RELEVANCE_FINDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

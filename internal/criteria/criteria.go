// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package criteria loads the configured relevance lists. Lists come either
// from plain-text files (one entry per line) or from a single YAML file.
// Entries are treated as free text: trimming and dropping blanks is the
// only validation.
package criteria

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/relevance-finder/pkg/types"
)

// LoadFiles reads the plain-text list files named by cfg into a Criteria
// value. An empty path leaves the corresponding list empty; a named file
// that cannot be read is an error.
func LoadFiles(cfg types.CriteriaFilesConfig) (types.Criteria, error) {
	var c types.Criteria
	var err error

	if c.Journals, err = readList(cfg.Journals); err != nil {
		return types.Criteria{}, err
	}
	if c.Institutions, err = readList(cfg.Institutions); err != nil {
		return types.Criteria{}, err
	}
	if c.SelectedInstitutions, err = readList(cfg.SelectedInstitutions); err != nil {
		return types.Criteria{}, err
	}
	if c.Keywords, err = readList(cfg.Keywords); err != nil {
		return types.Criteria{}, err
	}
	return c, nil
}

// readList reads one entry per line, trims each, and skips blank lines and
// "#" comments.
func readList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading criteria list %s: %w", path, err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading criteria list %s: %w", path, err)
	}
	return entries, nil
}

// LoadYAML reads all four lists from a single YAML file.
func LoadYAML(path string) (types.Criteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Criteria{}, fmt.Errorf("reading criteria file: %w", err)
	}
	var c types.Criteria
	if err := yaml.Unmarshal(data, &c); err != nil {
		return types.Criteria{}, fmt.Errorf("parsing criteria file: %w", err)
	}
	return trimLists(c), nil
}

func trimLists(c types.Criteria) types.Criteria {
	c.Journals = trimmed(c.Journals)
	c.Institutions = trimmed(c.Institutions)
	c.SelectedInstitutions = trimmed(c.SelectedInstitutions)
	c.Keywords = trimmed(c.Keywords)
	return c
}

func trimmed(list []string) []string {
	var out []string
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

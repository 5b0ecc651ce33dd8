// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/relevance-finder/internal/summary"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

// RunFile is the on-disk representation of one scoring run: the query, the
// criteria that drove it, the status triple, the scored records, and the
// summary tables. A saved run can be reloaded without re-querying PubMed.
type RunFile struct {
	Query     string               `yaml:"query,omitempty"`
	Criteria  types.Criteria       `yaml:"criteria"`
	Status    Status               `yaml:"status"`
	Records   []types.ScoredRecord `yaml:"records"`
	Summaries summary.Tables       `yaml:"summaries"`
	Timestamp time.Time            `yaml:"timestamp"`
}

// WriteRunFile saves a completed run to a YAML file.
func WriteRunFile(path string, rf RunFile) error {
	rf.Timestamp = time.Now()
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}

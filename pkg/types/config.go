package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "relevance-finder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the E-utilities fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities endpoint
	// (default "https://eutils.ncbi.nlm.nih.gov/entrez/eutils").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxResults bounds how many PMIDs one search may return (default 50).
	// Requests above MaxResultsCap are clamped.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxResultsCap is the hard upper bound on batch size (default 200).
	MaxResultsCap int `json:"max_results_cap" yaml:"max_results_cap"`

	// APIKey is an optional NCBI API key raising the rate limit from
	// 3 to 10 requests per second.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is an optional contact address passed to E-utilities.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// PipelineConfig holds settings for per-record batch processing.
type PipelineConfig struct {
	// Workers is the number of records processed concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// CriteriaFilesConfig names the plain-text criteria list files, one entry
// per line. Empty paths leave the corresponding list empty.
type CriteriaFilesConfig struct {
	Journals             string `json:"journals" yaml:"journals"`
	Institutions         string `json:"institutions" yaml:"institutions"`
	SelectedInstitutions string `json:"selected_institutions" yaml:"selected_institutions"`
	Keywords             string `json:"keywords" yaml:"keywords"`
}

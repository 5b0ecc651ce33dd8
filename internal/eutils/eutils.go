// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils is a minimal client for the NCBI E-utilities API: esearch
// for PMID lookup and efetch for full PubMed XML batches. The client rate
// limits itself to NCBI's published ceiling and retries transient overload
// responses; pagination is deliberately not handled.
package eutils

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/relevance-finder/internal/httputil"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

// DefaultBaseURL is the production E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const (
	searchPath = "/esearch.fcgi"
	fetchPath  = "/efetch.fcgi"
	toolName   = "relevance-finder"

	defaultMaxResults = 50
	defaultCap        = 200
)

// Client calls the E-utilities API. Construct it with NewClient; it is safe
// for concurrent use.
type Client struct {
	http    *http.Client
	cfg     types.FetchConfig
	limiter *rate.Limiter
}

// NewClient builds a client from cfg. Without an API key NCBI allows 3
// requests per second, with one 10; the limiter enforces whichever applies.
func NewClient(cfg types.FetchConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.MaxResultsCap <= 0 {
		cfg.MaxResultsCap = defaultCap
	}

	perSecond := 3
	if cfg.APIKey != "" {
		perSecond = 10
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// esearchResult mirrors the XML envelope of an esearch response.
type esearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	Count   int      `xml:"Count"`
	IDs     []string `xml:"IdList>Id"`
}

// Search runs an esearch query and returns the matching PMIDs, at most
// max (clamped to the configured cap; the configured default when max is
// not positive). An empty result is not an error.
func (c *Client) Search(ctx context.Context, query string, max int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search term is empty")
	}
	if max <= 0 {
		max = c.cfg.MaxResults
	}
	if max > c.cfg.MaxResultsCap {
		max = c.cfg.MaxResultsCap
	}

	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmax", fmt.Sprintf("%d", max))

	body, err := c.get(ctx, c.cfg.BaseURL+searchPath, params)
	if err != nil {
		return nil, fmt.Errorf("esearch: %w", err)
	}
	defer body.Close()

	var result esearchResult
	if err := xml.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("esearch: parsing response: %w", err)
	}
	return result.IDs, nil
}

// Fetch runs an efetch for the given PMIDs and returns the raw PubMed XML
// batch. PMIDs absent from the response are simply missing from the batch;
// the caller must not treat that as an error.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]byte, error) {
	if len(pmids) == 0 {
		return nil, fmt.Errorf("efetch: no PMIDs to fetch")
	}

	params := c.baseParams()
	params.Set("id", strings.Join(pmids, ","))

	body, err := c.get(ctx, c.cfg.BaseURL+fetchPath, params)
	if err != nil {
		return nil, fmt.Errorf("efetch: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("efetch: reading response: %w", err)
	}
	return data, nil
}

// SearchAndFetch chains Search and Fetch. With zero search hits it returns
// an empty id list and a nil batch without calling efetch.
func (c *Client) SearchAndFetch(ctx context.Context, query string, max int) ([]string, []byte, error) {
	pmids, err := c.Search(ctx, query, max)
	if err != nil {
		return nil, nil, err
	}
	if len(pmids) == 0 {
		return nil, nil, nil
	}
	raw, err := c.Fetch(ctx, pmids)
	if err != nil {
		return pmids, nil, err
	}
	return pmids, raw, nil
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("retmode", "xml")
	params.Set("tool", toolName)
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, endpoint)
	}
	return resp.Body, nil
}

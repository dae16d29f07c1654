package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Protocol-Lattice/toolscout/src/cache"
)

// DefaultBaseURL is the hosted Firecrawl endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev"

const (
	pageCacheSize = 64
	pageCacheTTL  = 10 * time.Minute
)

// Client talks to the Firecrawl v2 REST API. Scraped pages are cached per
// session so a page surfaced by search and then researched is fetched once.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	pages   *cache.LRU[*Document]
	logger  zerolog.Logger
}

func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
		pages:   cache.New[*Document](pageCacheSize, pageCacheTTL),
		logger:  logger.With().Str("component", "firecrawl").Logger(),
	}
}

// WebResult is one search hit. Depending on the response shape the URL may
// arrive directly or nested under metadata.
type WebResult struct {
	URL         string          `json:"url,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Metadata    *ResultMetadata `json:"metadata,omitempty"`
}

type ResultMetadata struct {
	SourceURL string `json:"sourceURL,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ResolveURL returns the result URL, falling back to the metadata fields.
func (r WebResult) ResolveURL() string {
	if r.URL != "" {
		return r.URL
	}
	if r.Metadata != nil {
		if r.Metadata.URL != "" {
			return r.Metadata.URL
		}
		return r.Metadata.SourceURL
	}
	return ""
}

// Document is one scraped page. Markdown may be empty when the page yielded
// no extractable content.
type Document struct {
	Markdown string         `json:"markdown,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats,omitempty"`
}

type searchData struct {
	Web []WebResult `json:"web"`
}

// envelope matches Firecrawl's {success, error, data} response wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    T      `json:"data"`
}

// Search returns up to limit web results for the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]WebResult, error) {
	started := time.Now()

	var env envelope[searchData]
	if err := c.post(ctx, "/v2/search", searchRequest{Query: query, Limit: limit}, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("firecrawl search: %s", env.Error)
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(env.Data.Web)).
		Dur("elapsed", time.Since(started)).
		Msg("search complete")
	return env.Data.Web, nil
}

// Scrape fetches one page as markdown, serving repeats from the page cache.
func (c *Client) Scrape(ctx context.Context, url string) (*Document, error) {
	if doc, ok := c.pages.Get(url); ok {
		c.logger.Debug().Str("url", url).Msg("page cache hit")
		return doc, nil
	}

	started := time.Now()

	var env envelope[Document]
	if err := c.post(ctx, "/v2/scrape", scrapeRequest{URL: url, Formats: []string{"markdown"}}, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("firecrawl scrape: %s", env.Error)
	}

	doc := env.Data
	c.pages.Set(url, &doc)

	c.logger.Debug().
		Str("url", url).
		Int("bytes", len(doc.Markdown)).
		Dur("elapsed", time.Since(started)).
		Msg("scrape complete")
	return &doc, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("firecrawl %s: %s: %s", path, resp.Status, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

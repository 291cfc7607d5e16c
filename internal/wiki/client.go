// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wiki queries a MediaWiki action API for page metadata.
// It is the concrete existence-probe capability used by the DYK resolver.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/article-history/internal/httputil"
	"github.com/pdiddy/article-history/pkg/types"
)

// defaultAPIURL is the English Wikipedia action API. Declared as a var so
// tests can substitute an httptest server.
var defaultAPIURL = "https://en.wikipedia.org/w/api.php"

const (
	defaultUserAgent         = "article-history/0.1"
	defaultTimeout           = 30 * time.Second
	defaultRequestsPerSecond = 5

	// maxTitlesPerQuery is the action API limit for unprivileged clients.
	maxTitlesPerQuery = 50
)

// Client fetches page status from a MediaWiki installation. It is safe for
// concurrent use; the limiter is shared by all callers.
type Client struct {
	HTTP    *http.Client
	Config  types.WikiConfig
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

// NewClient builds a Client from cfg, filling defaults for zero values.
// A nil logger is replaced with a no-op logger.
func NewClient(cfg types.WikiConfig, logger *zap.Logger) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		Config:  cfg,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		Logger:  logger,
	}
}

// FetchPageStatus asks the wiki whether each title exists, in a single
// action=query request. Titles the wiki normalized (e.g. a lowercase first
// letter) are reported under the title that was requested.
func (c *Client) FetchPageStatus(ctx context.Context, titles []string) (types.PageStatusResult, error) {
	if len(titles) == 0 {
		return types.PageStatusResult{}, fmt.Errorf("no titles to query")
	}
	if len(titles) > maxTitlesPerQuery {
		return types.PageStatusResult{}, fmt.Errorf("%d titles exceeds the per-query limit of %d", len(titles), maxTitlesPerQuery)
	}
	for _, t := range titles {
		if strings.Contains(t, "|") {
			return types.PageStatusResult{}, fmt.Errorf("title %q contains the separator character '|'", t)
		}
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return types.PageStatusResult{}, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	params := url.Values{
		"action":        {"query"},
		"titles":        {strings.Join(titles, "|")},
		"format":        {"json"},
		"formatversion": {"2"},
	}
	if c.Config.MaxLag > 0 {
		params.Set("maxlag", strconv.Itoa(c.Config.MaxLag))
	}

	apiURL := c.Config.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	reqURL := apiURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.PageStatusResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.httpClient(), req, c.Config.MaxRetries)
	if err != nil {
		return types.PageStatusResult{}, fmt.Errorf("wiki API request: %w", err)
	}
	defer resp.Body.Close()

	c.Logger.Debug("wiki query",
		zap.Strings("titles", titles),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return types.PageStatusResult{}, fmt.Errorf("wiki API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.PageStatusResult{}, fmt.Errorf("reading wiki API response: %w", err)
	}

	return decodeQueryResponse(body)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// decodeQueryResponse turns a formatversion=2 query body into page statuses.
func decodeQueryResponse(body []byte) (types.PageStatusResult, error) {
	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return types.PageStatusResult{}, fmt.Errorf("parsing wiki API response: %w", err)
	}
	if qr.Error != nil {
		return types.PageStatusResult{}, qr.Error
	}
	if qr.Query == nil {
		return types.PageStatusResult{}, fmt.Errorf("wiki API response has no query object: %s", body)
	}

	// Map normalized titles back to the form that was requested.
	requested := make(map[string]string, len(qr.Query.Normalized))
	for _, n := range qr.Query.Normalized {
		requested[n.To] = n.From
	}

	result := types.PageStatusResult{
		Pages: make([]types.PageStatus, 0, len(qr.Query.Pages)),
		Raw:   string(body),
	}
	for _, p := range qr.Query.Pages {
		title := p.Title
		if from, ok := requested[title]; ok {
			title = from
		}
		result.Pages = append(result.Pages, types.PageStatus{
			Title:   title,
			Missing: p.Missing,
			Invalid: p.Invalid,
		})
	}
	return result, nil
}

// APIError is an error object returned in a MediaWiki API response body.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wiki API error %s: %s", e.Code, e.Info)
}

// MediaWiki action API JSON structures (formatversion=2).
type queryResponse struct {
	BatchComplete bool        `json:"batchcomplete"`
	Query         *queryBlock `json:"query"`
	Error         *APIError   `json:"error"`
}

type queryBlock struct {
	Normalized []normalization `json:"normalized"`
	Pages      []queryPage     `json:"pages"`
}

type normalization struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type queryPage struct {
	PageID  int    `json:"pageid"`
	NS      int    `json:"ns"`
	Title   string `json:"title"`
	Missing bool   `json:"missing"`
	Invalid bool   `json:"invalid"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package europeana is the HTTP client for the Europeana Search API. It
// returns raw record maps and a pagination cursor; normalization into
// canonical records happens downstream.
//
// See docs/ARCHITECTURE.md § Search Client.
package europeana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/heritage-reporter/internal/httputil"
	"github.com/pdiddy/heritage-reporter/pkg/types"
)

// searchAPIBase is the Europeana search endpoint. Declared as a var so
// tests can substitute an httptest server.
var searchAPIBase = "https://api.europeana.eu/record/v2/search.json"

// CursorStart is the cursor value for the first page of a search session.
const CursorStart = "*"

// AuthError reports an authentication or quota failure from the archive.
// It is fatal to a report run, unlike an empty result page.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("archive auth/quota failure (HTTP %d): %s", e.StatusCode, e.Message)
}

// Page is one page of raw search results. An empty NextCursor signals that
// pagination is exhausted.
type Page struct {
	Records      []map[string]any
	TotalResults int
	NextCursor   string
}

// Client queries the Europeana Search API.
type Client struct {
	HTTP   *http.Client
	APIKey string
}

// TypeFilters builds TYPE query filters from record type names, which may
// arrive in any case (e.g. "text" → "TYPE:TEXT"). Names that are not a
// known record type fold to TYPE:UNKNOWN, which the archive matches nothing
// with — preferable to silently dropping a caller's filter.
func TypeFilters(names []string) []string {
	var filters []string
	for _, n := range names {
		if n == "" {
			continue
		}
		filters = append(filters, "TYPE:"+string(types.ParseRecordType(strings.ToUpper(n))))
	}
	return filters
}

// Search requests one page of results for query, with optional qf filters.
// cursor must be CursorStart for the first page and the previous page's
// NextCursor afterwards. Auth and quota failures surface as *AuthError; an
// empty result set is not an error.
func (c *Client) Search(ctx context.Context, query string, filters []string, cursor string, cfg types.SearchConfig) (Page, error) {
	if query == "" {
		return Page{}, fmt.Errorf("query is empty")
	}
	if c.APIKey == "" {
		return Page{}, &AuthError{Message: "no API key configured"}
	}
	if cursor == "" {
		cursor = CursorStart
	}

	rows := cfg.Rows
	if rows <= 0 {
		rows = 20
	}
	profile := cfg.Profile
	if profile == "" {
		profile = "rich"
	}

	params := url.Values{
		"wskey":   {c.APIKey},
		"query":   {query},
		"rows":    {fmt.Sprintf("%d", rows)},
		"profile": {profile},
		"cursor":  {cursor},
	}
	for _, f := range filters {
		params.Add("qf", f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return Page{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return Page{}, fmt.Errorf("archive search request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return Page{}, &AuthError{StatusCode: resp.StatusCode, Message: "API key rejected"}
	case http.StatusTooManyRequests:
		// DoWithRetry already backed off; a surviving 429 means the quota is spent.
		return Page{}, &AuthError{StatusCode: resp.StatusCode, Message: "request quota exhausted"}
	default:
		return Page{}, fmt.Errorf("archive search returned HTTP %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Page{}, fmt.Errorf("parsing search response: %w", err)
	}
	if !body.Success {
		return Page{}, fmt.Errorf("archive search failed: %s", body.Error)
	}

	return Page{
		Records:      body.Items,
		TotalResults: body.TotalResults,
		NextCursor:   body.NextCursor,
	}, nil
}

// searchResponse mirrors the fields of the Search API JSON body that the
// pipeline consumes.
type searchResponse struct {
	Success      bool             `json:"success"`
	Error        string           `json:"error"`
	TotalResults int              `json:"totalResults"`
	NextCursor   string           `json:"nextCursor"`
	Items        []map[string]any `json:"items"`
}

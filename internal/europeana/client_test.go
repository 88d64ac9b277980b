// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package europeana

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
		Rows:       20,
		Profile:    "rich",
	}
}

const samplePageJSON = `{
  "success": true,
  "itemsCount": 2,
  "totalResults": 42,
  "nextCursor": "AoE/Abc123",
  "items": [
    {
      "id": "/9200365/BibliographicResource_1",
      "title": ["Carte de France"],
      "type": "IMAGE",
      "provider": ["The European Library"],
      "country": ["France"]
    },
    {
      "id": "/2048128/item_2",
      "title": ["Oorkonde"],
      "type": "TEXT",
      "provider": ["Nationaal Archief"],
      "country": ["Netherlands"]
    }
  ]
}`

func newTestClient(handler http.HandlerFunc) (*Client, func()) {
	ts := httptest.NewServer(handler)
	old := searchAPIBase
	searchAPIBase = ts.URL
	return &Client{HTTP: ts.Client(), APIKey: "test-key"}, func() {
		searchAPIBase = old
		ts.Close()
	}
}

func TestSearchParsesPage(t *testing.T) {
	var gotQuery, gotCursor, gotKey string
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotCursor = r.URL.Query().Get("cursor")
		gotKey = r.URL.Query().Get("wskey")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, samplePageJSON)
	})
	defer done()

	page, err := client.Search(context.Background(), "cathedral", nil, CursorStart, testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotQuery != "cathedral" || gotCursor != "*" || gotKey != "test-key" {
		t.Errorf("request params = query %q cursor %q wskey %q", gotQuery, gotCursor, gotKey)
	}
	if len(page.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(page.Records))
	}
	if page.TotalResults != 42 {
		t.Errorf("TotalResults = %d, want 42", page.TotalResults)
	}
	if page.NextCursor != "AoE/Abc123" {
		t.Errorf("NextCursor = %q", page.NextCursor)
	}
	if id, _ := page.Records[0]["id"].(string); id != "/9200365/BibliographicResource_1" {
		t.Errorf("first record id = %q", id)
	}
}

func TestSearchExhaustionOmitsCursor(t *testing.T) {
	client, done := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"success": true, "totalResults": 1, "items": []}`)
	})
	defer done()

	page, err := client.Search(context.Background(), "anything", nil, CursorStart, testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.NextCursor != "" {
		t.Errorf("NextCursor = %q, want empty on exhaustion", page.NextCursor)
	}
	if len(page.Records) != 0 {
		t.Errorf("Records = %v, want none", page.Records)
	}
}

func TestSearchAuthFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, done := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			defer done()

			_, err := client.Search(context.Background(), "x", nil, CursorStart, testCfg())
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("error = %v, want *AuthError", err)
			}
			if authErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", authErr.StatusCode, tt.status)
			}
		})
	}
}

func TestSearchMissingKeyIsAuthError(t *testing.T) {
	client := &Client{HTTP: http.DefaultClient}
	_, err := client.Search(context.Background(), "x", nil, CursorStart, testCfg())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("error = %v, want *AuthError", err)
	}
}

func TestSearchSendsTypeFilters(t *testing.T) {
	var gotFilters []string
	client, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotFilters = r.URL.Query()["qf"]
		fmt.Fprint(w, `{"success": true, "items": []}`)
	})
	defer done()

	filters := TypeFilters([]string{"TEXT", "image"})
	if _, err := client.Search(context.Background(), "x", filters, CursorStart, testCfg()); err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"TYPE:TEXT", "TYPE:IMAGE"}
	if !reflect.DeepEqual(gotFilters, want) {
		t.Errorf("qf = %v, want %v", gotFilters, want)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client := &Client{HTTP: http.DefaultClient, APIKey: "k"}
	if _, err := client.Search(context.Background(), "", nil, CursorStart, testCfg()); err == nil {
		t.Error("expected error for empty query")
	}
}

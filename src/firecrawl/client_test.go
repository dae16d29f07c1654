package firecrawl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, scrapeCount *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content type = %q", got)
		}

		switch r.URL.Path {
		case "/v2/search":
			var req struct {
				Query string `json:"query"`
				Limit int    `json:"limit"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode search request: %v", err)
			}
			if req.Query == "nothing" {
				_, _ = w.Write([]byte(`{"success":true,"data":{"web":[]}}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"web":[
				{"url":"https://direct.example","title":"Direct"},
				{"metadata":{"sourceURL":"https://nested.example"},"title":"Nested"}
			]}}`))
		case "/v2/scrape":
			*scrapeCount++
			_, _ = w.Write([]byte(`{"success":true,"data":{"markdown":"# Page body"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestSearchDecodesResultsAndResolvesURLs(t *testing.T) {
	var scrapes int
	server := newTestServer(t, &scrapes)
	defer server.Close()

	client := NewClient(server.URL, "test-key", zerolog.Nop())
	results, err := client.Search(context.Background(), "databases", 3)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if got := results[0].ResolveURL(); got != "https://direct.example" {
		t.Fatalf("direct URL = %q", got)
	}
	if got := results[1].ResolveURL(); got != "https://nested.example" {
		t.Fatalf("metadata URL = %q", got)
	}
}

func TestSearchHandlesEmptyResults(t *testing.T) {
	var scrapes int
	server := newTestServer(t, &scrapes)
	defer server.Close()

	client := NewClient(server.URL, "test-key", zerolog.Nop())
	results, err := client.Search(context.Background(), "nothing", 1)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestScrapeCachesPages(t *testing.T) {
	var scrapes int
	server := newTestServer(t, &scrapes)
	defer server.Close()

	client := NewClient(server.URL, "test-key", zerolog.Nop())

	doc, err := client.Scrape(context.Background(), "https://direct.example")
	if err != nil {
		t.Fatalf("Scrape returned error: %v", err)
	}
	if doc.Markdown != "# Page body" {
		t.Fatalf("markdown = %q", doc.Markdown)
	}

	if _, err := client.Scrape(context.Background(), "https://direct.example"); err != nil {
		t.Fatalf("cached Scrape returned error: %v", err)
	}
	if scrapes != 1 {
		t.Fatalf("expected one upstream fetch, got %d", scrapes)
	}
}

func TestAPIErrorSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"success":false,"error":"insufficient credits"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", zerolog.Nop())
	if _, err := client.Search(context.Background(), "anything", 1); err == nil {
		t.Fatalf("expected error on non-2xx status")
	} else if !strings.Contains(err.Error(), "402") {
		t.Fatalf("error should carry the status: %v", err)
	}
}

func TestEnvelopeErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid url"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", zerolog.Nop())
	if _, err := client.Scrape(context.Background(), "notaurl"); err == nil {
		t.Fatalf("expected error from unsuccessful envelope")
	} else if !strings.Contains(err.Error(), "invalid url") {
		t.Fatalf("error should carry the API message: %v", err)
	}
}

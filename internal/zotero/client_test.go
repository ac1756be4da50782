// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zotero

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paper-notes/pkg/types"
)

func testClient(ts *httptest.Server) *Client {
	return &Client{
		HTTP:        ts.Client(),
		LibraryID:   "12345",
		LibraryType: "user",
		APIKey:      "zk_test",
		UserAgent:   "paper-notes/test",
	}
}

func overrideAPIBase(t *testing.T, url string) {
	t.Helper()
	old := apiBase
	apiBase = url
	t.Cleanup(func() { apiBase = old })
}

// --- New ---

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.ZoteroConfig
		wantNil  bool
		wantType string
	}{
		{
			"complete config",
			types.ZoteroConfig{LibraryID: "123", LibraryType: "group", APIKey: "k"},
			false, "group",
		},
		{
			"library type defaults to user",
			types.ZoteroConfig{LibraryID: "123", APIKey: "k"},
			false, "user",
		},
		{
			"missing library ID disables lookup",
			types.ZoteroConfig{APIKey: "k"},
			true, "",
		},
		{
			"missing API key disables lookup",
			types.ZoteroConfig{LibraryID: "123"},
			true, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.cfg)
			if (c == nil) != tt.wantNil {
				t.Fatalf("New() nil = %v, want %v", c == nil, tt.wantNil)
			}
			if c != nil && c.LibraryType != tt.wantType {
				t.Errorf("LibraryType = %q, want %q", c.LibraryType, tt.wantType)
			}
		})
	}
}

func TestNewSetsTimeout(t *testing.T) {
	c := New(types.ZoteroConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 7 * time.Second},
		LibraryID:  "123",
		APIKey:     "k",
	})
	if c.HTTP.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v, want 7s", c.HTTP.Timeout)
	}
}

// --- request construction ---

func TestSearchRequest(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer ts.Close()
	overrideAPIBase(t, ts.URL)

	c := testClient(ts)
	_, err := c.Search(context.Background(), "efficient attention")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got := capturedReq.URL.Path; got != "/users/12345/items" {
		t.Errorf("path = %q, want /users/12345/items", got)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("q"); got != "efficient attention" {
		t.Errorf("q param = %q, want %q", got, "efficient attention")
	}
	if got := q.Get("limit"); got != "5" {
		t.Errorf("limit param = %q, want 5", got)
	}

	if got := capturedReq.Header.Get("Zotero-API-Key"); got != "zk_test" {
		t.Errorf("Zotero-API-Key header = %q, want zk_test", got)
	}
	if got := capturedReq.Header.Get("Zotero-API-Version"); got != "3" {
		t.Errorf("Zotero-API-Version header = %q, want 3", got)
	}
	if got := capturedReq.Header.Get("User-Agent"); got != "paper-notes/test" {
		t.Errorf("User-Agent header = %q, want paper-notes/test", got)
	}
}

func TestGroupLibraryPath(t *testing.T) {
	var capturedPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		fmt.Fprint(w, `[]`)
	}))
	defer ts.Close()
	overrideAPIBase(t, ts.URL)

	c := testClient(ts)
	c.LibraryType = "group"
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if capturedPath != "/groups/12345/items" {
		t.Errorf("path = %q, want /groups/12345/items", capturedPath)
	}
}

// --- response parsing ---

func TestSearchParsesItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[
			{"key":"K1","data":{"title":"Paper One","date":"2023-05-01","abstractNote":"Abstract one."}},
			{"key":"K2","data":{"title":"Paper Two","date":"2020","abstractNote":""}}
		]`)
	}))
	defer ts.Close()
	overrideAPIBase(t, ts.URL)

	items, err := testClient(ts).Search(context.Background(), "paper")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Key != "K1" || items[0].Title != "Paper One" || items[0].AbstractNote != "Abstract one." {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Date != "2020" {
		t.Errorf("items[1].Date = %q, want 2020", items[1].Date)
	}
}

func TestSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()
	overrideAPIBase(t, ts.URL)

	_, err := testClient(ts).Search(context.Background(), "paper")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("error = %q, want substring 'HTTP 403'", err.Error())
	}
}

func TestSearchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer ts.Close()
	overrideAPIBase(t, ts.URL)

	_, err := testClient(ts).Search(context.Background(), "paper")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error = %q, want substring 'parsing'", err.Error())
	}
}

// --- Abstract ---

func TestAbstract(t *testing.T) {
	var capturedQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `[
			{"key":"K1","data":{"title":"Wrong Paper Entirely About Fish","date":"2023","abstractNote":"fish"}},
			{"key":"K2","data":{"title":"efficient attention mechanisms for transformers","date":"2023","abstractNote":"The right abstract."}}
		]`)
	}))
	defer ts.Close()
	overrideAPIBase(t, ts.URL)

	got, err := testClient(ts).Abstract(context.Background(),
		"Efficient Attention Mechanisms: for Transformers!", "2023")
	if err != nil {
		t.Fatalf("Abstract: %v", err)
	}
	if got != "The right abstract." {
		t.Errorf("Abstract = %q, want %q", got, "The right abstract.")
	}

	// The quick-search query keeps only the first five cleaned words.
	if capturedQuery != "Efficient Attention Mechanisms for Transformers" {
		t.Errorf("query = %q", capturedQuery)
	}
}

func TestAbstractEmptyTitle(t *testing.T) {
	// A title that cleans to nothing must not hit the network.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("unexpected API call")
	}))
	defer ts.Close()
	overrideAPIBase(t, ts.URL)

	got, err := testClient(ts).Abstract(context.Background(), "!!! ...", "2023")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Abstract = %q, want empty", got)
	}
}

func TestAbstractNoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer ts.Close()
	overrideAPIBase(t, ts.URL)

	got, err := testClient(ts).Abstract(context.Background(), "Some Title", "2023")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Abstract = %q, want empty for no results", got)
	}
}

// --- FindBest ---

func TestFindBest(t *testing.T) {
	items := []Item{
		{Key: "A", Title: "a study of fish migration", Date: "2019", AbstractNote: "fish"},
		{Key: "B", Title: "efficient attention mechanisms", Date: "2023-05", AbstractNote: "attention"},
		{Key: "C", Title: "efficient attention mechanisms", Date: "2020", AbstractNote: "older"},
	}

	tests := []struct {
		name    string
		items   []Item
		title   string
		year    string
		wantKey string
	}{
		{"title and year match", items, "Efficient Attention Mechanisms", "2023", "B"},
		{"year filters candidates", items, "Efficient Attention Mechanisms", "2020", "C"},
		{"containment either direction", items, "efficient attention", "2023", "B"},
		{"unknown year skips filter", items, "efficient attention mechanisms", types.UnknownYear, "B"},
		{"no title match falls back to first", items, "completely unrelated topic", "1990", "A"},
		{"empty items", nil, "anything", "2023", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindBest(tt.items, tt.title, tt.year)
			if tt.wantKey == "" {
				if got != nil {
					t.Errorf("FindBest() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("FindBest() = nil")
			}
			if got.Key != tt.wantKey {
				t.Errorf("FindBest().Key = %q, want %q", got.Key, tt.wantKey)
			}
		})
	}
}

// --- searchQuery ---

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short title unchanged", "Efficient Attention", "Efficient Attention"},
		{"truncated to five words", "one two three four five six seven", "one two three four five"},
		{"punctuation stripped", "Attention: Is, All. You? Need!", "Attention Is All You Need"},
		{"empty after cleaning", "?!.,;", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := searchQuery(tt.in); got != tt.want {
				t.Errorf("searchQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

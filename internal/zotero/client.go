// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zotero looks up papers in a Zotero library to retrieve abstracts
// the PDFs themselves rarely carry in extractable form.
package zotero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/paper-notes/internal/httputil"
	"github.com/pdiddy/paper-notes/pkg/types"
)

// apiBase is the Zotero Web API root. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.zotero.org"

// searchLimit caps how many candidates one query returns.
const searchLimit = 5

// nonAlnum strips punctuation before title matching and query building.
var nonAlnum = regexp.MustCompile(`[^\w\s]`)

// Client queries one Zotero library.
type Client struct {
	HTTP        *http.Client
	LibraryID   string
	LibraryType string
	APIKey      string
	UserAgent   string
}

// New builds a Client from config. It returns nil when the library ID or
// API key is missing; callers treat a nil client as lookup disabled.
func New(cfg types.ZoteroConfig) *Client {
	if cfg.LibraryID == "" || cfg.APIKey == "" {
		return nil
	}
	libType := cfg.LibraryType
	if libType == "" {
		libType = "user"
	}
	return &Client{
		HTTP:        &http.Client{Timeout: cfg.Timeout},
		LibraryID:   cfg.LibraryID,
		LibraryType: libType,
		APIKey:      cfg.APIKey,
		UserAgent:   cfg.UserAgent,
	}
}

// Item is one Zotero library entry, flattened to the fields the pipeline
// consumes.
type Item struct {
	Key          string
	Title        string
	Date         string
	AbstractNote string
}

// zoteroItem mirrors the API's item envelope.
type zoteroItem struct {
	Key  string `json:"key"`
	Data struct {
		Title        string `json:"title"`
		Date         string `json:"date"`
		AbstractNote string `json:"abstractNote"`
	} `json:"data"`
}

// Ping issues a one-item request to verify credentials and connectivity.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.items(ctx, url.Values{"limit": {"1"}})
	return err
}

// Search runs a quick-search query against the library and returns up to
// searchLimit candidates.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	return c.items(ctx, url.Values{
		"q":     {query},
		"limit": {fmt.Sprintf("%d", searchLimit)},
	})
}

// Abstract searches the library for the paper and returns the best match's
// abstract. No match, or a match without an abstract, yields "".
func (c *Client) Abstract(ctx context.Context, title, year string) (string, error) {
	query := searchQuery(title)
	if query == "" {
		return "", nil
	}

	items, err := c.Search(ctx, query)
	if err != nil {
		return "", err
	}

	best := FindBest(items, title, year)
	if best == nil {
		return "", nil
	}
	return best.AbstractNote, nil
}

func (c *Client) items(ctx context.Context, params url.Values) ([]Item, error) {
	reqURL := fmt.Sprintf("%s/%ss/%s/items?%s", apiBase, c.LibraryType, c.LibraryID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Zotero-API-Key", c.APIKey)
	req.Header.Set("Zotero-API-Version", "3")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Zotero API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Zotero API returned HTTP %d", resp.StatusCode)
	}

	var raw []zoteroItem
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing Zotero response: %w", err)
	}

	items := make([]Item, 0, len(raw))
	for _, zi := range raw {
		items = append(items, Item{
			Key:          zi.Key,
			Title:        zi.Data.Title,
			Date:         zi.Data.Date,
			AbstractNote: zi.Data.AbstractNote,
		})
	}
	return items, nil
}

// FindBest picks the candidate whose title contains, or is contained by,
// the extracted title (case-insensitive, punctuation ignored), optionally
// filtered by year appearing in the candidate's date. With no containment
// match it falls back to the first search result, which Zotero ranks most
// relevant.
func FindBest(items []Item, title, year string) *Item {
	if len(items) == 0 {
		return nil
	}

	cleanTitle := strings.ToLower(cleanForMatch(title))
	for i := range items {
		itemTitle := strings.ToLower(items[i].Title)
		if itemTitle == "" {
			continue
		}
		if !strings.Contains(itemTitle, cleanTitle) && !strings.Contains(cleanTitle, itemTitle) {
			continue
		}
		if year != "" && year != types.UnknownYear && !strings.Contains(items[i].Date, year) {
			continue
		}
		return &items[i]
	}

	return &items[0]
}

// searchQuery cleans the title and keeps its first five words; long exact
// titles make Zotero's quick search miss.
func searchQuery(title string) string {
	words := strings.Fields(cleanForMatch(title))
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}

// cleanForMatch strips punctuation and collapses whitespace runs so that
// containment checks are not defeated by the holes punctuation leaves.
func cleanForMatch(s string) string {
	return strings.Join(strings.Fields(nonAlnum.ReplaceAllString(s, " ")), " ")
}

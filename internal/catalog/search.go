// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title, summary,
	// and abstract.
	Query string

	// Tag filters by a single keyword tag.
	Tag string

	// Year filters by publication year.
	Year string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Tag == "" && q.Year == ""
}

// Note is a catalog row returned by Search.
type Note struct {
	Stem       string   `json:"stem" yaml:"stem"`
	Title      string   `json:"title" yaml:"title"`
	Authors    string   `json:"authors" yaml:"authors"`
	Year       string   `json:"year" yaml:"year"`
	Abstract   string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Summary    string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Gap        string   `json:"gap,omitempty" yaml:"gap,omitempty"`
	Objectives string   `json:"objectives,omitempty" yaml:"objectives,omitempty"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Search queries the catalog with optional full-text search and
// structured filters. Full-text results are ranked by relevance;
// structured-only queries sort by year then title.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Note, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT n.stem, n.title, n.authors, n.year, n.abstract,
				n.summary, n.gap, n.objectives, n.tags
			FROM notes_fts
			JOIN notes n ON n.rowid = notes_fts.rowid
			WHERE notes_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT n.stem, n.title, n.authors, n.year, n.abstract,
				n.summary, n.gap, n.objectives, n.tags
			FROM notes n
			WHERE 1=1`)
	}

	if opts.Year != "" {
		qb.WriteString(` AND n.year = ?`)
		args = append(args, opts.Year)
	}

	if opts.Tag != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(n.tags) WHERE value = ?)`)
		args = append(args, opts.Tag)
	}

	if useFTS {
		qb.WriteString(` ORDER BY notes_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY n.year, n.title`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Note
	for rows.Next() {
		var (
			n        Note
			tagsJSON sql.NullString
		)

		if err := rows.Scan(
			&n.Stem, &n.Title, &n.Authors, &n.Year, &n.Abstract,
			&n.Summary, &n.Gap, &n.Objectives, &tagsJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if tagsJSON.Valid {
			json.Unmarshal([]byte(tagsJSON.String), &n.Tags)
		}

		results = append(results, n)
	}

	return results, rows.Err()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists analyzed paper notes in SQLite and builds a
// full-text retrieval index over them.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-notes/internal/record"
	"github.com/pdiddy/paper-notes/internal/render"
	"github.com/pdiddy/paper-notes/pkg/types"
)

const dbFile = "notes.db"

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int
}

// NewStore opens or creates the catalog database at
// cfg.CatalogDir/notes.db, creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		catalogDir: cfg.CatalogDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			stem TEXT NOT NULL UNIQUE,
			title TEXT,
			authors TEXT,
			year TEXT,
			abstract TEXT,
			summary TEXT,
			gap TEXT,
			objectives TEXT,
			tags TEXT,
			file_mod_time TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_year ON notes(year)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='notes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE notes_fts USING fts5(title, summary, abstract, content=notes, content_rowid=rowid)`,
			`CREATE TRIGGER notes_ai AFTER INSERT ON notes BEGIN
				INSERT INTO notes_fts(rowid, title, summary, abstract) VALUES (new.rowid, new.title, new.summary, new.abstract);
			END`,
			`CREATE TRIGGER notes_ad AFTER DELETE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, title, summary, abstract) VALUES('delete', old.rowid, old.title, old.summary, old.abstract);
			END`,
			`CREATE TRIGGER notes_au AFTER UPDATE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, title, summary, abstract) VALUES('delete', old.rowid, old.title, old.summary, old.abstract);
				INSERT INTO notes_fts(rowid, title, summary, abstract) VALUES (new.rowid, new.title, new.summary, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of note files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads analyzed *.txt records from textDir and populates the
// database. Files whose modification time matches the stored value are
// skipped so repeat runs only touch new or changed notes.
func (s *Store) Ingest(ctx context.Context, textDir string, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(textDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading text directory %s: %w", textDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		filePath := filepath.Join(textDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", stem, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM notes WHERE stem = ?`, stem,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", stem)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", stem, err)
			summary.Failed++
			continue
		}

		content := string(data)
		rec := record.Parse(content)
		analysis := record.ParseAnalysis(content)

		if err := s.ingestNote(ctx, stem, rec, analysis, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", stem, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", stem)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s\n", stem)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestNote(ctx context.Context, stem string, rec types.PaperRecord, analysis types.AnalysisResult, modTime string) error {
	tags := render.SingularizeAll(analysis.Keywords)
	tagsJSON, _ := json.Marshal(tags)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (stem, title, authors, year, abstract, summary, gap, objectives, tags, file_mod_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(stem) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, year=excluded.year,
			abstract=excluded.abstract, summary=excluded.summary, gap=excluded.gap,
			objectives=excluded.objectives, tags=excluded.tags,
			file_mod_time=excluded.file_mod_time`,
		stem, rec.Title, rec.Authors, rec.Year,
		rec.Abstract, analysis.Summary, analysis.Gap, analysis.Objectives,
		string(tagsJSON), modTime,
	)
	if err != nil {
		return fmt.Errorf("upserting note: %w", err)
	}
	return nil
}

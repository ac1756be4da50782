// Package extract implements stage one of the pipeline: it pulls title,
// authors, year, abstract, and introduction text out of PDF papers and
// writes one flat text record per paper. Extraction is heuristic and never
// aborts a file: fields that cannot be derived degrade to sentinel values
// so every input produces a record.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paper-notes/internal/pdfio"
	"github.com/pdiddy/paper-notes/internal/record"
	"github.com/pdiddy/paper-notes/pkg/types"
)

// defaultIntroPages bounds the page scan for the introduction section.
const defaultIntroPages = 6

// Lookup fetches an abstract for a paper from a bibliographic database.
// A nil Lookup disables abstract retrieval.
type Lookup interface {
	Abstract(ctx context.Context, title, year string) (string, error)
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Failed    int
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Failed
}

// HasFailures reports whether any PDFs failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExtractOne processes a single PDF into a text record under cfg.OutputDir,
// named after the normalized filename stem. It returns the record path.
// Missing input or a non-PDF extension is an error; everything past that
// precondition degrades to sentinels instead of failing.
func ExtractOne(ctx context.Context, lookup Lookup, pdfPath string, cfg types.ExtractConfig, w io.Writer) (string, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("PDF file does not exist: %s", pdfPath)
	}
	if !strings.EqualFold(filepath.Ext(pdfPath), ".pdf") {
		return "", fmt.Errorf("not a PDF file: %s", pdfPath)
	}

	rec := readRecord(pdfPath, cfg, w)

	if lookup != nil && rec.Title != types.UnknownTitle {
		abstract, err := lookup.Abstract(ctx, rec.Title, rec.Year)
		if err != nil {
			fmt.Fprintf(w, "  warning: abstract lookup failed: %v\n", err)
		} else {
			rec.Abstract = abstract
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	stem := Normalize(pdfPath)
	outPath := filepath.Join(cfg.OutputDir, stem+".txt")
	if err := os.WriteFile(outPath, []byte(record.Format(rec)), 0o644); err != nil {
		return "", fmt.Errorf("writing record %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "extracted %s -> %s\n", filepath.Base(pdfPath), stem)
	return outPath, nil
}

// ExtractAll processes every *.pdf in pdfDir sequentially. A failed file is
// reported and skipped; the batch continues.
func ExtractAll(ctx context.Context, lookup Lookup, pdfDir string, cfg types.ExtractConfig, w io.Writer) (BatchResult, error) {
	entries, err := os.ReadDir(pdfDir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading PDF directory %s: %w", pdfDir, err)
	}

	var result BatchResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		if _, err := ExtractOne(ctx, lookup, filepath.Join(pdfDir, entry.Name()), cfg, w); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			result.Failed++
			continue
		}
		result.Extracted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed (total: %d)\n",
		result.Extracted, result.Failed, result.Total())
	return result, nil
}

// readRecord derives all PDF-sourced record fields. An unreadable PDF
// degrades to the sentinel record; the year may still come from the
// filename, which needs no PDF access.
func readRecord(pdfPath string, cfg types.ExtractConfig, w io.Writer) types.PaperRecord {
	rec := types.PaperRecord{
		Title:        types.UnknownTitle,
		Authors:      types.UnknownAuthor,
		Year:         Year(pdfPath, pdfio.DocInfo{}, ""),
		Introduction: IntroFailed,
	}

	doc, err := pdfio.Open(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "  warning: unreadable PDF %s: %v\n", filepath.Base(pdfPath), err)
		return rec
	}
	defer doc.Close()

	info := doc.Info()
	firstPage := doc.PageText(1)

	rec.Title, rec.Authors = TitleAuthors(info, firstPage)
	rec.Year = Year(pdfPath, info, firstPage)

	introPages := cfg.MaxIntroPages
	if introPages <= 0 {
		introPages = defaultIntroPages
	}
	if intro := Introduction(doc.Text(introPages)); intro != "" {
		rec.Introduction = intro
	}

	return rec
}

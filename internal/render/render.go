// Package render implements stage three of the pipeline: it turns analyzed
// text records into markdown notes with YAML frontmatter. Output files are
// never partially written; the overwrite policy is file-level.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paper-notes/pkg/types"
)

// BatchResult holds the outcome of a batch render run.
type BatchResult struct {
	Rendered int
	Skipped  int
	Failed   int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Rendered + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed rendering.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// RenderAll renders every *.txt record in textDir into cfg.OutputDir.
// Existing markdown files are skipped unless cfg.Overwrite is set; records
// without an analysis fail and the batch continues.
func RenderAll(textDir string, cfg types.RenderConfig, w io.Writer) (BatchResult, error) {
	entries, err := os.ReadDir(textDir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading text directory %s: %w", textDir, err)
	}

	var result BatchResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}

		skipped, err := renderFile(filepath.Join(textDir, entry.Name()), cfg, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			result.Failed++
		case skipped:
			result.Skipped++
		default:
			result.Rendered++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d rendered, %d skipped, %d failed (total: %d)\n",
		result.Rendered, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// RenderOne renders a single record file. Missing input or a non-text
// extension is an error.
func RenderOne(txtPath string, cfg types.RenderConfig, w io.Writer) error {
	if _, err := os.Stat(txtPath); err != nil {
		return fmt.Errorf("text file does not exist: %s", txtPath)
	}
	if !strings.EqualFold(filepath.Ext(txtPath), ".txt") {
		return fmt.Errorf("not a text file: %s", txtPath)
	}
	_, err := renderFile(txtPath, cfg, w)
	return err
}

// renderFile converts one record file to markdown. The skipped return
// reports that the output already existed.
func renderFile(txtPath string, cfg types.RenderConfig, w io.Writer) (skipped bool, err error) {
	stem := strings.TrimSuffix(filepath.Base(txtPath), filepath.Ext(txtPath))
	mdPath := filepath.Join(cfg.OutputDir, stem+".md")

	if _, err := os.Stat(mdPath); err == nil && !cfg.Overwrite {
		fmt.Fprintf(w, "skipped %s (markdown exists, use --overwrite to replace)\n", stem)
		return true, nil
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return false, fmt.Errorf("reading record: %w", err)
	}

	rec, analysis := parseNote(string(data))
	if analysis.Summary == "" && len(analysis.Keywords) == 0 {
		return false, fmt.Errorf("no analysis section in record")
	}

	doc, err := Document(rec, analysis)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return false, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(mdPath, []byte(doc), 0o644); err != nil {
		return false, fmt.Errorf("writing markdown %s: %w", mdPath, err)
	}

	fmt.Fprintf(w, "rendered %s\n", stem)
	return false, nil
}

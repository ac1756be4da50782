// Package analyze implements stage two of the pipeline: it sends each text
// record's content to the Claude API and appends the four-section analysis
// to the same file. Files are processed one at a time with a fixed courtesy
// delay between API calls; a failed call degrades that single file and the
// batch continues.
package analyze

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-notes/internal/record"
	"github.com/pdiddy/paper-notes/pkg/types"
)

// defaultCallDelay paces consecutive Claude calls.
const defaultCallDelay = time.Second

// BatchResult holds the outcome of a batch analysis run.
type BatchResult struct {
	Analyzed int
	Skipped  int
	Failed   int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Analyzed + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed analysis.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// fileStatus is the per-file outcome within a batch.
type fileStatus int

const (
	statusAnalyzed fileStatus = iota
	statusSkipped
)

// AnalyzeAll processes every *.txt record in textDir sequentially. Records
// that already carry an analysis are skipped unless cfg.Overwrite is set;
// records with neither abstract nor introduction are skipped with a
// warning.
func AnalyzeAll(ctx context.Context, a Analyzer, textDir string, cfg types.AnalyzeConfig, w io.Writer) (BatchResult, error) {
	entries, err := os.ReadDir(textDir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading text directory %s: %w", textDir, err)
	}

	delay := cfg.CallDelay
	if delay <= 0 {
		delay = defaultCallDelay
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)

	var result BatchResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}

		status, err := analyzeFile(ctx, a, limiter, filepath.Join(textDir, entry.Name()), cfg.Overwrite, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed  %s: %v\n", entry.Name(), err)
			result.Failed++
		case status == statusSkipped:
			result.Skipped++
		default:
			result.Analyzed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d analyzed, %d skipped, %d failed (total: %d)\n",
		result.Analyzed, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// AnalyzeOne processes a single record file. Missing input or a non-text
// extension is an error.
func AnalyzeOne(ctx context.Context, a Analyzer, txtPath string, cfg types.AnalyzeConfig, w io.Writer) error {
	if _, err := os.Stat(txtPath); err != nil {
		return fmt.Errorf("text file does not exist: %s", txtPath)
	}
	if !strings.EqualFold(filepath.Ext(txtPath), ".txt") {
		return fmt.Errorf("not a text file: %s", txtPath)
	}

	limiter := rate.NewLimiter(rate.Every(defaultCallDelay), 1)
	status, err := analyzeFile(ctx, a, limiter, txtPath, cfg.Overwrite, w)
	if err != nil {
		return err
	}
	if status == statusSkipped {
		fmt.Fprintf(w, "nothing to do for %s\n", filepath.Base(txtPath))
	}
	return nil
}

// analyzeFile runs the analysis for one record file and rewrites it with
// the analysis section appended.
func analyzeFile(ctx context.Context, a Analyzer, limiter *rate.Limiter, txtPath string, overwrite bool, w io.Writer) (fileStatus, error) {
	name := filepath.Base(txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return statusSkipped, fmt.Errorf("reading record: %w", err)
	}
	content := string(data)

	if record.HasAnalysis(content) && !overwrite {
		fmt.Fprintf(w, "skipped %s (analysis exists, use --overwrite to replace)\n", name)
		return statusSkipped, nil
	}

	rec := record.Parse(content)
	if rec.Abstract == "" && rec.Introduction == "" {
		fmt.Fprintf(w, "skipped %s (no abstract or introduction to analyze)\n", name)
		return statusSkipped, nil
	}

	if err := limiter.Wait(ctx); err != nil {
		return statusSkipped, err
	}

	fmt.Fprintf(w, "analyzing %s\n", name)
	analysis, err := a.Analyze(ctx, rec)
	if err != nil {
		return statusSkipped, err
	}

	updated := record.AppendAnalysis(content, analysis)
	if err := os.WriteFile(txtPath, []byte(updated), 0o644); err != nil {
		return statusSkipped, fmt.Errorf("writing record: %w", err)
	}

	return statusAnalyzed, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-notes/internal/record"
	"github.com/pdiddy/paper-notes/pkg/types"
)

// frontmatter is the YAML header block. Field order here is the output
// order.
type frontmatter struct {
	Title  string   `yaml:"title"`
	Author string   `yaml:"author"`
	Year   string   `yaml:"year"`
	Tags   []string `yaml:"tags"`
}

// Document composes the markdown note for one paper: YAML frontmatter
// followed by H1-headed sections in fixed order. Sections with empty
// content are omitted entirely, never rendered as a bare heading.
func Document(rec types.PaperRecord, analysis types.AnalysisResult) (string, error) {
	keywords := SingularizeAll(analysis.Keywords)
	summary := cleanSummary(analysis.Summary)

	fm := frontmatter{
		Title:  rec.Title,
		Author: CleanAuthor(rec.Authors),
		Year:   rec.Year,
		Tags:   keywords,
	}
	fmYAML, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "---\n%s---\n\n", fmYAML)

	section(&sb, "TITLE", rec.Title)
	section(&sb, "AUTHOR", rec.Authors)
	section(&sb, "SUMMARY", summary)
	section(&sb, "KEYWORDS", hashtagList(keywords))
	section(&sb, "RESEARCH GAP/PROBLEM", analysis.Gap)
	section(&sb, "OBJECTIVES", analysis.Objectives)
	section(&sb, "ABSTRACT", rec.Abstract)

	return sb.String(), nil
}

// section appends one H1-headed section, or nothing when the body is empty.
func section(sb *strings.Builder, heading, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(sb, "# %s\n%s\n\n", heading, body)
}

// hashtagList renders keywords as a hashtag-prefixed comma list.
func hashtagList(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	tags := make([]string, len(keywords))
	for i, kw := range keywords {
		tags[i] = "#" + kw
	}
	return strings.Join(tags, ", ")
}

// cleanSummary cuts a raw RESEARCH GAP/PROBLEM section out of the summary
// when the model folded it in instead of starting a new section.
func cleanSummary(summary string) string {
	if idx := strings.Index(summary, "RESEARCH GAP/PROBLEM:"); idx >= 0 {
		summary = summary[:idx]
	}
	return strings.TrimSpace(summary)
}

// parseNote reads a record file's fields and analysis in one pass.
func parseNote(content string) (types.PaperRecord, types.AnalysisResult) {
	return record.Parse(content), record.ParseAnalysis(content)
}

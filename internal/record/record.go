// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package record reads and writes the flat labeled-text record format that
// carries paper data between pipeline stages. The grammar is a fixed set of
// uppercase labels: scalar fields occupy the rest of their label line, block
// fields run from their label to the next blank line followed by another
// label, or end of text. The parser is deliberately permissive: a missing
// label yields a sentinel or empty string, never an error.
package record

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/paper-notes/pkg/types"
)

// AnalysisLabel marks the start of the appended model analysis section.
const AnalysisLabel = "CLAUDE ANALYSIS:"

// labelBoundary matches a blank line followed by an uppercase section label.
// The label class admits spaces and slashes so that "CLAUDE ANALYSIS:" and
// "RESEARCH GAP/PROBLEM:" terminate the preceding section.
var labelBoundary = regexp.MustCompile(`\n\n[A-Z][A-Z /]*:`)

// Write emits the record in the fixed five-field format the analyze and
// render stages re-parse. Abstract and introduction are block sections so
// they may span multiple lines.
func Write(w io.Writer, rec types.PaperRecord) error {
	_, err := fmt.Fprintf(w, "TITLE: %s\nAUTHORS: %s\nYEAR: %s\n\nABSTRACT:\n%s\n\nINTRODUCTION:\n%s\n",
		rec.Title, rec.Authors, rec.Year, rec.Abstract, rec.Introduction)
	return err
}

// Format returns the serialized record text.
func Format(rec types.PaperRecord) string {
	var sb strings.Builder
	Write(&sb, rec)
	return sb.String()
}

// Parse re-derives a PaperRecord from serialized record text. Missing
// scalar labels yield the documented sentinels; missing block labels yield
// empty strings.
func Parse(content string) types.PaperRecord {
	rec := types.PaperRecord{
		Title:        types.UnknownTitle,
		Authors:      types.UnknownAuthors,
		Year:         types.UnknownYear,
		Abstract:     BlockField(content, "ABSTRACT:"),
		Introduction: BlockField(content, "INTRODUCTION:"),
	}
	if v, ok := LineField(content, "TITLE:"); ok {
		rec.Title = v
	}
	if v, ok := LineField(content, "AUTHORS:"); ok {
		rec.Authors = v
	}
	if v, ok := LineField(content, "YEAR:"); ok {
		rec.Year = v
	}
	return rec
}

// LineField returns the trimmed remainder of the line carrying label.
// The second return reports whether the label was found at a line start.
func LineField(content, label string) (string, bool) {
	idx := labelIndex(content, label)
	if idx < 0 {
		return "", false
	}
	rest := content[idx+len(label):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest), true
}

// BlockField returns the trimmed body of the block section starting at
// label. The body runs until the next blank-line-delimited label or end of
// text. An absent label yields "".
func BlockField(content, label string) string {
	idx := labelIndex(content, label)
	if idx < 0 {
		return ""
	}
	rest := content[idx+len(label):]
	if loc := labelBoundary.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return strings.TrimSpace(rest)
}

// TailField returns everything after label to the end of text, trimmed.
// Used for the analysis section, which always terminates the record.
func TailField(content, label string) string {
	idx := labelIndex(content, label)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(content[idx+len(label):])
}

// labelIndex finds label at the start of a line, or -1.
func labelIndex(content, label string) int {
	if strings.HasPrefix(content, label) {
		return 0
	}
	idx := strings.Index(content, "\n"+label)
	if idx < 0 {
		return -1
	}
	return idx + 1
}

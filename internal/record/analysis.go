// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"strings"

	"github.com/pdiddy/paper-notes/pkg/types"
)

// HasAnalysis reports whether the record text already carries an analysis
// section.
func HasAnalysis(content string) bool {
	return labelIndex(content, AnalysisLabel) >= 0
}

// AppendAnalysis attaches the raw analysis text to the record. Any existing
// analysis section is removed first, together with everything after it, so
// re-analysis is idempotent at the file level: last write wins, old analysis
// is fully discarded, never merged.
func AppendAnalysis(content, analysis string) string {
	if idx := labelIndex(content, AnalysisLabel); idx >= 0 {
		content = content[:idx]
	}
	body := strings.TrimRight(content, "\n")
	return body + "\n\n" + AnalysisLabel + "\n" + strings.TrimSpace(analysis) + "\n"
}

// ParseAnalysis extracts the structured sub-fields out of the analysis
// section embedded in record text. It accepts either a full record or a bare
// model response (without the CLAUDE ANALYSIS: header). A section the
// response omits, or leaves empty, yields an empty value either way; the
// renderer drops empty sections rather than emitting bare headings.
func ParseAnalysis(content string) types.AnalysisResult {
	if HasAnalysis(content) {
		content = TailField(content, AnalysisLabel)
	}
	return types.AnalysisResult{
		Summary:    BlockField(content, "SUMMARY:"),
		Gap:        BlockField(content, "RESEARCH GAP/PROBLEM:"),
		Objectives: BlockField(content, "OBJECTIVES:"),
		Keywords:   splitKeywords(BlockField(content, "KEYWORDS:")),
	}
}

// splitKeywords splits a comma-separated keyword list, trimming each token
// and dropping empties.
func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	var keywords []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			keywords = append(keywords, tok)
		}
	}
	return keywords
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Filename patterns tried in strict priority order. Reference managers vary
// in punctuation style; the later patterns are strictly more permissive, so
// order preserves the cleanest output when several would match.
var (
	// "Author et al. - 2023 - Some Title"
	dashName = regexp.MustCompile(`^(.*?)\s*-\s*(\d{4})\s*-\s*(.*)$`)

	// "Author et al_2023_Some Title"
	underscoreName = regexp.MustCompile(`^(.*?)_(\d{4})_(.*)$`)

	// Anything followed by a bare 4-digit year between separators.
	looseName = regexp.MustCompile(`(.*?)[\s_](\d{4})[\s_]`)

	nonWord        = regexp.MustCompile(`\W`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// Normalize maps an arbitrary source filename to a canonical Author_Year
// identifier. When no pattern yields an author and year, the whole stem is
// sanitized instead.
func Normalize(pdfPath string) string {
	base := filepath.Base(pdfPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if m := dashName.FindStringSubmatch(base); m != nil {
		return cleanAuthorPart(m[1]) + "_" + m[2]
	}
	if m := underscoreName.FindStringSubmatch(base); m != nil {
		return cleanAuthorPart(m[1]) + "_" + m[2]
	}
	if m := looseName.FindStringSubmatch(base); m != nil {
		return cleanAuthorPart(m[1]) + "_" + m[2]
	}

	clean := nonWord.ReplaceAllString(base, "_")
	return underscoreRuns.ReplaceAllString(clean, "_")
}

// cleanAuthorPart strips periods, turns spaces into underscores, and drops
// every remaining non-word character.
func cleanAuthorPart(author string) string {
	author = strings.TrimSpace(strings.ReplaceAll(author, ".", ""))
	author = strings.ReplaceAll(author, " ", "_")
	return nonWord.ReplaceAllString(author, "")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/paper-notes/internal/pdfio"
	"github.com/pdiddy/paper-notes/pkg/types"
)

// titlePlaceholders are metadata title values that mean "no title".
var titlePlaceholders = map[string]bool{
	"":         true,
	"untitled": true,
	"document": true,
}

// authorLines spots a line that likely names the authors. Checked against
// the first authorScanLines lines of page one.
var authorLines = regexp.MustCompile(`(?i)by|authors?:|et al\.|\bcorresponding author\b`)

// authorPrefix is the label prefix stripped from a matched author line.
var authorPrefix = regexp.MustCompile(`(?i)^\s*(by|authors?:|corresponding author:?)\s*`)

const authorScanLines = 15

// Year extraction sources, in decreasing order of reliability: curated
// filenames first, then metadata date fields, then page text.
var (
	filenameYear = regexp.MustCompile(`\d{4}`)
	metadataYear = regexp.MustCompile(`D:(\d{4})`)
	pageTextYear = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// yearScanLimit bounds the page-text scan to the top of page one, where the
// publication year lives; scanning body text produces false positives.
const yearScanLimit = 1000

// TitleAuthors derives title and authors from document metadata, falling
// back to first-page heuristics. It never fails: fields that cannot be
// derived come back as sentinels.
func TitleAuthors(info pdfio.DocInfo, firstPage string) (title, authors string) {
	title = info.Title
	if titlePlaceholders[strings.ToLower(title)] {
		title = firstNonBlankLine(firstPage)
	}
	if title == "" {
		title = types.UnknownTitle
	}

	authors = info.Author
	if authors == "" || authors == types.UnknownAuthor {
		authors = authorLine(firstPage)
	}
	if authors == "" {
		authors = types.UnknownAuthor
	}
	return title, authors
}

// Year finds the publication year, trying the filename, then the metadata
// creation and modification dates, then the top of the first page. Returns
// the UnknownYear sentinel when no source has one.
func Year(pdfPath string, info pdfio.DocInfo, firstPage string) string {
	if y := filenameYear.FindString(filepath.Base(pdfPath)); y != "" {
		return y
	}
	for _, field := range []string{info.CreationDate, info.ModDate} {
		if m := metadataYear.FindStringSubmatch(field); m != nil {
			return m[1]
		}
	}
	scan := firstPage
	if len(scan) > yearScanLimit {
		scan = scan[:yearScanLimit]
	}
	if y := pageTextYear.FindString(scan); y != "" {
		return y
	}
	return types.UnknownYear
}

// firstNonBlankLine returns the first non-blank line of text, trimmed.
func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// authorLine scans the first lines of page one for an author byline and
// strips its label prefix.
func authorLine(firstPage string) string {
	lines := strings.Split(firstPage, "\n")
	if len(lines) > authorScanLines {
		lines = lines[:authorScanLines]
	}
	for _, line := range lines {
		if authorLines.MatchString(line) {
			return strings.TrimSpace(authorPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		}
	}
	return ""
}

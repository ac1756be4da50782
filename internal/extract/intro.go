// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// IntroFailed is the body written when no introduction could be extracted.
// It is ordinary record content, not an error: the pipeline still produces
// output for the file.
const IntroFailed = "Introduction extraction failed."

// introHeading matches an introduction section heading on its own line,
// with or without a leading "1." / "I." section number.
var introHeading = regexp.MustCompile(`(?mi)^[ \t]*(?:(?:1|I)[.):\s]+)?introduction[ \t.]*$`)

// nextHeading matches the heading that typically follows the introduction.
var nextHeading = regexp.MustCompile(`(?mi)^[ \t]*(?:(?:2|II)[.):\s]+\S.*|(?:materials and )?methods?|background|related works?|literature review|results)[ \t.]*$`)

// maxIntroLen caps the introduction when no terminating heading is found;
// badly segmented PDF text would otherwise swallow the whole paper.
const maxIntroLen = 8000

// Introduction extracts the introduction section body from page text.
// An empty return means no introduction heading was found; the caller
// substitutes IntroFailed.
func Introduction(text string) string {
	loc := introHeading.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]
	if next := nextHeading.FindStringIndex(body); next != nil {
		body = body[:next[0]]
	}
	if len(body) > maxIntroLen {
		body = body[:maxIntroLen]
	}
	return strings.TrimSpace(body)
}

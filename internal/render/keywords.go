// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"regexp"
	"strings"
)

// Singularize converts a keyword to singular form by suffix rule, first
// matching suffix wins. This is a heuristic, not a linguistic singularizer:
// irregular plurals come out wrong ("analyses" becomes "analys") and that
// is accepted as a documented limitation.
func Singularize(keyword string) string {
	switch {
	case strings.HasSuffix(keyword, "ies") &&
		!strings.HasSuffix(keyword, "species") && !strings.HasSuffix(keyword, "series"):
		return keyword[:len(keyword)-3] + "y"
	case strings.HasSuffix(keyword, "ses") || strings.HasSuffix(keyword, "xes") ||
		strings.HasSuffix(keyword, "zes") || strings.HasSuffix(keyword, "ches") ||
		strings.HasSuffix(keyword, "shes"):
		return keyword[:len(keyword)-2]
	case strings.HasSuffix(keyword, "s") &&
		!strings.HasSuffix(keyword, "ss") && !strings.HasSuffix(keyword, "is") &&
		!strings.HasSuffix(keyword, "us") && !strings.HasSuffix(keyword, "os") &&
		!strings.HasSuffix(keyword, "species") && !strings.HasSuffix(keyword, "series"):
		return keyword[:len(keyword)-1]
	default:
		return keyword
	}
}

// SingularizeAll maps Singularize over the keywords, dropping tokens that
// come out empty.
func SingularizeAll(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if s := Singularize(kw); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var (
	authorBadChars = regexp.MustCompile(`[^\w\s,;.-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// CleanAuthor prepares the raw author string for frontmatter: characters
// outside word, whitespace, comma, semicolon, period, and hyphen are
// stripped, and whitespace runs collapse to single spaces.
func CleanAuthor(authors string) string {
	cleaned := authorBadChars.ReplaceAllString(authors, "")
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(cleaned, " "))
}

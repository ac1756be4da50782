// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/paper-notes/pkg/types"
)

// analysisPromptTmpl is the prompt sent to the Claude API for each paper.
// It embeds whichever of abstract and introduction is available and pins
// the four-section labeled response format the record parser expects.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`I have content from a scientific paper that I need you to analyze. Please:

1. Summarize the key points in 4-6 sentences
2. Identify the main research gap or problem being addressed
3. Extract the paper's apparent objectives or research questions
4. Generate EXACTLY 5 important keywords/concepts. Choose only the most critical 5 terms that best represent the paper.

When generating keywords, please follow these rules:
- Use SINGULAR forms only (e.g., "biomarker" not "biomarkers")
- Use underscores instead of spaces (e.g., "gene_expression")
- Maintain standard capitalization for abbreviations (RNA-Seq, miRNA, DNA)

Title: {{.Title}}

{{if .Abstract}}Abstract:
{{.Abstract}}

{{end}}{{if .Introduction}}Introduction:
{{.Introduction}}

{{end}}Respond in this format:
SUMMARY:
[Your summary here]

RESEARCH GAP/PROBLEM:
[Identified research gap or problem]

OBJECTIVES:
[Research objectives/questions]

KEYWORDS:
[5 singular keywords separated by commas]
`))

// renderPrompt executes the analysis prompt template for one record.
func renderPrompt(rec types.PaperRecord) (string, error) {
	var buf bytes.Buffer
	if err := analysisPromptTmpl.Execute(&buf, rec); err != nil {
		return "", err
	}
	return buf.String(), nil
}

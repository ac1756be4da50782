// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Sentinel values written when a field cannot be extracted. Sentinels are
// ordinary data to every downstream stage, never parse errors.
const (
	UnknownTitle   = "Unknown Title"
	UnknownAuthor  = "Unknown Author"
	UnknownAuthors = "Unknown Authors"
	UnknownYear    = "Unknown Year"
)

// PaperRecord holds the fields extracted from one PDF paper. It is
// persisted as a flat labeled-text record and re-parsed by the analyze
// and render stages.
type PaperRecord struct {
	// Title is the paper title, or UnknownTitle.
	Title string `json:"title" yaml:"title"`

	// Authors is the raw author string as extracted, or a sentinel.
	Authors string `json:"authors" yaml:"authors"`

	// Year is a 4-digit publication year, or UnknownYear.
	Year string `json:"year" yaml:"year"`

	// Abstract is the paper abstract; empty when no lookup source had one.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Introduction is the extracted introduction section text.
	Introduction string `json:"introduction" yaml:"introduction"`
}

// AnalysisResult holds the structured fields parsed out of the model's
// free-text analysis response. Any section the response omits is empty.
type AnalysisResult struct {
	// Summary is a short prose summary of the paper.
	Summary string `json:"summary" yaml:"summary"`

	// Gap is the identified research gap or problem.
	Gap string `json:"gap" yaml:"gap"`

	// Objectives lists the paper's research objectives or questions.
	Objectives string `json:"objectives" yaml:"objectives"`

	// Keywords are the extracted keyword tokens in response order. The
	// prompt asks for exactly five, but parsing tolerates any count.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// IsEmpty reports whether the analysis carries no usable content.
func (a AnalysisResult) IsEmpty() bool {
	return a.Summary == "" && a.Gap == "" && a.Objectives == "" && len(a.Keywords) == 0
}

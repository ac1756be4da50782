// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/paper-notes/internal/pdfio"
	"github.com/pdiddy/paper-notes/internal/record"
	"github.com/pdiddy/paper-notes/pkg/types"
)

// --- Normalize ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"dash separated",
			"Smith et al. - 2023 - Efficient Attention.pdf",
			"Smith_et_al_2023",
		},
		{
			"underscore separated",
			"Smith et al_2023_Efficient Attention.pdf",
			"Smith_et_al_2023",
		},
		{
			"loose year between separators",
			"smith attention 2020 final.pdf",
			"smith_attention_2020",
		},
		{
			"loose year with underscores",
			"smith_2019_draft.pdf",
			"smith_2019",
		},
		{
			"no year falls back to sanitized stem",
			"random notes (v2).pdf",
			"random_notes_v2_",
		},
		{
			"dash pattern wins over loose",
			"Jones - 2021 - Paper about 1999 events.pdf",
			"Jones_2021",
		},
		{
			"full path ignored",
			"/some/dir/Lee - 2018 - A Title.pdf",
			"Lee_2018",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// --- TitleAuthors ---

func TestTitleAuthors(t *testing.T) {
	tests := []struct {
		name        string
		info        pdfio.DocInfo
		firstPage   string
		wantTitle   string
		wantAuthors string
	}{
		{
			"metadata preferred",
			pdfio.DocInfo{Title: "Real Title", Author: "Real Author"},
			"Page heading\nby Someone Else",
			"Real Title",
			"Real Author",
		},
		{
			"placeholder title falls back to first line",
			pdfio.DocInfo{Title: "Untitled", Author: "A. Author"},
			"\n  Actual Paper Title  \nmore text",
			"Actual Paper Title",
			"A. Author",
		},
		{
			"document placeholder",
			pdfio.DocInfo{Title: "document"},
			"Heuristic Title\nAuthors: Smith, J., Doe, A.",
			"Heuristic Title",
			"Smith, J., Doe, A.",
		},
		{
			"byline prefix stripped",
			pdfio.DocInfo{},
			"Some Title\nby Jane Smith and John Doe",
			"Some Title",
			"Jane Smith and John Doe",
		},
		{
			"no sources at all",
			pdfio.DocInfo{},
			"",
			types.UnknownTitle,
			types.UnknownAuthor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, authors := TitleAuthors(tt.info, tt.firstPage)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if authors != tt.wantAuthors {
				t.Errorf("authors = %q, want %q", authors, tt.wantAuthors)
			}
		})
	}
}

func TestTitleAuthorsScanWindow(t *testing.T) {
	// An author byline past the scan window must be ignored.
	page := "Title Line\n" + strings.Repeat("filler\n", authorScanLines) + "by Late Author\n"
	_, authors := TitleAuthors(pdfio.DocInfo{}, page)
	if authors != types.UnknownAuthor {
		t.Errorf("authors = %q, want sentinel for byline outside scan window", authors)
	}
}

// --- Year ---

func TestYear(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		info      pdfio.DocInfo
		firstPage string
		want      string
	}{
		{
			"filename wins",
			"Smith - 2023 - Title.pdf",
			pdfio.DocInfo{CreationDate: "D:20190101120000"},
			"Published 2001",
			"2023",
		},
		{
			"creation date second",
			"paper.pdf",
			pdfio.DocInfo{CreationDate: "D:20190101120000"},
			"Published 2001",
			"2019",
		},
		{
			"mod date when no creation date",
			"paper.pdf",
			pdfio.DocInfo{ModDate: "D:20210615080000"},
			"",
			"2021",
		},
		{
			"page text last",
			"paper.pdf",
			pdfio.DocInfo{},
			"Proceedings of the Conference, 2017.",
			"2017",
		},
		{
			"no source yields sentinel",
			"paper.pdf",
			pdfio.DocInfo{},
			"no digits here",
			types.UnknownYear,
		},
		{
			"directory digits ignored",
			"/archive2020/paper.pdf",
			pdfio.DocInfo{},
			"",
			types.UnknownYear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Year(tt.path, tt.info, tt.firstPage); got != tt.want {
				t.Errorf("Year() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYearScanLimit(t *testing.T) {
	// A year past the first-page scan limit must be ignored.
	page := strings.Repeat("x", yearScanLimit) + " 2015"
	if got := Year("paper.pdf", pdfio.DocInfo{}, page); got != types.UnknownYear {
		t.Errorf("Year() = %q, want sentinel for year beyond scan limit", got)
	}
}

// --- Introduction ---

func TestIntroduction(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"numbered heading to next section",
			"Title\n\n1. Introduction\nIntro text here.\nMore intro.\n\n2. Methods\nMethod text.",
			"Intro text here.\nMore intro.",
		},
		{
			"bare heading",
			"INTRODUCTION\nThe field has grown.\n\nBackground\nOlder work.",
			"The field has grown.",
		},
		{
			"roman numeral heading",
			"I. INTRODUCTION\nText body.\n\nII. RELATED WORK\nOther text.",
			"Text body.",
		},
		{
			"related work terminates",
			"Introduction\nSome text.\n\nRelated Works\nPrior art.",
			"Some text.",
		},
		{
			"no heading",
			"This paper has no marked sections at all.",
			"",
		},
		{
			"heading mid-line ignored",
			"the introduction of new methods is discussed",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Introduction(tt.text); got != tt.want {
				t.Errorf("Introduction() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIntroductionLengthCap(t *testing.T) {
	body := strings.Repeat("a very long sentence about nothing. ", 400)
	text := "1. Introduction\n" + body
	got := Introduction(text)
	if len(got) > maxIntroLen {
		t.Errorf("len = %d, want <= %d", len(got), maxIntroLen)
	}
	if got == "" {
		t.Error("capped introduction should not be empty")
	}
}

// --- batch driver ---

// stubLookup returns a fixed abstract and records queries.
type stubLookup struct {
	abstract string
	err      error
	queries  []string
}

func (s *stubLookup) Abstract(_ context.Context, title, year string) (string, error) {
	s.queries = append(s.queries, title+"|"+year)
	if s.err != nil {
		return "", s.err
	}
	return s.abstract, nil
}

func TestExtractOnePreconditions(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := types.ExtractConfig{OutputDir: filepath.Join(tmpDir, "out")}

	t.Run("missing file", func(t *testing.T) {
		var buf strings.Builder
		_, err := ExtractOne(context.Background(), nil, filepath.Join(tmpDir, "nope.pdf"), cfg, &buf)
		if err == nil || !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("err = %v, want 'does not exist'", err)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(tmpDir, "notes.txt")
		if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
			t.Fatal(err)
		}
		var buf strings.Builder
		_, err := ExtractOne(context.Background(), nil, path, cfg, &buf)
		if err == nil || !strings.Contains(err.Error(), "not a PDF") {
			t.Errorf("err = %v, want 'not a PDF'", err)
		}
	})
}

func TestExtractOneCorruptPDFDegradesToSentinels(t *testing.T) {
	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "Smith - 2022 - Broken.pdf")
	if err := os.WriteFile(pdfPath, []byte("not really a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := types.ExtractConfig{OutputDir: filepath.Join(tmpDir, "out")}
	var buf strings.Builder
	outPath, err := ExtractOne(context.Background(), nil, pdfPath, cfg, &buf)
	if err != nil {
		t.Fatalf("ExtractOne: %v", err)
	}

	if filepath.Base(outPath) != "Smith_2022.txt" {
		t.Errorf("output name = %q, want Smith_2022.txt", filepath.Base(outPath))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	rec := record.Parse(string(data))

	if rec.Title != types.UnknownTitle {
		t.Errorf("Title = %q, want sentinel", rec.Title)
	}
	if rec.Authors != types.UnknownAuthor {
		t.Errorf("Authors = %q, want sentinel", rec.Authors)
	}
	// The year still comes from the filename, which needs no PDF access.
	if rec.Year != "2022" {
		t.Errorf("Year = %q, want 2022", rec.Year)
	}
	if rec.Introduction != IntroFailed {
		t.Errorf("Introduction = %q, want %q", rec.Introduction, IntroFailed)
	}
	if !strings.Contains(buf.String(), "unreadable PDF") {
		t.Errorf("output should warn about unreadable PDF: %s", buf.String())
	}
}

func TestExtractOneSkipsLookupForUnknownTitle(t *testing.T) {
	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "Smith - 2022 - Broken.pdf")
	if err := os.WriteFile(pdfPath, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	lookup := &stubLookup{abstract: "should not be used"}
	cfg := types.ExtractConfig{OutputDir: filepath.Join(tmpDir, "out")}
	var buf strings.Builder
	if _, err := ExtractOne(context.Background(), lookup, pdfPath, cfg, &buf); err != nil {
		t.Fatal(err)
	}

	if len(lookup.queries) != 0 {
		t.Errorf("lookup called %d times for an unknown title, want 0", len(lookup.queries))
	}
}

func TestExtractAll(t *testing.T) {
	tmpDir := t.TempDir()
	pdfDir := filepath.Join(tmpDir, "pdfs")
	if err := os.MkdirAll(pdfDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// Two corrupt-but-present PDFs and one non-PDF to be ignored.
	for _, name := range []string{"A - 2020 - One.pdf", "B - 2021 - Two.pdf"} {
		if err := os.WriteFile(filepath.Join(pdfDir, name), []byte("junk"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(pdfDir, "readme.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := types.ExtractConfig{OutputDir: filepath.Join(tmpDir, "out")}
	var buf strings.Builder
	result, err := ExtractAll(context.Background(), nil, pdfDir, cfg, &buf)
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}

	if result.Extracted != 2 {
		t.Errorf("Extracted = %d, want 2", result.Extracted)
	}
	if result.Failed != 0 {
		t.Errorf("Failed = %d, want 0", result.Failed)
	}
	if result.Total() != 2 {
		t.Errorf("Total() = %d, want 2", result.Total())
	}
	if !strings.Contains(buf.String(), "Batch summary: 2 extracted, 0 failed") {
		t.Errorf("missing batch summary: %s", buf.String())
	}

	for _, stem := range []string{"A_2020", "B_2021"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, stem+".txt")); err != nil {
			t.Errorf("record %s.txt not written: %v", stem, err)
		}
	}
}

func TestExtractAllMissingDir(t *testing.T) {
	var buf strings.Builder
	_, err := ExtractAll(context.Background(), nil, "/nonexistent/dir", types.ExtractConfig{}, &buf)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestBatchResultHasFailures(t *testing.T) {
	if (BatchResult{Extracted: 3}).HasFailures() {
		t.Error("no failures expected")
	}
	if !(BatchResult{Extracted: 1, Failed: 2}).HasFailures() {
		t.Error("failures expected")
	}
}

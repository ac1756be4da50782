// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio wraps the PDF library behind the two capabilities the
// pipeline consumes: document metadata and per-page plain text.
package pdfio

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocInfo holds the document information dictionary fields the extractor
// reads. Absent entries are empty strings.
type DocInfo struct {
	Title        string
	Author       string
	CreationDate string
	ModDate      string
}

// Document is an open PDF file.
type Document struct {
	f *os.File
	r *pdf.Reader
}

// Open opens the PDF at path. The caller must Close the document.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &Document{f: f, r: r}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.f.Close()
}

// Info reads the trailer's Info dictionary. Malformed or missing entries
// degrade to empty strings.
func (d *Document) Info() DocInfo {
	info := d.r.Trailer().Key("Info")
	return DocInfo{
		Title:        strings.TrimSpace(info.Key("Title").Text()),
		Author:       strings.TrimSpace(info.Key("Author").Text()),
		CreationDate: strings.TrimSpace(info.Key("CreationDate").Text()),
		ModDate:      strings.TrimSpace(info.Key("ModDate").Text()),
	}
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.r.NumPage()
}

// PageText returns the plain text of page n (1-based). Pages that cannot
// be decoded yield an empty string rather than an error; a single bad page
// must not abort extraction.
func (d *Document) PageText(n int) string {
	if n < 1 || n > d.r.NumPage() {
		return ""
	}
	page := d.r.Page(n)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// Text concatenates the plain text of the first maxPages pages. A
// non-positive maxPages reads the whole document.
func (d *Document) Text(maxPages int) string {
	if maxPages <= 0 || maxPages > d.r.NumPage() {
		maxPages = d.r.NumPage()
	}
	var sb strings.Builder
	for i := 1; i <= maxPages; i++ {
		sb.WriteString(d.PageText(i))
		sb.WriteString("\n")
	}
	return sb.String()
}

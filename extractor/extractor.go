// Package extractor turns uploaded resume documents into plain text.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// UnsupportedTypeError reports a filename extension the extractor does not
// recognize. Surfaced to callers as a client error.
type UnsupportedTypeError struct {
	Ext string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.Ext)
}

// ExtractionError wraps a document parser failure for a recognized type.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "error extracting text: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extract returns the plain text of a document, dispatching on the
// filename's extension (case-insensitive). It is a pure function of its
// inputs and safe for concurrent use.
func Extract(content []byte, filename string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDocx(content)
	case ".txt":
		if !utf8.Valid(content) {
			return "", &ExtractionError{Err: errors.New("file is not valid UTF-8 text")}
		}
		return string(content), nil
	default:
		return "", &UnsupportedTypeError{Ext: ext}
	}
}

// extractPDF joins the plain text of every page with single spaces, in page
// order. A page with no extractable text still contributes an empty segment
// so the separators stay consistent.
func extractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, _ := page.GetPlainText(nil)
		pages = append(pages, text)
	}
	return joinPages(pages), nil
}

func joinPages(pages []string) string {
	return strings.Join(pages, " ")
}

// extractDocx joins the text of every non-empty paragraph with single
// spaces, in document order. Empty paragraphs are dropped outright, unlike
// the PDF case.
func extractDocx(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", &ExtractionError{Err: err}
	}
	defer doc.Close()

	var parts []string
	for _, text := range paragraphs(doc.Editable().GetContent()) {
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

var textRun = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>`)

var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// paragraphs returns the text of each paragraph of a document.xml body, in
// document order. A paragraph's text is the concatenation of its runs.
func paragraphs(document string) []string {
	parts := strings.Split(document, "</w:p>")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		var b strings.Builder
		for _, m := range textRun.FindAllStringSubmatch(part, -1) {
			b.WriteString(xmlEntities.Replace(m[1]))
		}
		out = append(out, b.String())
	}
	return out
}

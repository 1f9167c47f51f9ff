package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// PDFReader extracts text from PDF documents
type PDFReader struct{}

// NewPDFReader creates a PDF reader
func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// Name returns "pdf"
func (r *PDFReader) Name() string {
	return "pdf"
}

// CanHandle matches the %PDF- header or a .pdf extension
func (r *PDFReader) CanHandle(path string, head []byte) bool {
	return bytes.HasPrefix(head, pdfMagic) || extensionIs(path, ".pdf")
}

// Read extracts the plain text of the first opts.MaxPages pages
func (r *PDFReader) Read(raw []byte, opts Options) (text string, warnings []string, err error) {
	// The parser panics on some malformed cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			text, warnings = "", nil
			err = fmt.Errorf("%w: %v", ErrCorrupt, rec)
		}
	}()

	if !bytes.HasPrefix(raw, pdfMagic) {
		return "", nil, fmt.Errorf("%w: missing pdf header", ErrCorrupt)
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	total := reader.NumPage()
	pages := total
	if opts.MaxPages > 0 && opts.MaxPages < total {
		pages = opts.MaxPages
		warnings = append(warnings, fmt.Sprintf("read %d of %d pages", pages, total))
	}

	var b strings.Builder
	for n := 1; n <= pages; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", nil, fmt.Errorf("%w: page %d: %v", ErrCorrupt, n, err)
		}

		b.WriteString(pageText)
		b.WriteString("\n")
	}

	// Font-encoded glyphs occasionally decode to invalid UTF-8
	text = strings.ToValidUTF8(b.String(), "\uFFFD")
	if strings.TrimSpace(text) == "" {
		warnings = append(warnings, "pdf contains no extractable text (scanned image?)")
	}

	return text, warnings, nil
}

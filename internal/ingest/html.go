package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// HTMLReader extracts visible text from HTML safety data sheets
type HTMLReader struct{}

// NewHTMLReader creates an HTML reader
func NewHTMLReader() *HTMLReader {
	return &HTMLReader{}
}

// Name returns "html"
func (r *HTMLReader) Name() string {
	return "html"
}

// CanHandle matches .html/.htm or markup at the start of the file
func (r *HTMLReader) CanHandle(path string, head []byte) bool {
	if extensionIs(path, ".html", ".htm") {
		return true
	}
	lower := bytes.ToLower(bytes.TrimSpace(head))
	return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
}

// Read returns the text nodes of the document, one per line
func (r *HTMLReader) Read(raw []byte, opts Options) (string, []string, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	text := extractVisibleText(doc)

	var warnings []string
	if strings.TrimSpace(text) == "" {
		warnings = append(warnings, "html contains no visible text")
	}

	return text, warnings, nil
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

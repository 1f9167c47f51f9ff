package ingest

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextReader reads plain text exports
type TextReader struct{}

// NewTextReader creates a text reader
func NewTextReader() *TextReader {
	return &TextReader{}
}

// Name returns "text"
func (r *TextReader) Name() string {
	return "text"
}

// CanHandle matches .txt
func (r *TextReader) CanHandle(path string, head []byte) bool {
	return extensionIs(path, ".txt")
}

// Read returns the file as UTF-8. Files that are not valid UTF-8 are assumed
// to be Windows-1252, the usual encoding of older European sheet exports.
func (r *TextReader) Read(raw []byte, opts Options) (string, []string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil, nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return "", nil, fmt.Errorf("%w: decode windows-1252: %v", ErrCorrupt, err)
	}

	return string(decoded), []string{"text is not UTF-8, decoded as Windows-1252"}, nil
}

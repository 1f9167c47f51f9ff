package ingest

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Document is the plain text recovered from one file
type Document struct {
	Path       string
	SourceType string // Reader name: pdf, html, text
	Text       string
	Warnings   []string
}

// Options tune a single read
type Options struct {
	MaxPages int // PDF pages to read, 0 = all
}

// Reader turns one document format into plain text
type Reader interface {
	// Name returns the source type the reader produces
	Name() string

	// CanHandle checks the path and the leading bytes of the file
	CanHandle(path string, head []byte) bool

	// Read extracts the text
	Read(raw []byte, opts Options) (text string, warnings []string, err error)
}

// Registry picks a reader for a document
type Registry struct {
	readers  []Reader
	fallback Reader
}

// NewRegistry creates a registry with the built-in readers
func NewRegistry() *Registry {
	registry := &Registry{
		readers: make([]Reader, 0),
	}

	registry.Register(NewPDFReader())
	registry.Register(NewHTMLReader())
	registry.Register(NewTextReader())

	// Unknown extensions are read as text unless the content is binary
	registry.fallback = NewTextReader()

	return registry
}

// Register adds a reader; earlier registrations win
func (r *Registry) Register(reader Reader) {
	r.readers = append(r.readers, reader)
}

// FindReader returns the reader for the document, or nil if none applies
func (r *Registry) FindReader(path string, raw []byte) Reader {
	head := raw
	if len(head) > 1024 {
		head = head[:1024]
	}

	for _, reader := range r.readers {
		if reader.CanHandle(path, head) {
			return reader
		}
	}

	if r.fallback != nil && !looksBinary(raw) {
		return r.fallback
	}
	return nil
}

// looksBinary flags data with more than 2% NUL bytes
func looksBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	nulls := bytes.Count(data, []byte{0})
	return float64(nulls)/float64(len(data)) > 0.02
}

func extensionIs(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

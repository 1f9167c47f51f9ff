package ingest

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by DocumentReadError
var (
	// ErrNotFound indicates the document path does not exist.
	ErrNotFound = errors.New("ingest: document not found")

	// ErrUnsupportedType indicates no reader handles the document.
	ErrUnsupportedType = errors.New("ingest: unsupported document type")

	// ErrTooLarge indicates the document exceeds the configured byte limit.
	ErrTooLarge = errors.New("ingest: document exceeds size limit")

	// ErrCorrupt indicates the document could not be parsed.
	ErrCorrupt = errors.New("ingest: document is unreadable or corrupt")
)

// DocumentReadError reports a failure to turn a document into text
type DocumentReadError struct {
	Path string
	Op   string // open, detect, read, parse
	Err  error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

func readError(path, op string, err error) error {
	return &DocumentReadError{Path: path, Op: op, Err: err}
}

package ingest

import (
	"os"
	"path/filepath"
	"strings"
)

// documentExtensions are the file suffixes that make a one-line input a path
var documentExtensions = []string{".pdf", ".txt", ".html", ".htm"}

// InputKind tells how typed input must be handled
type InputKind int

const (
	InputText InputKind = iota // Literal safety data sheet text
	InputPath                  // Path to a document on disk
)

// Input is classified user input
type Input struct {
	Kind InputKind
	Path string // Set for InputPath
	Text string // Set for InputText
}

// Classify decides whether input names a document or is the text itself.
// It is a path only if, once trimmed, it is a single line ending in a known
// document extension (any case) and an existing regular file.
func Classify(input string) Input {
	trimmed := strings.TrimSpace(input)
	trimmed = strings.Trim(trimmed, `"'`) // Paths dragged into terminals come quoted

	if trimmed != "" && !strings.ContainsAny(trimmed, "\r\n") && HasDocumentExtension(trimmed) {
		if info, err := os.Stat(trimmed); err == nil && info.Mode().IsRegular() {
			return Input{Kind: InputPath, Path: trimmed}
		}
	}

	return Input{Kind: InputText, Text: input}
}

// HasDocumentExtension reports whether path ends in a supported extension
func HasDocumentExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range documentExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

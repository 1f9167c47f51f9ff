package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ppiankov/ghsextract/internal/model"
)

const defaultMaxBytes = 50 * 1024 * 1024

// Ingester reads documents from disk and converts them to text
type Ingester struct {
	registry *Registry
	maxBytes int64
	maxPages int
	logger   *slog.Logger
}

// NewIngester creates an ingester from configuration
func NewIngester(cfg model.IngestConfig, logger *slog.Logger) *Ingester {
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Ingester{
		registry: NewRegistry(),
		maxBytes: maxBytes,
		maxPages: cfg.MaxPages,
		logger:   logger,
	}
}

// MaxPages returns the configured PDF page limit
func (i *Ingester) MaxPages() int {
	return i.maxPages
}

// ReadDocument extracts the text of the document at path. Every failure is a
// *DocumentReadError.
func (i *Ingester) ReadDocument(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, readError(path, "open", err)
	}

	raw, err := i.readFileLimited(path)
	if err != nil {
		return nil, err
	}

	reader := i.registry.FindReader(path, raw)
	if reader == nil {
		return nil, readError(path, "detect", ErrUnsupportedType)
	}

	i.logger.Debug("reading document", "path", path, "type", reader.Name(), "bytes", len(raw))

	text, warnings, err := reader.Read(raw, Options{MaxPages: i.maxPages})
	if err != nil {
		return nil, readError(path, "parse", err)
	}

	for _, w := range warnings {
		i.logger.Warn("document warning", "path", path, "warning", w)
	}

	return &Document{
		Path:       path,
		SourceType: reader.Name(),
		Text:       text,
		Warnings:   warnings,
	}, nil
}

// readFileLimited reads at most maxBytes, failing if the file is larger
func (i *Ingester) readFileLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, readError(path, "open", ErrNotFound)
		}
		return nil, readError(path, "open", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, readError(path, "open", err)
	}
	if info.IsDir() {
		return nil, readError(path, "open", fmt.Errorf("%w: is a directory", ErrUnsupportedType))
	}

	lr := &io.LimitedReader{R: f, N: i.maxBytes + 1}
	raw, err := io.ReadAll(lr)
	if err != nil {
		return nil, readError(path, "read", err)
	}
	if int64(len(raw)) > i.maxBytes {
		return nil, readError(path, "read", fmt.Errorf("%w (%d bytes)", ErrTooLarge, i.maxBytes))
	}

	return raw, nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ppiankov/ghsextract/internal/cache"
	"github.com/ppiankov/ghsextract/internal/extract"
	"github.com/ppiankov/ghsextract/internal/ingest"
	"github.com/ppiankov/ghsextract/internal/model"
)

// SourceStdin names reports built from typed or piped text
const SourceStdin = "stdin"

// Pipeline orchestrates document reading, caching and statement extraction
type Pipeline struct {
	ingester  *ingest.Ingester
	extractor *extract.Extractor
	cache     cache.Cache // nil when caching is disabled
	cacheTTL  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Pipeline{
		ingester:  ingest.NewIngester(cfg.Ingest, logger),
		extractor: extract.NewExtractor(cfg.Extract.UnicodeNormalize),
		cache:     cache.New(cfg.Cache),
		cacheTTL:  cfg.Cache.DiskTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// ExtractText extracts statements from text that is already plain
func (p *Pipeline) ExtractText(text string, source string, sourceType string) *model.Report {
	result := p.extractor.Extract(text)

	report := &model.Report{
		Source:        source,
		SourceType:    sourceType,
		ExtractedAt:   p.now().UTC(),
		Hazard:        result.Statements(model.CategoryH),
		Precautionary: result.Statements(model.CategoryP),
		Supplemental:  result.Statements(model.CategoryEUH),
	}

	p.logger.Debug("extracted statements",
		"source", source,
		"occurrences", result.Occurrences(),
		"unique", result.Len())

	if result.Empty() {
		p.logger.Warn("no statements were found", "source", source)
	}

	return report
}

// ExtractDocument reads the document at path and extracts its statements.
// Read failures are returned as *ingest.DocumentReadError.
func (p *Pipeline) ExtractDocument(ctx context.Context, path string) (*model.Report, error) {
	doc, cached, err := p.readDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	report := p.ExtractText(doc.Text, path, doc.SourceType)
	report.Cached = cached
	report.Warnings = append([]string(nil), doc.Warnings...)

	return report, nil
}

// ExtractInput extracts from classified input: the document it names, or
// the text itself.
func (p *Pipeline) ExtractInput(ctx context.Context, in ingest.Input) (*model.Report, error) {
	if in.Kind == ingest.InputPath {
		return p.ExtractDocument(ctx, in.Path)
	}
	return p.ExtractText(in.Text, SourceStdin, "text"), nil
}

// cachedDocument is the cache payload for one document
type cachedDocument struct {
	SourceType string   `json:"source_type"`
	Text       string   `json:"text"`
	Warnings   []string `json:"warnings,omitempty"`
}

// readDocument returns the document text, from cache when possible
func (p *Pipeline) readDocument(ctx context.Context, path string) (*ingest.Document, bool, error) {
	var key string
	if p.cache != nil {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			key = cache.DocumentKey(path, info.Size(), info.ModTime(), p.ingester.MaxPages())
			if data, found := p.cache.Get(key); found {
				var entry cachedDocument
				if err := json.Unmarshal(data, &entry); err == nil {
					p.logger.Debug("document cache hit", "path", path)
					return &ingest.Document{
						Path:       path,
						SourceType: entry.SourceType,
						Text:       entry.Text,
						Warnings:   entry.Warnings,
					}, true, nil
				}
			}
		}
	}

	doc, err := p.ingester.ReadDocument(ctx, path)
	if err != nil {
		return nil, false, err
	}

	if key != "" {
		data, err := json.Marshal(cachedDocument{
			SourceType: doc.SourceType,
			Text:       doc.Text,
			Warnings:   doc.Warnings,
		})
		if err == nil {
			err = p.cache.Set(key, data, p.cacheTTL)
		}
		if err != nil {
			// A cache failure never fails the extraction
			p.logger.Warn("document cache write failed", "path", path, "error", err)
		}
	}

	return doc, false, nil
}

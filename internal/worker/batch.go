package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/ghsextract/internal/model"
)

// DocumentExtractor extracts statements from one document
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, path string) (*model.Report, error)
}

// ExtractJob extracts one document of a batch
type ExtractJob struct {
	Index     int
	Path      string
	Extractor DocumentExtractor
	Limiter   *Limiter
}

// Execute runs the job
func (j *ExtractJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Path); err != nil {
			return &ExtractResult{Index: j.Index, Path: j.Path, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	report, err := j.Extractor.ExtractDocument(ctx, j.Path)
	if err != nil {
		return &ExtractResult{Index: j.Index, Path: j.Path, Error: err}
	}
	return &ExtractResult{Index: j.Index, Path: j.Path, Report: report}
}

// ExtractResult is the outcome for one document
type ExtractResult struct {
	Index  int
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the result
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts many documents concurrently
type BatchProcessor struct {
	extractor   DocumentExtractor
	concurrency int
	limiter     *Limiter
	logger      *slog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(extractor DocumentExtractor, concurrency int, readsPerSecond float64, burst int, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BatchProcessor{
		extractor:   extractor,
		concurrency: concurrency,
		limiter:     NewLimiter(readsPerSecond, burst),
		logger:      logger,
	}
}

// ProcessPaths extracts every path and returns one result per path, in input
// order. Documents cut off by ctx get ctx's error.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ExtractResult {
	if len(paths) == 0 {
		return []*ExtractResult{}
	}

	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &ExtractJob{
			Index:     i,
			Path:      path,
			Extractor: b.extractor,
			Limiter:   b.limiter,
		}
	}

	b.logger.Debug("starting batch", "documents", len(paths), "workers", b.concurrency)
	results := NewPool(ctx, b.concurrency).Run(jobs)

	ordered := make([]*ExtractResult, len(paths))
	for _, result := range results {
		r := result.(*ExtractResult)
		ordered[r.Index] = r
	}

	for i, r := range ordered {
		if r != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		ordered[i] = &ExtractResult{Index: i, Path: paths[i], Error: fmt.Errorf("not processed: %w", err)}
	}

	return ordered
}

// ProcessFile reads document paths from a list file and extracts them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*ExtractResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Blank lines and # comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ppiankov/ghsextract/internal/ingest"
	"github.com/ppiankov/ghsextract/internal/pipeline"
	"github.com/ppiankov/ghsextract/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency    int
	batchTimeout   time.Duration
	readsPerSecond float64
	outputPath     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract statement codes from a list of documents in parallel",
	Long: `Batch processes many safety data sheets concurrently:
- Read document paths from the input file (one per line, # comments allowed)
- Extract documents in parallel with a configurable worker count
- Print one line per document, in list order: path TAB H TAB P TAB EUH
- Report unreadable documents on stderr and keep their line with empty fields

Example:
  ghsextract batch sds-list.txt
  ghsextract batch sds-list.txt --concurrency 8 --output codes.tsv
  ghsextract batch sds-list.txt --format json --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&readsPerSecond, "reads-per-second", 0, "document reads per second per directory, 0 is unlimited")

	// Output flags
	batchCmd.Flags().StringVar(&outputPath, "output", "", "write results to a file instead of stdout")
	batchCmd.Flags().StringVar(&format, "format", "line", "output format (line, json, yaml)")
	batchCmd.Flags().IntVar(&maxPages, "max-pages", 3, "PDF pages to read, 0 reads all")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the document text cache")
	batchCmd.Flags().BoolVar(&noNormalize, "no-normalize", false, "skip Unicode NFKC normalization before scanning")
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyExtractFlags(cmd, cfg)
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	if cmd.Flags().Changed("reads-per-second") {
		cfg.RateLimiting.ReadsPerSecond = readsPerSecond
	}

	renderer, err := pipeline.NewRenderer(cfg.Output.Format)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, batchTimeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  ghsextract Batch Processing\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", batchTimeout)
	if outputPath != "" {
		fmt.Fprintf(stderr, "  Output:       %s\n", outputPath)
	}
	fmt.Fprintf(stderr, "\n")

	logger := newLogger(cfg)
	p := pipeline.NewPipeline(cfg, logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers,
		cfg.RateLimiting.ReadsPerSecond, cfg.RateLimiting.BurstSize, logger)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, createErr := os.Create(outputPath)
		if createErr != nil {
			return fmt.Errorf("create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output file: %w", closeErr)
			}
		}()
		out = f
	}

	batchErr := writeBatch(out, stderr, renderer, results)

	// Summary
	failed := countFailures(results)
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(stderr, "  Success:   %d\n", len(results)-failed)
	fmt.Fprintf(stderr, "  Failures:  %d\n", failed)
	fmt.Fprintf(stderr, "\n")

	return batchErr
}

// writeBatch renders results in order and reports failures on stderr.
// It returns an error when any document failed.
func writeBatch(out, stderr io.Writer, renderer *pipeline.Renderer, results []*worker.ExtractResult) error {
	entries := make([]pipeline.BatchEntry, len(results))
	for i, result := range results {
		entries[i] = pipeline.BatchEntry{Path: result.Path, Report: result.Report}
		if result.Error != nil {
			entries[i].Error = result.Error.Error()
			var readErr *ingest.DocumentReadError
			if errors.As(result.Error, &readErr) {
				fmt.Fprintf(stderr, "✗ %v\n", result.Error)
			} else {
				fmt.Fprintf(stderr, "✗ %s: %v\n", result.Path, result.Error)
			}
		}
	}

	if err := renderer.RenderBatch(out, entries); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if failed := countFailures(results); failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func countFailures(results []*worker.ExtractResult) int {
	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
		}
	}
	return failed
}

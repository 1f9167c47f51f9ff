package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ppiankov/ghsextract/internal/ingest"
	"github.com/ppiankov/ghsextract/internal/model"
	"github.com/ppiankov/ghsextract/internal/pipeline"
	"github.com/ppiankov/ghsextract/internal/worker"
	"github.com/spf13/cobra"
)

var (
	format      string
	maxPages    int
	noCache     bool
	noNormalize bool
	pause       bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [path...]",
	Short: "Extract statement codes from documents or pasted text",
	Long: `Extract prints the H, P and EUH statements of a safety data sheet as one
tab-separated line that can be pasted into a spreadsheet.

Without arguments, text is read from the terminal until an empty line.
Input that is a single line naming an existing .pdf, .txt, .html or .htm
file is read as that document; anything else is scanned as text.

With one argument, that document is read. With several, each is read
concurrently and printed as "path TAB H TAB P TAB EUH".

Example:
  ghsextract extract
  ghsextract extract sds/acetone.pdf
  ghsextract extract sds/*.pdf --format json
  ghsextract extract sds/acetone.pdf --max-pages 0 --no-cache`,
	Args: cobra.ArbitraryArgs,
	RunE: runExtract,
}

func init() {
	addExtractFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}

// addExtractFlags registers the extraction flags on cmd. The root command
// runs extract by default and carries the same flags.
func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&format, "format", model.FormatLine, "output format (line, json, yaml)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 3, "PDF pages to read, 0 reads all")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the document text cache")
	cmd.Flags().BoolVar(&noNormalize, "no-normalize", false, "skip Unicode NFKC normalization before scanning")
	cmd.Flags().BoolVar(&pause, "pause", false, "wait for ENTER before exiting")
}

// applyExtractFlags overlays explicitly set flags onto cfg
func applyExtractFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("max-pages") {
		cfg.Ingest.MaxPages = maxPages
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noNormalize {
		cfg.Extract.UnicodeNormalize = false
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyExtractFlags(cmd, cfg)

	renderer, err := pipeline.NewRenderer(cfg.Output.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := newLogger(cfg)
	p := pipeline.NewPipeline(cfg, logger)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	switch len(args) {
	case 0:
		err = extractInteractive(ctx, cmd.InOrStdin(), stdout, stderr, p, renderer)
	case 1:
		var report *model.Report
		report, err = p.ExtractDocument(ctx, args[0])
		if err == nil {
			err = showReport(stdout, stderr, renderer, report)
		}
	default:
		processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers,
			cfg.RateLimiting.ReadsPerSecond, cfg.RateLimiting.BurstSize, logger)
		results := processor.ProcessPaths(ctx, args)
		err = writeBatch(stdout, stderr, renderer, results)
	}

	if pause {
		waitForEnter(cmd.InOrStdin(), stderr)
	}

	return err
}

// extractInteractive reads pasted text or a document path from in
func extractInteractive(ctx context.Context, in io.Reader, stdout, stderr io.Writer, p *pipeline.Pipeline, renderer *pipeline.Renderer) error {
	fmt.Fprintln(stderr, "Paste text or insert path to a document. Finish input with an empty line.")

	text, err := ingest.ReadInteractive(in, stderr)
	if err != nil {
		return err
	}
	fmt.Fprintln(stderr)

	input := ingest.Classify(text)
	switch {
	case input.Kind == ingest.InputPath:
		fmt.Fprintf(stderr, "Interpreting input as path to %s file.\n", documentType(input.Path))
	case looksLikePath(text):
		fmt.Fprintln(stderr, "File could not be found. Interpreting input as plain text.")
	}

	report, err := p.ExtractInput(ctx, input)
	if err != nil {
		return err
	}

	return showReport(stdout, stderr, renderer, report)
}

// showReport prints notices on stderr and the rendered report on stdout
func showReport(stdout, stderr io.Writer, renderer *pipeline.Renderer, report *model.Report) error {
	for _, warning := range report.Warnings {
		fmt.Fprintf(stderr, "Warning: %s\n", warning)
	}

	if report.Empty() {
		fmt.Fprintln(stderr, "No statements were found.")
	} else if renderer.Format() == model.FormatLine {
		fmt.Fprintln(stderr, "The following line can be copy + pasted into a spreadsheet.")
	}

	return renderer.Render(stdout, report)
}

// looksLikePath reports whether text is one line ending in a document extension
func looksLikePath(text string) bool {
	trimmed := strings.Trim(strings.TrimSpace(text), `"'`)
	return !strings.ContainsAny(trimmed, "\r\n") && ingest.HasDocumentExtension(trimmed)
}

// documentType names a document by its extension, e.g. "PDF"
func documentType(path string) string {
	return strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
}

func waitForEnter(in io.Reader, stderr io.Writer) {
	fmt.Fprintln(stderr, "Press ENTER to terminate.")
	_, _ = bufio.NewReader(in).ReadString('\n')
}

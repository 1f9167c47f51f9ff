package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ppiankov/ghsextract/internal/extract"
	"github.com/ppiankov/ghsextract/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for an output format other than line, json or yaml
var ErrUnknownFormat = errors.New("pipeline: unknown output format")

// Renderer writes reports in one output format
type Renderer struct {
	format string
}

// NewRenderer creates a renderer for format
func NewRenderer(format string) (*Renderer, error) {
	switch format {
	case model.FormatLine, model.FormatJSON, model.FormatYAML:
		return &Renderer{format: format}, nil
	case "":
		return &Renderer{format: model.FormatLine}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Format returns the output format
func (r *Renderer) Format() string {
	return r.format
}

// Render writes a single report
func (r *Renderer) Render(w io.Writer, report *model.Report) error {
	switch r.format {
	case model.FormatJSON:
		return writeJSON(w, report)
	case model.FormatYAML:
		return writeYAML(w, report)
	default:
		_, err := fmt.Fprintln(w, Line(report))
		return err
	}
}

// BatchEntry is one row of batch output
type BatchEntry struct {
	Path   string        `json:"path" yaml:"path"`
	Report *model.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// RenderBatch writes batch rows in order. In line format each row is
// "path TAB H TAB P TAB EUH"; failed documents keep their row with empty fields.
func (r *Renderer) RenderBatch(w io.Writer, entries []BatchEntry) error {
	switch r.format {
	case model.FormatJSON:
		return writeJSON(w, entries)
	case model.FormatYAML:
		return writeYAML(w, entries)
	}

	for _, entry := range entries {
		line := extract.JoinFields(nil, nil, nil)
		if entry.Report != nil {
			line = Line(entry.Report)
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", entry.Path, extract.FieldSeparator, line); err != nil {
			return err
		}
	}
	return nil
}

// Line renders a report as the single spreadsheet line
func Line(report *model.Report) string {
	return extract.JoinFields(report.Hazard, report.Precautionary, report.Supplemental)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return enc.Close()
}

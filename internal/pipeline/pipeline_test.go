package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/ghsextract/internal/ingest"
	"github.com/ppiankov/ghsextract/internal/model"
)

const sampleSection = `SECTION 2: Hazards identification
H319 Causes serious eye irritation. H335 May cause respiratory irritation.
H315 Causes skin irritation.
P261 Avoid breathing dust. P302 + P352 IF ON SKIN: Wash with plenty of water.
P280 Wear protective gloves. P305+P351+P338 IF IN EYES: Rinse cautiously.
P271 Use only outdoors. EUH061 Contains substance.
H319 P261 EUH061`

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func TestPipeline_ExtractText(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)

	report := p.ExtractText(sampleSection, SourceStdin, "text")

	want := "H319, H335, H315\tP261, P302 + P352, P280, P305 + P351 + P338, P271\tEUH061"
	if got := Line(report); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
	if report.Source != SourceStdin {
		t.Errorf("Expected source %q, got %q", SourceStdin, report.Source)
	}
	if report.ExtractedAt.IsZero() {
		t.Error("Expected ExtractedAt to be set")
	}
}

func TestPipeline_ExtractText_NoStatements(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)

	report := p.ExtractText("no codes here, just text", SourceStdin, "text")

	if !report.Empty() {
		t.Errorf("Expected empty report, got %+v", report)
	}
	if got := Line(report); got != "\t\t" {
		t.Errorf("Expected two tabs, got %q", got)
	}
}

func TestPipeline_ExtractDocument_Cached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sds.txt")
	if err := os.WriteFile(path, []byte(sampleSection), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(testConfig(t), nil)

	first, err := p.ExtractDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractDocument failed: %v", err)
	}
	if first.Cached {
		t.Error("First read should not come from cache")
	}
	if first.SourceType != "text" {
		t.Errorf("Expected source type text, got %q", first.SourceType)
	}

	second, err := p.ExtractDocument(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractDocument failed: %v", err)
	}
	if !second.Cached {
		t.Error("Second read should come from cache")
	}
	if Line(first) != Line(second) {
		t.Errorf("Cached result differs: %q vs %q", Line(first), Line(second))
	}
}

func TestPipeline_ExtractDocument_CacheDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sds.txt")
	if err := os.WriteFile(path, []byte("H300"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t)
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg, nil)

	for i := 0; i < 2; i++ {
		report, err := p.ExtractDocument(context.Background(), path)
		if err != nil {
			t.Fatalf("ExtractDocument failed: %v", err)
		}
		if report.Cached {
			t.Errorf("Read %d came from cache with caching disabled", i)
		}
	}
}

func TestPipeline_ExtractDocument_NotFound(t *testing.T) {
	p := NewPipeline(testConfig(t), nil)

	_, err := p.ExtractDocument(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	if !errors.Is(err, ingest.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	var readErr *ingest.DocumentReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Expected *DocumentReadError, got %T", err)
	}
}

func TestPipeline_ExtractInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sds.txt")
	if err := os.WriteFile(path, []byte("EUH014 H225"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(testConfig(t), nil)

	tests := []struct {
		name       string
		input      string
		wantSource string
		wantLine   string
	}{
		{"text", "H300 + H310 P260", SourceStdin, "H300 + H310\tP260\t"},
		{"path", path, path, "H225\t\tEUH014"},
		{"quoted path", `"` + path + `"`, path, "H225\t\tEUH014"},
		{"missing path is text", "/nope/H200.pdf", SourceStdin, "H200\t\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := p.ExtractInput(context.Background(), ingest.Classify(tt.input))
			if err != nil {
				t.Fatalf("ExtractInput failed: %v", err)
			}
			if report.Source != tt.wantSource {
				t.Errorf("Expected source %q, got %q", tt.wantSource, report.Source)
			}
			if got := Line(report); got != tt.wantLine {
				t.Errorf("Line() = %q, want %q", got, tt.wantLine)
			}
		})
	}
}

func TestRenderer_Formats(t *testing.T) {
	report := &model.Report{
		Source:        "a.pdf",
		SourceType:    "pdf",
		Hazard:        []string{"H300"},
		Precautionary: []string{"P302 + P352"},
	}

	t.Run("line", func(t *testing.T) {
		r, err := NewRenderer("")
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, report); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "H300\tP302 + P352\t\n" {
			t.Errorf("Unexpected line output %q", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		r, err := NewRenderer(model.FormatJSON)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, report); err != nil {
			t.Fatal(err)
		}
		var decoded model.Report
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if len(decoded.Precautionary) != 1 || decoded.Precautionary[0] != "P302 + P352" {
			t.Errorf("Unexpected precautionary list %v", decoded.Precautionary)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		r, err := NewRenderer(model.FormatYAML)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := r.Render(&buf, report); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "source_type: pdf") {
			t.Errorf("YAML missing source_type:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "- H300") {
			t.Errorf("YAML missing hazard list:\n%s", buf.String())
		}
	})
}

func TestRenderer_UnknownFormat(t *testing.T) {
	_, err := NewRenderer("xml")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestRenderer_RenderBatch(t *testing.T) {
	r, err := NewRenderer(model.FormatLine)
	if err != nil {
		t.Fatal(err)
	}

	entries := []BatchEntry{
		{Path: "a.pdf", Report: &model.Report{Hazard: []string{"H300"}, Supplemental: []string{"EUH066"}}},
		{Path: "b.pdf", Error: "open b.pdf: document not found"},
	}

	var buf bytes.Buffer
	if err := r.RenderBatch(&buf, entries); err != nil {
		t.Fatal(err)
	}

	want := "a.pdf\tH300\t\tEUH066\nb.pdf\t\t\t\n"
	if buf.String() != want {
		t.Errorf("RenderBatch() = %q, want %q", buf.String(), want)
	}
}

package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "aceton.pdf")
	upperPath := filepath.Join(dir, "ETHANOL.PDF")
	txtPath := filepath.Join(dir, "sheet.txt")
	for _, p := range []string{pdfPath, upperPath, txtPath} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		input string
		kind  InputKind
		path  string
	}{
		{"existing pdf", pdfPath, InputPath, pdfPath},
		{"surrounding whitespace", "  " + pdfPath + "  \n", InputPath, pdfPath},
		{"quoted path", `"` + pdfPath + `"`, InputPath, pdfPath},
		{"upper case extension", upperPath, InputPath, upperPath},
		{"text file", txtPath, InputPath, txtPath},
		{"missing file", filepath.Join(dir, "missing.pdf"), InputText, ""},
		{"unknown extension", filepath.Join(dir, "sheet.docx"), InputText, ""},
		{"directory", dir, InputText, ""},
		{"multi-line", pdfPath + "\n" + pdfPath, InputText, ""},
		{"sheet text", "H315: Verursacht Hautreizungen.\nP261: Staub nicht einatmen.", InputText, ""},
		{"empty", "", InputText, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Classify(tt.input)
			if in.Kind != tt.kind {
				t.Fatalf("expected kind %d, got %d", tt.kind, in.Kind)
			}
			if in.Path != tt.path {
				t.Errorf("expected path %q, got %q", tt.path, in.Path)
			}
			if in.Kind == InputText && in.Text != tt.input {
				t.Errorf("expected text to be passed through unchanged")
			}
		})
	}
}

func TestHasDocumentExtension(t *testing.T) {
	for _, p := range []string{"a.pdf", "a.PDF", "b.Html", "c.htm", "d.txt"} {
		if !HasDocumentExtension(p) {
			t.Errorf("expected %s to be a document", p)
		}
	}
	for _, p := range []string{"a.doc", "pdf", "a.pdf.bak", strings.Repeat("x", 10)} {
		if HasDocumentExtension(p) {
			t.Errorf("expected %s not to be a document", p)
		}
	}
}

package model

import "time"

// Report is the per-document extraction outcome rendered by the CLI
type Report struct {
	Source      string    `json:"source" yaml:"source"`                       // Document path, or "stdin" for typed text
	SourceType  string    `json:"source_type" yaml:"source_type"`             // pdf, html, text
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`           // When the extraction ran
	Cached      bool      `json:"cached,omitempty" yaml:"cached,omitempty"`   // Document text came from cache

	Hazard        []string `json:"hazard" yaml:"hazard"`               // H-statements, first-discovery order
	Precautionary []string `json:"precautionary" yaml:"precautionary"` // P-statements, first-discovery order
	Supplemental  []string `json:"supplemental" yaml:"supplemental"`   // EUH-statements, first-discovery order

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Statements returns the list for a category
func (r *Report) Statements(c Category) []string {
	switch c {
	case CategoryH:
		return r.Hazard
	case CategoryP:
		return r.Precautionary
	case CategoryEUH:
		return r.Supplemental
	default:
		return nil
	}
}

// Empty reports whether no statements were found in any category
func (r *Report) Empty() bool {
	return len(r.Hazard)+len(r.Precautionary)+len(r.Supplemental) == 0
}

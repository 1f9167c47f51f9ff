package extract

import (
	"strings"

	"github.com/ppiankov/ghsextract/internal/model"
)

const (
	// FieldSeparator separates the H, P and EUH fields
	FieldSeparator = "\t"
	// ListSeparator separates statements within a field
	ListSeparator = ", "
)

// FormatLine renders the result as "H-list TAB P-list TAB EUH-list".
// Empty categories yield empty fields; both tabs are always present.
func FormatLine(r *Result) string {
	return JoinFields(
		r.Statements(model.CategoryH),
		r.Statements(model.CategoryP),
		r.Statements(model.CategoryEUH),
	)
}

// JoinFields joins the three category lists into one line
func JoinFields(hazard, precautionary, supplemental []string) string {
	return strings.Join([]string{
		strings.Join(hazard, ListSeparator),
		strings.Join(precautionary, ListSeparator),
		strings.Join(supplemental, ListSeparator),
	}, FieldSeparator)
}

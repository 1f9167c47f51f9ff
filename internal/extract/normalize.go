package extract

import (
	"strings"

	"github.com/ppiankov/ghsextract/internal/model"
	"golang.org/x/text/unicode/norm"
)

// CombinedSeparator joins the codes of a combined statement
const CombinedSeparator = " + "

// Canonical returns the display and identity form of a match: "H315" for a
// single code, "P305 + P351 + P338" for a combined statement.
func Canonical(m model.RawMatch) string {
	prefix := m.Category.Prefix()

	parts := make([]string, len(m.Codes))
	for i, code := range m.Codes {
		parts[i] = prefix + code
	}

	return strings.Join(parts, CombinedSeparator)
}

// NormalizeText folds compatibility characters (full-width letters, digits and
// plus signs, no-break spaces) to their ASCII forms before scanning.
func NormalizeText(text string) string {
	return norm.NFKC.String(text)
}

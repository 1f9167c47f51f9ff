package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/ghsextract/internal/model"
)

// codeDigits is the number of digits following every prefix
const codeDigits = 3

// codePrefixes is checked in order; EUH must come before H
var codePrefixes = []struct {
	prefix   string
	category model.Category
}{
	{"EUH", model.CategoryEUH},
	{"H", model.CategoryH},
	{"P", model.CategoryP},
}

// Match scans text for statement codes and returns them ordered by offset.
//
// Codes of the same category joined by "+" (whitespace allowed on both sides)
// are returned as one combined match. Chains are extended greedily; a "+" that
// is not followed by a code of the same category ends the chain at the last
// code and is left unconsumed. Matches never overlap.
func Match(text string) []model.RawMatch {
	var matches []model.RawMatch

	for i := 0; i < len(text); {
		category, code, end, ok := codeAt(text, i)
		if !ok {
			i++
			continue
		}

		m := model.RawMatch{
			Category: category,
			Codes:    []string{code},
			Start:    i,
			End:      end,
		}

		for {
			next, nextEnd, ok := continuation(text, m.End, category)
			if !ok {
				break
			}
			m.Codes = append(m.Codes, next)
			m.End = nextEnd
		}

		matches = append(matches, m)
		i = m.End
	}

	return matches
}

// codeAt recognizes a single code starting exactly at offset i
func codeAt(text string, i int) (model.Category, string, int, bool) {
	for _, p := range codePrefixes {
		if !strings.HasPrefix(text[i:], p.prefix) {
			continue
		}

		// "EUH" with too few digits must not be read as an H code
		if p.category == model.CategoryH && i >= 2 && text[i-2:i] == "EU" {
			return 0, "", 0, false
		}

		start := i + len(p.prefix)
		end := start + codeDigits
		if end > len(text) || !isDigits(text[start:end]) {
			return 0, "", 0, false
		}

		return p.category, text[start:end], end, true
	}

	return 0, "", 0, false
}

// continuation looks for "<space>+<space><code>" at pos with a code of the given category
func continuation(text string, pos int, category model.Category) (string, int, bool) {
	j := skipSpace(text, pos)
	if j >= len(text) || text[j] != '+' {
		return "", 0, false
	}

	k := skipSpace(text, j+1)
	if k >= len(text) {
		return "", 0, false
	}

	next, code, end, ok := codeAt(text, k)
	if !ok || next != category {
		return "", 0, false
	}

	return code, end, true
}

// skipSpace returns the offset of the first non-space rune at or after pos
func skipSpace(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

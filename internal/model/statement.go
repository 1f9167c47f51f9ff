package model

// Category is the regulatory family a statement code belongs to
type Category int

const (
	CategoryH   Category = iota // Hazard statements (GHS), e.g. H315
	CategoryP                   // Precautionary statements (GHS), e.g. P261
	CategoryEUH                 // EU supplemental hazard statements, e.g. EUH061
)

// Categories lists every category in output order
var Categories = []Category{CategoryH, CategoryP, CategoryEUH}

// Prefix returns the literal code prefix for the category
func (c Category) Prefix() string {
	switch c {
	case CategoryH:
		return "H"
	case CategoryP:
		return "P"
	case CategoryEUH:
		return "EUH"
	default:
		return ""
	}
}

func (c Category) String() string {
	if p := c.Prefix(); p != "" {
		return p
	}
	return "unknown"
}

// Valid reports whether c is one of the three known categories
func (c Category) Valid() bool {
	return c >= CategoryH && c <= CategoryEUH
}

// RawMatch is a contiguous span of source text recognized as one statement.
// A combined statement ("P302 + P352") has more than one code.
type RawMatch struct {
	Category Category
	Codes    []string // Three-digit component codes in the order encountered
	Start    int      // Byte offset of the first code prefix
	End      int      // Byte offset just past the last code
}

// Combined reports whether the match joins two or more codes
func (m RawMatch) Combined() bool {
	return len(m.Codes) > 1
}

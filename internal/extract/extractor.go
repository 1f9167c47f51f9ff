package extract

// Extractor turns safety data sheet text into a Result
type Extractor struct {
	unicodeNormalize bool
}

// NewExtractor creates an extractor. With unicodeNormalize the text is folded
// with NFKC before scanning.
func NewExtractor(unicodeNormalize bool) *Extractor {
	return &Extractor{unicodeNormalize: unicodeNormalize}
}

// Extract scans text left to right and collects each statement the first
// time it is seen.
func (e *Extractor) Extract(text string) *Result {
	if e.unicodeNormalize {
		text = NormalizeText(text)
	}

	result := NewResult()
	for _, m := range Match(text) {
		result.Add(m.Category, Canonical(m))
	}

	return result
}

// Extract runs the default extractor (Unicode normalization on)
func Extract(text string) *Result {
	return NewExtractor(true).Extract(text)
}

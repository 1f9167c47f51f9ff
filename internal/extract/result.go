package extract

import "github.com/ppiankov/ghsextract/internal/model"

// Result holds the unique statements of one text per category, in the order
// they were first added.
type Result struct {
	lists       [numCategories][]string
	seen        [numCategories]map[string]struct{}
	occurrences int
}

const numCategories = 3

// NewResult creates an empty result
func NewResult() *Result {
	r := &Result{}
	for i := range r.seen {
		r.seen[i] = make(map[string]struct{})
	}
	return r
}

// Add appends statement to the category's list unless it is already there.
// It reports whether the statement was new.
func (r *Result) Add(category model.Category, statement string) bool {
	if !category.Valid() || statement == "" {
		return false
	}

	r.occurrences++

	idx := int(category)
	if _, dup := r.seen[idx][statement]; dup {
		return false
	}

	r.seen[idx][statement] = struct{}{}
	r.lists[idx] = append(r.lists[idx], statement)
	return true
}

// Statements returns a copy of the category's list
func (r *Result) Statements(category model.Category) []string {
	if !category.Valid() {
		return nil
	}
	list := r.lists[int(category)]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Len returns the number of unique statements across all categories
func (r *Result) Len() int {
	n := 0
	for _, list := range r.lists {
		n += len(list)
	}
	return n
}

// Occurrences returns how many statements were added, duplicates included
func (r *Result) Occurrences() int {
	return r.occurrences
}

// Empty reports whether no statement was found
func (r *Result) Empty() bool {
	return r.Len() == 0
}

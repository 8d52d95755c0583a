// Package match scores how well a query aligns against a candidate text.
// The alignment itself is delegated to sahilm/fuzzy, the same scorer the
// terminal UI ecosystem uses for command palettes.
package match

import (
	"github.com/sahilm/fuzzy"
)

// Best returns the aligner's score for query against text. ok is false when
// the aligner finds no alignment at all, which callers treat as "drop this
// candidate" rather than "score zero".
func Best(query, text string) (score int, ok bool) {
	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

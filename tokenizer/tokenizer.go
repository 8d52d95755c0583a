// Package tokenizer produces the two token streams the index is built on:
// normalised whole words for exact-term matching and character trigrams for
// partial matching. It lower-cases input and splits on non-alphanumeric
// boundaries; it deliberately does no stemming or stop-word removal.
package tokenizer

import (
	"strings"
	"unicode"
)

// gramSize is the rune length of the substrings emitted by Grams.
const gramSize = 3

// Words breaks text into lowercased whole-word tokens. The output is not
// deduplicated; repeated words appear once per occurrence.
func Words(text string) []string {
	text = strings.ToLower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Grams emits every contiguous trigram of each word in text. Words shorter
// than the gram size are emitted whole, so no input word disappears from the
// gram stream. Like Words, the output is not deduplicated.
func Grams(text string) []string {
	words := Words(text)
	grams := make([]string, 0, len(words)*4)
	for _, word := range words {
		runes := []rune(word)
		if len(runes) <= gramSize {
			grams = append(grams, word)
			continue
		}
		for i := 0; i+gramSize <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+gramSize]))
		}
	}
	return grams
}

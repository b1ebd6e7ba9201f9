package utils

import (
	"strings"
	"unicode"
)

// isWordRune reports whether r belongs to a word: letters, digits and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Words splits text into lower-cased words. Any run of non-word runes is a separator.
func Words(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}

// HasFrequentWord reports whether any single word occurs at least minCount
// times in text. It stops at the first word reaching the threshold.
func HasFrequentWord(text string, minCount int) bool {
	if minCount <= 0 {
		return true
	}
	counts := make(map[string]int)
	for _, w := range Words(text) {
		counts[w]++
		if counts[w] >= minCount {
			return true
		}
	}
	return false
}

package textnorm

import (
	"strings"
	"unicode"
)

// Tokenize splits normalized text on whitespace and keeps only alphabetic
// tokens. Non-alphabetic tokens are dropped here so that the matcher never
// has to count them.
func Tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := fields[:0]
	for _, f := range fields {
		if IsAlpha(f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// IsAlpha reports whether s is non-empty and made only of letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

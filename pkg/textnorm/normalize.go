// Package textnorm turns raw book text into the lowercase, punctuation-free
// lines and word tokens that syllable counting works on.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes letters and drops combining marks, so "café"
// becomes "cafe" rather than losing the letter. Transformers carry state,
// so a fresh chain is built per call.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases each physical line, folds accents, deletes every
// character that is not a-z or a space, collapses whitespace and drops lines
// that end up empty. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		if cleaned := NormalizeLine(ln); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return strings.Join(out, "\n")
}

// NormalizeLine applies Normalize to a single line.
func NormalizeLine(line string) string {
	lower := strings.ToLower(line)
	if !isASCII(lower) {
		lower = foldAccents(lower)
	}

	var b strings.Builder
	b.Grow(len(lower))
	pendingSpace := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
		// everything else is deleted without introducing a boundary
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

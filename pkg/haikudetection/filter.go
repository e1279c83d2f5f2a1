package haikudetection

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// LineFilter rejects degenerate lines at emission time.
type LineFilter struct {
	MinWords     int
	MinChars     int
	RejectDigits bool
}

// DefaultLineFilter returns the filter used by DefaultConfig.
func DefaultLineFilter() LineFilter {
	return DefaultConfig().LineFilter()
}

// Valid reports whether words form an acceptable line.
func (f LineFilter) Valid(words []string) bool {
	if len(words) == 0 || len(words) < f.MinWords {
		return false
	}

	if f.RejectDigits {
		for _, w := range words {
			if strings.ContainsAny(w, "0123456789") {
				return false
			}
		}
	}

	width := 0
	for i, w := range words {
		if i > 0 {
			width++
		}
		width += runewidth.StringWidth(w)
	}
	return width >= f.MinChars
}

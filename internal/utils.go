package internal

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

func IsDebugMode() bool {
	isDebug := strings.ToLower(os.Getenv("HKDT_DEBUG"))
	if isDebug == "true" || isDebug == "1" {
		return true
	}
	return false
}

// fitWidth truncates text to at most width display cells.
func fitWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(text, width, "…")
}

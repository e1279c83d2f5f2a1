package scan

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// languageSampleBytes bounds how much of a body is handed to the detector.
const languageSampleBytes = 2000

// LanguageFilter decides whether a document body is worth scanning. The
// second result is the detected language code, for logging.
type LanguageFilter interface {
	Accept(text string) (bool, string)
}

// AllowAll accepts every document.
type AllowAll struct{}

func (AllowAll) Accept(string) (bool, string) { return true, "" }

// WhatlangFilter accepts bodies whose opening sample is detected as the
// target ISO 639-1 language.
type WhatlangFilter struct {
	Target string
}

// NewWhatlangFilter returns a filter for target, defaulting to English.
func NewWhatlangFilter(target string) WhatlangFilter {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		target = "en"
	}
	return WhatlangFilter{Target: target}
}

func (f WhatlangFilter) Accept(text string) (bool, string) {
	sample := sampleText(text, languageSampleBytes)
	if strings.TrimSpace(sample) == "" {
		return false, ""
	}
	info := whatlanggo.Detect(sample)
	code := info.Lang.Iso6391()
	return code == f.Target, code
}

// sampleText cuts text to at most n bytes without splitting a rune.
func sampleText(text string, n int) string {
	if len(text) <= n {
		return text
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// Package syllable counts syllables in English words using a pronunciation
// lexicon in CMU Pronouncing Dictionary format, with a vowel-run heuristic
// for words the lexicon does not know.
package syllable

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// errSkipLine signals that a line carries no entry (comment, blank, malformed).
var errSkipLine = errors.New("skip line")

// Pronunciation is one ordered list of phoneme symbols, e.g. ["HH", "AH0", "L", "OW1"].
type Pronunciation []string

// Syllables returns the number of syllabic phonemes, i.e. those ending in a stress digit.
func (p Pronunciation) Syllables() int {
	n := 0
	for _, ph := range p {
		if ph == "" {
			continue
		}
		last := ph[len(ph)-1]
		if last >= '0' && last <= '9' {
			n++
		}
	}
	return n
}

// Lexicon maps lowercase words to their alternative pronunciations.
// It is immutable once returned by ParseLexicon and safe for concurrent reads.
type Lexicon struct {
	entries map[string][]Pronunciation
}

// Stats holds loader statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	SkippedLines int
	ParsedLines  int
	UniqueWords  int
}

// NewLexicon builds a lexicon from an in-memory table. Keys are lowercased.
func NewLexicon(entries map[string][]Pronunciation) *Lexicon {
	lex := &Lexicon{entries: make(map[string][]Pronunciation, len(entries))}
	for word, prons := range entries {
		key := strings.ToLower(word)
		lex.entries[key] = append(lex.entries[key], prons...)
	}
	return lex
}

// Pronunciations returns the pronunciations recorded for word, if any.
func (l *Lexicon) Pronunciations(word string) ([]Pronunciation, bool) {
	if l == nil {
		return nil, false
	}
	prons, ok := l.entries[strings.ToLower(word)]
	return prons, ok
}

// Has reports whether the lexicon has an entry for word.
func (l *Lexicon) Has(word string) bool {
	_, ok := l.Pronunciations(word)
	return ok
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// LoadLexicon reads a CMU-format dictionary from path. Paths ending in
// ".gz" are decompressed on the fly.
func LoadLexicon(path string) (*Lexicon, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close() // nolint: errcheck

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("open gzip lexicon: %w", err)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}

	return ParseLexicon(r)
}

// ParseLexicon reads CMU Pronouncing Dictionary lines from r:
//
//	WORD  PH1 PH2 ...
//	WORD(2)  PH1 PH2 ...
//	;;; comment
//
// Lines that cannot be parsed are skipped and counted in Stats.
func ParseLexicon(r io.Reader) (*Lexicon, Stats, error) {
	lex := &Lexicon{entries: make(map[string][]Pronunciation)}
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		word, pron, err := parseLine(line)
		if err != nil {
			if strings.HasPrefix(line, ";;;") {
				stats.CommentLines++
			} else if strings.TrimSpace(line) != "" {
				stats.SkippedLines++
			}
			continue
		}

		stats.ParsedLines++
		lex.entries[word] = append(lex.entries[word], pron)
	}

	if err := scanner.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("reading lexicon: %w", err)
	}

	stats.UniqueWords = len(lex.entries)
	return lex, stats, nil
}

// parseLine parses a single dictionary line into a lowercase word and its phonemes.
func parseLine(line string) (string, Pronunciation, error) {
	if line == "" || strings.HasPrefix(line, ";;;") {
		return "", nil, errSkipLine
	}

	// Older releases separate the word with two spaces, newer ones with one.
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", nil, errSkipLine
	}

	word := stripVariant(fields[0])
	if word == "" {
		return "", nil, errSkipLine
	}

	// Trailing "#" comments appear in cmudict-0.7b derivatives.
	phonemes := fields[1:]
	for i, ph := range phonemes {
		if strings.HasPrefix(ph, "#") {
			phonemes = phonemes[:i]
			break
		}
	}
	if len(phonemes) == 0 {
		return "", nil, errSkipLine
	}

	return strings.ToLower(word), Pronunciation(phonemes), nil
}

// stripVariant turns "HOUSE(2)" into "HOUSE".
func stripVariant(raw string) string {
	idx := strings.IndexByte(raw, '(')
	if idx <= 0 || !strings.HasSuffix(raw, ")") {
		return raw
	}
	return raw[:idx]
}

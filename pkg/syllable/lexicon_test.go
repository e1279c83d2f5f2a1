package syllable

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantWord string
		wantPron Pronunciation
		wantSkip bool
	}{
		{"simple word", "HELLO  HH AH0 L OW1", "hello", Pronunciation{"HH", "AH0", "L", "OW1"}, false},
		{"variant", "HOUSE(2)  HH AW1 Z", "house", Pronunciation{"HH", "AW1", "Z"}, false},
		{"single space separator", "cat K AE1 T", "cat", Pronunciation{"K", "AE1", "T"}, false},
		{"trailing comment", "DATA  D EY1 T AH0 # place, name", "data", Pronunciation{"D", "EY1", "T", "AH0"}, false},
		{"comment line", ";;; comment", "", nil, true},
		{"empty line", "", "", nil, true},
		{"word only", "LONELY", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, pron, err := parseLine(tt.line)
			if tt.wantSkip {
				assert.ErrorIs(t, err, errSkipLine)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWord, word)
			assert.Equal(t, tt.wantPron, pron)
		})
	}
}

func TestParseLexiconStats(t *testing.T) {
	lex, stats, err := LoadLexicon(filepath.Join("testdata", "sample.dict"))
	require.NoError(t, err)

	assert.Equal(t, 13, stats.TotalLines)
	assert.Equal(t, 2, stats.CommentLines)
	assert.Equal(t, 2, stats.SkippedLines)
	assert.Equal(t, 9, stats.ParsedLines)
	assert.Equal(t, 7, stats.UniqueWords)
	assert.Equal(t, 7, lex.Len())

	prons, ok := lex.Pronunciations("FIRE")
	require.True(t, ok)
	assert.Len(t, prons, 2)
	assert.True(t, lex.Has("every"))
	assert.False(t, lex.Has("novowel"))
}

func TestLoadLexiconGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("ORANGE  AO1 R AH0 N JH\nORANGE(2)  AO1 R IH0 N JH\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "cmudict.dict.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	lex, stats, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ParsedLines)
	assert.Equal(t, 2, NewCounter(lex).Count("orange"))
}

func TestLoadLexiconMissingFile(t *testing.T) {
	_, _, err := LoadLexicon("/nonexistent/cmudict.dict")
	assert.Error(t, err)
}

func TestParseLexiconEmpty(t *testing.T) {
	lex, stats, err := ParseLexicon(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, lex.Len())
	assert.Equal(t, 0, stats.TotalLines)
}

func TestNilLexicon(t *testing.T) {
	var lex *Lexicon
	assert.Equal(t, 0, lex.Len())
	assert.False(t, lex.Has("anything"))
}

func TestPronunciationSyllables(t *testing.T) {
	assert.Equal(t, 2, Pronunciation{"HH", "AH0", "L", "OW1"}.Syllables())
	assert.Equal(t, 0, Pronunciation{"HH", "M"}.Syllables())
	assert.Equal(t, 0, Pronunciation{}.Syllables())
}

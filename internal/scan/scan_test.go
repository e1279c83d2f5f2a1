package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hanaasagi/hkdt/pkg/haikudetection"
)

const verse = "cat dog bird fish frog\ntwo three four six book moon star\nsun sky cloud rain wind\n"

func newDetector(t *testing.T) *haikudetection.Detector {
	t.Helper()
	d, err := haikudetection.NewDetector(haikudetection.WithPatterns(haikudetection.Haiku))
	require.NoError(t, err)
	return d
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDocumentGutenberg(t *testing.T) {
	doc, err := LoadDocument(filepath.Join("testdata", "gutenberg.txt"))
	require.NoError(t, err)

	assert.Equal(t, "Anonymous Frog", doc.Author)
	assert.Equal(t, "Small Verses", doc.Title)
	assert.Equal(t, "Anonymous Frog – Small Verses", doc.Name())
	assert.NotContains(t, doc.Body, "Project Gutenberg")
	assert.NotContains(t, doc.Body, "Updated editions")
	assert.Contains(t, doc.Body, "cat dog bird fish frog")
}

func TestLoadDocumentStemFallback(t *testing.T) {
	dir := t.TempDir()

	doc, err := LoadDocument(writeFile(t, dir, "Jane Austen - Emma.txt", verse))
	require.NoError(t, err)
	assert.Equal(t, "Jane Austen", doc.Author)
	assert.Equal(t, "Emma", doc.Title)
	assert.Equal(t, verse, doc.Body)

	doc, err = LoadDocument(writeFile(t, dir, "pond.txt", "Author: Basho\r\n"+verse))
	require.NoError(t, err)
	assert.Equal(t, "Basho", doc.Author)
	assert.Equal(t, "pond", doc.Title)
	assert.NotContains(t, doc.Body, "\r")

	_, err = LoadDocument(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", verse)
	writeFile(t, dir, "a.TXT", verse)
	writeFile(t, dir, "notes.md", verse)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	paths, err := ListDocuments(dir, 0)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "a.TXT", filepath.Base(paths[0]))
	assert.Equal(t, "b.txt", filepath.Base(paths[1]))

	paths, err = ListDocuments(dir, 1)
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	_, err = ListDocuments(filepath.Join(dir, "nope"), 0)
	assert.Error(t, err)
}

func TestScannerRun(t *testing.T) {
	dir := t.TempDir()
	found := writeFile(t, dir, "Basho - Frogs.txt", verse)
	empty := writeFile(t, dir, "Nobody - Blank.txt", "\n\n")
	missing := filepath.Join(dir, "Ghost - Gone.txt")
	gutenberg := filepath.Join("testdata", "gutenberg.txt")

	var (
		mu   sync.Mutex
		seen []string
	)
	s := New(newDetector(t), WithWorkers(2), WithOnResult(func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, r.Document.Path)
	}))

	summary, err := s.Run(context.Background(), []string{found, empty, missing, gutenberg})
	require.NoError(t, err)
	require.Len(t, summary.Results, 4)
	assert.Len(t, seen, 4)

	names := make([]string, len(summary.Results))
	for i, r := range summary.Results {
		names[i] = r.Document.Name()
	}
	assert.Equal(t, []string{
		"Anonymous Frog – Small Verses",
		"Basho – Frogs",
		"Ghost – Gone",
		"Nobody – Blank",
	}, names)

	byName := make(map[string]Result)
	for _, r := range summary.Results {
		byName[r.Document.Name()] = r
	}

	assert.Equal(t, SkipUnreadable, byName["Ghost – Gone"].Skipped)
	assert.Error(t, byName["Ghost – Gone"].Err)
	assert.Equal(t, SkipEmpty, byName["Nobody – Blank"].Skipped)

	frogs := byName["Basho – Frogs"]
	assert.Equal(t, SkipNone, frogs.Skipped)
	require.Len(t, frogs.Candidates, 1)
	assert.Equal(t, []string{"cat dog bird fish frog", "two three four six book moon star", "sun sky cloud rain wind"}, frogs.Candidates[0].Lines)

	assert.Len(t, byName["Anonymous Frog – Small Verses"].Candidates, 1)

	// Both books hold the same verse; the run-wide set keeps it once.
	assert.Equal(t, 1, summary.All.Len())
	assert.Len(t, summary.Found(), 2)
	assert.Equal(t, 2, summary.Skipped())
}

func TestScannerLanguageSkip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", verse)

	s := New(newDetector(t), WithLanguageFilter(rejectAll{}))
	summary, err := s.Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, SkipLanguage, summary.Results[0].Skipped)
	assert.Equal(t, "xx", summary.Results[0].Language)
	assert.Empty(t, summary.Results[0].Candidates)
}

func TestScannerCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", verse)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := New(newDetector(t)).Run(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Empty(t, summary.Results)
}

type rejectAll struct{}

func (rejectAll) Accept(string) (bool, string) { return false, "xx" }

func TestWhatlangFilter(t *testing.T) {
	f := NewWhatlangFilter("")
	assert.Equal(t, "en", f.Target)

	english := strings.Repeat("It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness. ", 3)
	ok, code := f.Accept(english)
	assert.True(t, ok)
	assert.Equal(t, "en", code)

	french := strings.Repeat("Longtemps, je me suis couché de bonne heure. Parfois, à peine ma bougie éteinte, mes yeux se fermaient si vite que je n'avais pas le temps de me dire que je m'endors. ", 3)
	ok, code = f.Accept(french)
	assert.False(t, ok)
	assert.Equal(t, "fr", code)

	ok, _ = f.Accept("   ")
	assert.False(t, ok)

	ok, _ = AllowAll{}.Accept("")
	assert.True(t, ok)
}

func TestSampleText(t *testing.T) {
	assert.Equal(t, "pond", sampleText("pond", 10))
	assert.Equal(t, "caf", sampleText("café", 4))
	assert.Equal(t, "café", sampleText("café", 5))
}

package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Hanaasagi/hkdt/pkg/textnorm"
)

const unknown = "Unknown"

// Document is one book: where it came from, who wrote it, and its body
// with the Gutenberg header and license already removed.
type Document struct {
	Path   string
	Author string
	Title  string
	Body   string
}

// Name is the heading used for the document in reports.
func (d Document) Name() string {
	return d.Author + " – " + d.Title
}

// LoadDocument reads a text file and fills author and title from the
// Gutenberg header, falling back to an "Author - Title" file stem.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	raw := strings.ReplaceAll(string(data), "\r\n", "\n")

	doc := Document{Path: path, Body: textnorm.StripBoilerplate(raw)}
	doc.Author, doc.Title = textnorm.Metadata(raw)

	stemAuthor, stemTitle := splitStem(path)
	if doc.Author == "" {
		doc.Author = stemAuthor
	}
	if doc.Title == "" {
		doc.Title = stemTitle
	}
	return doc, nil
}

func splitStem(path string) (author, title string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if a, t, ok := strings.Cut(stem, " - "); ok {
		a, t = strings.TrimSpace(a), strings.TrimSpace(t)
		if a != "" && t != "" {
			return a, t
		}
	}
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return unknown, unknown
	}
	return unknown, stem
}

// ListDocuments returns the .txt files directly under dir in name order,
// keeping at most maxDocs of them when maxDocs is positive.
func ListDocuments(dir string, maxDocs int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	if maxDocs > 0 && len(paths) > maxDocs {
		paths = paths[:maxDocs]
	}
	return paths, nil
}

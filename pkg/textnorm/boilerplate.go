package textnorm

import (
	"strings"
)

// BOM is the UTF-8 byte order mark some Gutenberg files start with.
const BOM = "\ufeff"

// headerScanLines bounds how far into a file Metadata looks.
const headerScanLines = 200

var (
	startMarkers = []string{"start of the project gutenberg", "start of this project gutenberg"}
	endMarkers   = []string{"end of the project gutenberg", "end of this project gutenberg"}
)

// StripBoilerplate returns the body of a Project Gutenberg text: the lines
// strictly between the START and END marker lines. Text without a START
// marker is returned whole; a missing END marker keeps everything to EOF.
func StripBoilerplate(text string) string {
	text = strings.TrimPrefix(text, BOM)
	lines := strings.Split(text, "\n")

	start := -1
	for i, ln := range lines {
		if containsAny(strings.ToLower(ln), startMarkers) {
			start = i
			break
		}
	}
	if start < 0 {
		return text
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if containsAny(strings.ToLower(lines[i]), endMarkers) {
			end = i
			break
		}
	}

	return strings.Join(lines[start+1:end], "\n")
}

// Metadata reads the "Author:" and "Title:" header fields from the first
// lines of a Gutenberg text. Missing fields are returned empty.
func Metadata(text string) (author, title string) {
	text = strings.TrimPrefix(text, BOM)
	lines := strings.SplitN(text, "\n", headerScanLines+1)
	if len(lines) > headerScanLines {
		lines = lines[:headerScanLines]
	}

	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		key, value, ok := strings.Cut(ln, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "author":
			if author == "" {
				author = strings.TrimSpace(value)
			}
		case "title":
			if title == "" {
				title = strings.TrimSpace(value)
			}
		}
		if author != "" && title != "" {
			break
		}
	}
	return author, title
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hanaasagi/hkdt/internal/scan"
	"github.com/Hanaasagi/hkdt/pkg/haikudetection"
)

const (
	ZineFile = "haiku_zine.md"
	JSONFile = "haiku_log.json"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9 _\-.]`)

// WriteZine renders every document with candidates as one markdown zine.
// Documents without candidates are left out.
func WriteZine(w io.Writer, results []scan.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "# Accidental Haikus\n")

	for _, r := range results {
		if len(r.Candidates) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\n## %s\n", r.Document.Name())
		for _, c := range r.Candidates {
			fmt.Fprintf(bw, "\n%s\n", strings.Join(c.Lines, "\n"))
		}
	}
	return bw.Flush()
}

// WritePerDocument writes one text file per document with candidates into
// dir and returns the paths written.
func WritePerDocument(dir string, results []scan.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string
	for _, r := range results {
		if len(r.Candidates) == 0 {
			continue
		}
		path := filepath.Join(dir, DocumentFilename(r.Document))

		var b strings.Builder
		for _, c := range r.Candidates {
			b.WriteString(strings.Join(c.Lines, "\n"))
			b.WriteString("\n\n")
		}
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// DocumentFilename is "Author - Title.txt" with characters that are unsafe
// in file names removed.
func DocumentFilename(doc scan.Document) string {
	name := unsafeFilename.ReplaceAllString(doc.Author+" - "+doc.Title, "")
	name = strings.TrimSpace(name)
	if name == "" || name == "-" {
		name = "Unknown"
	}
	return name + ".txt"
}

// Run is the JSON log of one scan.
type Run struct {
	ID        uuid.UUID        `json:"id"`
	StartedAt time.Time        `json:"started_at"`
	Patterns  []string         `json:"patterns"`
	Documents []DocumentReport `json:"documents"`
}

type DocumentReport struct {
	Path    string                `json:"path"`
	Author  string                `json:"author"`
	Title   string                `json:"title"`
	Skipped string                `json:"skipped,omitempty"`
	Error   string                `json:"error,omitempty"`
	Haiku   map[string][][]string `json:"haiku"`
}

// NewRun builds the JSON log for a scan. Every configured form gets a key
// in each document's haiku map, empty when nothing matched.
func NewRun(startedAt time.Time, patterns []haikudetection.Pattern, results []scan.Result) *Run {
	run := &Run{
		ID:        uuid.New(),
		StartedAt: startedAt.UTC(),
		Patterns:  make([]string, len(patterns)),
		Documents: make([]DocumentReport, 0, len(results)),
	}
	for i, p := range patterns {
		run.Patterns[i] = p.String()
	}

	for _, r := range results {
		doc := DocumentReport{
			Path:    r.Document.Path,
			Author:  r.Document.Author,
			Title:   r.Document.Title,
			Skipped: string(r.Skipped),
			Haiku:   make(map[string][][]string, len(patterns)),
		}
		if r.Err != nil {
			doc.Error = r.Err.Error()
		}
		for _, form := range run.Patterns {
			doc.Haiku[form] = [][]string{}
		}
		for _, c := range r.Candidates {
			form := c.Pattern.String()
			doc.Haiku[form] = append(doc.Haiku[form], c.Lines)
		}
		run.Documents = append(run.Documents, doc)
	}
	return run
}

// WriteJSON encodes run as indented JSON.
func WriteJSON(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteFile creates path and hands it to write.
func WriteFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

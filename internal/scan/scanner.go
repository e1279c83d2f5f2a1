package scan

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Hanaasagi/hkdt/pkg/haikudetection"
)

// SkipReason explains why a document produced no candidates without being
// matched.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipUnreadable SkipReason = "unreadable"
	SkipEmpty      SkipReason = "empty"
	SkipLanguage   SkipReason = "language"
)

// Result is the outcome for one document.
type Result struct {
	Document   Document
	Candidates []haikudetection.Candidate
	Skipped    SkipReason
	Language   string
	Err        error
}

// Summary collects every document result of a run.
type Summary struct {
	Results []Result
	All     *haikudetection.ResultSet
}

// Found returns the results that produced at least one candidate.
func (s *Summary) Found() []Result {
	var out []Result
	for _, r := range s.Results {
		if len(r.Candidates) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Skipped counts documents that were not matched.
func (s *Summary) Skipped() int {
	n := 0
	for _, r := range s.Results {
		if r.Skipped != SkipNone {
			n++
		}
	}
	return n
}

// Scanner runs the detector over many documents with a bounded pool.
type Scanner struct {
	detector *haikudetection.Detector
	language LanguageFilter
	workers  int
	onResult func(Result)
}

type Option func(*Scanner)

// WithWorkers bounds concurrent documents; values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		s.workers = n
	}
}

func WithLanguageFilter(f LanguageFilter) Option {
	return func(s *Scanner) {
		if f != nil {
			s.language = f
		}
	}
}

// WithOnResult registers a callback run once per finished document. Calls
// are serialized.
func WithOnResult(fn func(Result)) Option {
	return func(s *Scanner) {
		s.onResult = fn
	}
}

func New(detector *haikudetection.Detector, opts ...Option) *Scanner {
	s := &Scanner{
		detector: detector,
		language: AllowAll{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Run scans every path. Per-document failures are recorded in the
// document's Result and never stop the other documents. Cancelling ctx
// stops scheduling; documents already running finish.
func (s *Scanner) Run(ctx context.Context, paths []string) (*Summary, error) {
	var (
		mu      sync.Mutex
		results = make(map[string]Result, len(paths))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r := s.scanOne(path)

			mu.Lock()
			defer mu.Unlock()
			results[path] = r
			if s.onResult != nil {
				s.onResult(r)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{All: haikudetection.NewResultSet()}
	for _, r := range results {
		summary.Results = append(summary.Results, r)
	}
	sort.Slice(summary.Results, func(i, j int) bool {
		a, b := summary.Results[i].Document, summary.Results[j].Document
		if a.Name() != b.Name() {
			return a.Name() < b.Name()
		}
		return a.Path < b.Path
	})
	for _, r := range summary.Results {
		for _, c := range r.Candidates {
			summary.All.Add(c)
		}
	}

	return summary, ctx.Err()
}

func (s *Scanner) scanOne(path string) Result {
	doc, err := LoadDocument(path)
	if err != nil {
		slog.Warn("Skipping unreadable document", "path", path, "error", err)
		author, title := splitStem(path)
		return Result{
			Document: Document{Path: path, Author: author, Title: title},
			Skipped:  SkipUnreadable,
			Err:      err,
		}
	}

	if strings.TrimSpace(doc.Body) == "" {
		slog.Info("Skipping empty document", "path", path)
		return Result{Document: doc, Skipped: SkipEmpty}
	}

	ok, lang := s.language.Accept(doc.Body)
	if !ok {
		slog.Info("Skipping document in another language", "path", path, "language", lang)
		return Result{Document: doc, Skipped: SkipLanguage, Language: lang}
	}

	rs := s.detector.DetectText(doc.Body)
	slog.Debug("Scanned document", "path", path, "title", doc.Title, "found", rs.Len())

	return Result{
		Document:   doc,
		Candidates: rs.Sorted(),
		Language:   lang,
	}
}

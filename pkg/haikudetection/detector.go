package haikudetection

import (
	"github.com/Hanaasagi/hkdt/pkg/syllable"
	"github.com/Hanaasagi/hkdt/pkg/textnorm"
)

// ============================================================================
// Main Detector API Implementation
// ============================================================================

// Detector runs every configured pattern over every unit of a text and
// collects the accepted candidates into one ResultSet. A Detector holds no
// per-document state and may be shared between goroutines.
type Detector struct {
	config      DetectionConfig
	filter      LineFilter
	counter     *syllable.Counter
	segmenter   textnorm.Segmenter
	onCandidate func(Candidate)
}

// DetectorOption defines options for configuring the detector
type DetectorOption func(*Detector)

// NewDetector creates a detector, rejecting malformed patterns before any
// text is matched.
func NewDetector(opts ...DetectorOption) (*Detector, error) {
	d := &Detector{
		config:    DefaultConfig(),
		segmenter: textnorm.WholeDocument{},
	}

	for _, opt := range opts {
		opt(d)
	}

	if err := ValidateDetectionConfig(d.config); err != nil {
		return nil, err
	}

	if d.counter == nil {
		d.counter = syllable.NewCounter(nil)
	}
	d.filter = d.config.LineFilter()

	return d, nil
}

// WithConfig replaces the whole detection config
func WithConfig(config DetectionConfig) DetectorOption {
	return func(d *Detector) {
		d.config = config
	}
}

// WithPatterns sets the patterns to try
func WithPatterns(patterns ...Pattern) DetectorOption {
	return func(d *Detector) {
		d.config.Patterns = patterns
	}
}

// WithLineFilter sets the line quality thresholds
func WithLineFilter(filter LineFilter) DetectorOption {
	return func(d *Detector) {
		d.config.MinWords = filter.MinWords
		d.config.MinChars = filter.MinChars
		d.config.RejectDigits = filter.RejectDigits
	}
}

// WithCounter sets the syllable counter; by default only the heuristic is used
func WithCounter(counter *syllable.Counter) DetectorOption {
	return func(d *Detector) {
		d.counter = counter
	}
}

// WithSegmenter sets how raw text is split into units
func WithSegmenter(segmenter textnorm.Segmenter) DetectorOption {
	return func(d *Detector) {
		if segmenter != nil {
			d.segmenter = segmenter
		}
	}
}

// WithOnCandidate registers a callback invoked for each newly inserted
// candidate. It runs on the detecting goroutine.
func WithOnCandidate(fn func(Candidate)) DetectorOption {
	return func(d *Detector) {
		d.onCandidate = fn
	}
}

// Config returns the detector configuration.
func (d *Detector) Config() DetectionConfig {
	return d.config
}

// DetectText segments raw body text, normalizes and tokenizes each unit,
// and matches every pattern against it.
func (d *Detector) DetectText(raw string) *ResultSet {
	units := d.segmenter.Split(raw)

	tokenized := make([][]string, 0, len(units))
	for _, unit := range units {
		tokens := textnorm.Tokenize(textnorm.Normalize(unit))
		if len(tokens) > 0 {
			tokenized = append(tokenized, tokens)
		}
	}
	return d.DetectUnits(tokenized)
}

// DetectTokens treats tokens as a single unit. Tokens keep their spelling
// in the rendered lines; case only matters to the lexicon lookup, which
// lowercases.
func (d *Detector) DetectTokens(tokens []string) *ResultSet {
	return d.DetectUnits([][]string{tokens})
}

// DetectUnits matches every pattern against each unit independently and
// merges the results.
func (d *Detector) DetectUnits(units [][]string) *ResultSet {
	rs := NewResultSet()
	for _, unit := range units {
		d.detectUnit(unit, rs)
	}
	return rs
}

func (d *Detector) detectUnit(unit []string, rs *ResultSet) {
	words := make([]string, 0, len(unit))
	for _, tok := range unit {
		if textnorm.IsAlpha(tok) {
			words = append(words, tok)
		}
	}
	if len(words) == 0 {
		return
	}

	counts := make([]int, len(words))
	for i, w := range words {
		counts[i] = d.counter.Count(w)
	}

	for _, pattern := range d.config.Patterns {
		for _, c := range MatchWindows(words, counts, pattern, d.filter) {
			if rs.Add(c) && d.onCandidate != nil {
				d.onCandidate(c)
			}
		}
	}
}

// ============================================================================
// Convenience Functions
// ============================================================================

// Detect finds every candidate of the given patterns in a token stream,
// counting syllables with the heuristic only.
func Detect(tokens []string, patterns ...Pattern) (*ResultSet, error) {
	return DetectWithCounter(nil, tokens, patterns...)
}

// DetectWithCounter is Detect with an explicit syllable counter.
func DetectWithCounter(counter *syllable.Counter, tokens []string, patterns ...Pattern) (*ResultSet, error) {
	d, err := NewDetector(WithPatterns(patterns...), WithCounter(counter))
	if err != nil {
		return nil, err
	}
	return d.DetectTokens(tokens), nil
}

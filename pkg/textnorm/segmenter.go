package textnorm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Segmenter splits raw body text into units that are matched independently.
type Segmenter interface {
	Split(text string) []string
}

// WholeDocument treats the entire text as a single unit.
type WholeDocument struct{}

// Split returns text as the only unit, or nothing for blank text.
func (WholeDocument) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []string{text}
}

// SentenceSegmenter splits text with the Punkt English model. Segmentation
// must run on raw text: normalized text has no punctuation left to split on.
type SentenceSegmenter struct {
	pool sync.Pool
}

// NewSentenceSegmenter loads the English Punkt model. The model is decoded
// once up front so that a broken build fails here and not in a worker.
func NewSentenceSegmenter() (*SentenceSegmenter, error) {
	first, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading punkt model: %w", err)
	}

	s := &SentenceSegmenter{}
	s.pool.New = func() any {
		tok, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			return nil
		}
		return tok
	}
	s.pool.Put(first)
	return s, nil
}

// Split returns the non-blank sentences of text in order.
func (s *SentenceSegmenter) Split(text string) []string {
	tok, _ := s.pool.Get().(*sentences.DefaultSentenceTokenizer)
	if tok == nil {
		return WholeDocument{}.Split(text)
	}
	defer s.pool.Put(tok)

	var out []string
	for _, sent := range tok.Tokenize(text) {
		if strings.TrimSpace(sent.Text) != "" {
			out = append(out, sent.Text)
		}
	}
	return out
}

package syllable

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the memo of heuristic counts. Lexicon misses in a
// book are dominated by proper nouns, which repeat a lot.
const DefaultCacheSize = 50_000

// Counter maps words to syllable counts. It is safe for concurrent use.
type Counter struct {
	lexicon *Lexicon
	cache   *lru.Cache[string, int]
}

// CounterOption configures a Counter.
type CounterOption func(*counterOptions)

type counterOptions struct {
	cacheSize int
}

// WithCacheSize sets the heuristic memo size. Zero or less disables it.
func WithCacheSize(size int) CounterOption {
	return func(o *counterOptions) {
		o.cacheSize = size
	}
}

// NewCounter creates a counter backed by lex. A nil lexicon is allowed:
// every word then goes through the heuristic.
func NewCounter(lex *Lexicon, opts ...CounterOption) *Counter {
	o := counterOptions{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Counter{lexicon: lex}
	if o.cacheSize > 0 {
		// lru.New only fails on a non-positive size.
		c.cache, _ = lru.New[string, int](o.cacheSize)
	}
	return c
}

// Lexicon returns the lexicon backing the counter, possibly nil.
func (c *Counter) Lexicon() *Lexicon {
	return c.lexicon
}

// Count returns the syllable count of word: the minimum over its lexicon
// pronunciations, or the heuristic estimate. Never zero for a non-empty word.
func (c *Counter) Count(word string) int {
	if word == "" {
		return 0
	}
	w := strings.ToLower(word)

	if n, ok := c.lookup(w); ok {
		return n
	}

	if c.cache != nil {
		if n, ok := c.cache.Get(w); ok {
			return n
		}
	}

	n := Heuristic(w)
	if c.cache != nil {
		c.cache.Add(w, n)
	}
	return n
}

// Lookup returns the lexicon-derived count for word, without the fallback.
func (c *Counter) Lookup(word string) (int, bool) {
	return c.lookup(strings.ToLower(word))
}

func (c *Counter) lookup(w string) (int, bool) {
	prons, ok := c.lexicon.Pronunciations(w)
	if !ok || len(prons) == 0 {
		return 0, false
	}

	minimum := -1
	for _, p := range prons {
		n := p.Syllables()
		if minimum < 0 || n < minimum {
			minimum = n
		}
	}
	// An entry without any stressed phoneme would yield a zero-width word.
	if minimum <= 0 {
		return 0, false
	}
	return minimum, true
}

// Heuristic counts maximal runs of the vowels a, e, i, o, u, y in the
// lowercased word, with a floor of one.
func Heuristic(word string) int {
	runs := 0
	inVowel := false
	for _, r := range strings.ToLower(word) {
		if isVowel(r) {
			if !inVowel {
				runs++
			}
			inVowel = true
		} else {
			inVowel = false
		}
	}
	if runs == 0 {
		return 1
	}
	return runs
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

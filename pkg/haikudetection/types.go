package haikudetection

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// Patterns
// ============================================================================

var (
	// ErrInvalidPattern is returned for an empty pattern or a non-positive target.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrNoPatterns is returned when a detector is configured without patterns.
	ErrNoPatterns = errors.New("no patterns configured")
)

// Pattern is the ordered list of per-line syllable targets of a verse form.
type Pattern []int

var (
	// Haiku is the classic 5-7-5 form.
	Haiku = Pattern{5, 7, 5}

	// ShortHaiku is the 3-5-3 form.
	ShortHaiku = Pattern{3, 5, 3}
)

// DefaultPatterns returns the forms tried when none are configured.
func DefaultPatterns() []Pattern {
	return []Pattern{Haiku, ShortHaiku}
}

// Validate rejects empty patterns and non-positive targets.
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPattern)
	}
	for i, target := range p {
		if target <= 0 {
			return fmt.Errorf("%w: %s has non-positive target %d at line %d", ErrInvalidPattern, p, target, i+1)
		}
	}
	return nil
}

// Total returns the number of syllables the whole form spans.
func (p Pattern) Total() int {
	sum := 0
	for _, target := range p {
		sum += target
	}
	return sum
}

// String renders the pattern as "5-7-5".
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, target := range p {
		parts[i] = strconv.Itoa(target)
	}
	return strings.Join(parts, "-")
}

// Equal reports whether two patterns have the same targets.
func (p Pattern) Equal(other Pattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// ParsePattern parses "5-7-5", "5,7,5" or "5 7 5".
func ParsePattern(s string) (Pattern, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ',' || r == ' ' || r == '/'
	})

	p := make(Pattern, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, s, err)
		}
		p = append(p, n)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ============================================================================
// Lines and Candidates
// ============================================================================

// Line is a run of consecutive words whose syllables sum to one pattern target.
type Line struct {
	Words     []string
	Syllables int
}

// Text renders the line as its space-joined words.
func (l Line) Text() string {
	return strings.Join(l.Words, " ")
}

// Candidate is a matched verse: one rendered line per pattern element, taken
// from the contiguous token span [Start, End) of the unit it was found in.
type Candidate struct {
	Pattern Pattern  `json:"pattern"`
	Lines   []string `json:"lines"`
	Start   int      `json:"start"`
	End     int      `json:"end"`
}

// Key identifies a candidate by its tuple of line texts. Line texts never
// contain a newline, so joining on one keeps the key unambiguous.
func (c Candidate) Key() string {
	return strings.Join(c.Lines, "\n")
}

// String returns the lines joined by " / ".
func (c Candidate) String() string {
	return fmt.Sprintf("%s: %s", c.Pattern, strings.Join(c.Lines, " / "))
}

// ============================================================================
// ResultSet
// ============================================================================

// ResultSet is a set of candidates keyed by their line texts. Adding a
// candidate whose lines are already present is a no-op. A ResultSet is
// owned by one goroutine at a time.
type ResultSet struct {
	index map[string]int
	items []Candidate
}

// NewResultSet returns an empty set.
func NewResultSet() *ResultSet {
	return &ResultSet{index: make(map[string]int)}
}

// Add inserts c unless a candidate with the same lines exists, and reports
// whether it was inserted.
func (rs *ResultSet) Add(c Candidate) bool {
	key := c.Key()
	if _, exists := rs.index[key]; exists {
		return false
	}
	rs.index[key] = len(rs.items)
	rs.items = append(rs.items, c)
	return true
}

// Merge adds every candidate of other.
func (rs *ResultSet) Merge(other *ResultSet) {
	if other == nil {
		return
	}
	for _, c := range other.items {
		rs.Add(c)
	}
}

// Contains reports whether a candidate with exactly these lines is present.
func (rs *ResultSet) Contains(lines ...string) bool {
	_, ok := rs.index[strings.Join(lines, "\n")]
	return ok
}

// Len returns the number of distinct candidates.
func (rs *ResultSet) Len() int {
	return len(rs.items)
}

// Candidates returns the candidates in insertion order.
func (rs *ResultSet) Candidates() []Candidate {
	out := make([]Candidate, len(rs.items))
	copy(out, rs.items)
	return out
}

// Sorted returns the candidates ordered by pattern, longer forms first, then
// by line texts, so that output does not depend on scheduling or pattern
// trial order.
func (rs *ResultSet) Sorted() []Candidate {
	out := rs.Candidates()
	sort.Slice(out, func(i, j int) bool {
		if c := comparePatterns(out[i].Pattern, out[j].Pattern); c != 0 {
			return c > 0
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}

// comparePatterns orders by total syllables, then target by target.
func comparePatterns(a, b Pattern) int {
	if c := cmp.Compare(a.Total(), b.Total()); c != 0 {
		return c
	}
	return slices.Compare(a, b)
}

// ByPattern groups the sorted candidates by pattern string.
func (rs *ResultSet) ByPattern() map[string][]Candidate {
	groups := make(map[string][]Candidate)
	for _, c := range rs.Sorted() {
		form := c.Pattern.String()
		groups[form] = append(groups[form], c)
	}
	return groups
}

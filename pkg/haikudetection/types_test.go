package haikudetection

import (
	"errors"
	"strings"
	"testing"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		input   string
		want    Pattern
		wantErr bool
	}{
		{"5-7-5", Haiku, false},
		{"3,5,3", ShortHaiku, false},
		{"5 7 5", Haiku, false},
		{"4", Pattern{4}, false},
		{"5-0-5", nil, true},
		{"", nil, true},
		{"five-seven-five", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePattern(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPattern) {
					t.Errorf("ParsePattern(%q) error = %v, want ErrInvalidPattern", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePattern(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParsePattern(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPatternStringAndTotal(t *testing.T) {
	if got := Haiku.String(); got != "5-7-5" {
		t.Errorf("String() = %q", got)
	}
	if got := ShortHaiku.Total(); got != 11 {
		t.Errorf("Total() = %d", got)
	}
}

func TestResultSetAddAndMerge(t *testing.T) {
	a := NewResultSet()
	c1 := Candidate{Pattern: ShortHaiku, Lines: []string{"silent pond", "a frog jumps into", "the pond splash"}}
	c2 := Candidate{Pattern: Haiku, Lines: []string{"x y z a b", "c d e f g h i", "j k l m n"}, Start: 4}

	if !a.Add(c1) {
		t.Fatalf("first Add should insert")
	}
	if a.Add(Candidate{Pattern: ShortHaiku, Lines: c1.Lines, Start: 9}) {
		t.Errorf("Add with the same lines should be a no-op")
	}

	b := NewResultSet()
	b.Add(c1)
	b.Add(c2)
	a.Merge(b)
	a.Merge(nil)

	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}

	sorted := a.Sorted()
	if sorted[0].Pattern.String() != "5-7-5" || sorted[1].Pattern.String() != "3-5-3" {
		t.Errorf("Sorted() order = %v", sorted)
	}

	groups := a.ByPattern()
	if len(groups["5-7-5"]) != 1 || len(groups["3-5-3"]) != 1 {
		t.Errorf("ByPattern() = %v", groups)
	}
}

func TestSortedOrdersPatternsNumerically(t *testing.T) {
	long := Pattern{10, 14, 10}
	rs := NewResultSet()
	rs.Add(Candidate{Pattern: ShortHaiku, Lines: []string{"a"}})
	rs.Add(Candidate{Pattern: Haiku, Lines: []string{"b"}})
	rs.Add(Candidate{Pattern: long, Lines: []string{"c"}})
	rs.Add(Candidate{Pattern: Pattern{3, 5, 4}, Lines: []string{"d"}})
	rs.Add(Candidate{Pattern: Pattern{4, 5, 3}, Lines: []string{"e"}})

	var got []string
	for _, c := range rs.Sorted() {
		got = append(got, c.Pattern.String())
	}
	want := []string{"10-14-10", "5-7-5", "4-5-3", "3-5-4", "3-5-3"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("Sorted() patterns = %v, want %v", got, want)
	}
}

func TestLineFilterValid(t *testing.T) {
	f := DefaultLineFilter()

	tests := []struct {
		name  string
		words []string
		want  bool
	}{
		{"two words", []string{"hello", "you"}, true},
		{"single word", []string{"everything"}, false},
		{"too short", []string{"a", "b"}, false},
		{"exactly five", []string{"ox", "is"}, true},
		{"digit", []string{"year", "1914"}, false},
		{"digit inside word", []string{"route", "r66"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Valid(tt.words); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.words, got, tt.want)
			}
		})
	}

	lenient := LineFilter{MinWords: 1, MinChars: 0, RejectDigits: false}
	if !lenient.Valid([]string{"1914"}) {
		t.Errorf("lenient filter rejected a single numeric word")
	}
}

func TestValidateDetectionConfig(t *testing.T) {
	if err := ValidateDetectionConfig(DefaultConfig()); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.MinChars = -1
	if err := ValidateDetectionConfig(cfg); err == nil {
		t.Errorf("negative MinChars accepted")
	}

	cfg = DefaultConfig()
	cfg.Patterns = nil
	if err := ValidateDetectionConfig(cfg); !errors.Is(err, ErrNoPatterns) {
		t.Errorf("empty patterns error = %v", err)
	}
}

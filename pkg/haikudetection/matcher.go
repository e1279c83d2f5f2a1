package haikudetection

// MatchWindows returns every candidate of pattern in words, where counts[i]
// is the syllable count of words[i].
//
// From each start index the matcher consumes tokens greedily into the
// current line until the running sum reaches the target. Overshooting a
// target, running out of tokens, or producing a line the filter rejects
// abandons that start index; there is no backtracking. Windows starting at
// adjacent indices may overlap and yield the same lines, which the
// ResultSet collapses.
func MatchWindows(words []string, counts []int, pattern Pattern, filter LineFilter) []Candidate {
	if len(words) != len(counts) || pattern.Validate() != nil {
		return nil
	}

	var out []Candidate
	lines := make([]string, 0, len(pattern))

	for start := range words {
		lines = lines[:0]
		cursor := start

		for _, target := range pattern {
			lineStart := cursor
			sum := 0
			for cursor < len(words) && sum < target && sum+counts[cursor] <= target {
				sum += counts[cursor]
				cursor++
			}
			if sum != target {
				break
			}

			line := Line{Words: words[lineStart:cursor], Syllables: sum}
			if !filter.Valid(line.Words) {
				break
			}
			lines = append(lines, line.Text())
		}

		if len(lines) != len(pattern) {
			continue
		}

		rendered := make([]string, len(lines))
		copy(rendered, lines)
		out = append(out, Candidate{
			Pattern: pattern,
			Lines:   rendered,
			Start:   start,
			End:     cursor,
		})
	}

	return out
}

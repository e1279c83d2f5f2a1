package haikudetection

import (
	"fmt"
)

// Line quality thresholds. These are heuristics tuned on English prose and
// are exposed through DetectionConfig rather than fixed.
const (
	// DefaultMinWords is the minimum number of words in a line
	DefaultMinWords = 2

	// DefaultMinChars is the minimum display width of a rendered line
	DefaultMinChars = 5

	// DefaultRejectDigits drops lines with a digit in any word
	DefaultRejectDigits = true
)

// DetectionConfig holds the patterns to try and the line filter thresholds.
type DetectionConfig struct {
	Patterns     []Pattern `json:"patterns"`
	MinWords     int       `json:"min_words"`
	MinChars     int       `json:"min_chars"`
	RejectDigits bool      `json:"reject_digits"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() DetectionConfig {
	return DetectionConfig{
		Patterns:     DefaultPatterns(),
		MinWords:     DefaultMinWords,
		MinChars:     DefaultMinChars,
		RejectDigits: DefaultRejectDigits,
	}
}

// LineFilter returns the filter described by the config.
func (c DetectionConfig) LineFilter() LineFilter {
	return LineFilter{
		MinWords:     c.MinWords,
		MinChars:     c.MinChars,
		RejectDigits: c.RejectDigits,
	}
}

// ValidateDetectionConfig validates a detection configuration
func ValidateDetectionConfig(config DetectionConfig) error {
	if len(config.Patterns) == 0 {
		return ErrNoPatterns
	}
	for _, p := range config.Patterns {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	if config.MinWords < 0 {
		return fmt.Errorf("MinWords must be non-negative, got %d", config.MinWords)
	}
	if config.MinChars < 0 {
		return fmt.Errorf("MinChars must be non-negative, got %d", config.MinChars)
	}
	return nil
}

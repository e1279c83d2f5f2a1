package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Hanaasagi/hkdt/internal/scan"
	"github.com/Hanaasagi/hkdt/pkg/haikudetection"
	"github.com/Hanaasagi/hkdt/pkg/syllable"
)

type Config struct {
	Core    CoreConfig    `toml:"core"`
	Lexicon LexiconConfig `toml:"lexicon"`
	Filter  FilterConfig  `toml:"filter"`
	Output  OutputConfig  `toml:"output"`
	Colors  ColorConfig   `toml:"colors"`
}

type CoreConfig struct {
	Patterns  []string `toml:"patterns"`
	Workers   int      `toml:"workers" env:"HKDT_WORKERS"`
	Language  string   `toml:"language" env:"HKDT_LANGUAGE"`
	Sentences bool     `toml:"sentences"`
	MaxDocs   int      `toml:"max_docs"`
	LogLevel  string   `toml:"log_level"`
}

type LexiconConfig struct {
	Path      string `toml:"path" env:"HKDT_LEXICON"`
	CacheSize int    `toml:"cache_size"`
}

type FilterConfig struct {
	MinWords     int  `toml:"min_words"`
	MinChars     int  `toml:"min_chars"`
	RejectDigits bool `toml:"reject_digits"`
}

type OutputConfig struct {
	Dir         string `toml:"dir" env:"HKDT_OUTPUT"`
	Zine        bool   `toml:"zine"`
	JSON        bool   `toml:"json"`
	PerDocument bool   `toml:"per_document"`
}

type ColorConfig struct {
	Title string `toml:"title"`
	Form  string `toml:"form"`
	Line  string `toml:"line"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			Patterns: []string{"5-7-5", "3-5-3"},
			Workers:  0,
			Language: "en",
		},
		Lexicon: LexiconConfig{
			CacheSize: syllable.DefaultCacheSize,
		},
		Filter: FilterConfig{
			MinWords:     haikudetection.DefaultMinWords,
			MinChars:     haikudetection.DefaultMinChars,
			RejectDigits: haikudetection.DefaultRejectDigits,
		},
		Output: OutputConfig{
			Dir:         "results",
			Zine:        true,
			PerDocument: true,
		},
		Colors: ColorConfig{
			Title: "magenta",
			Form:  "cyan",
			Line:  "default",
		},
	}
}

// LoadConfigFromFile decodes path over the defaults, then applies HKDT_*
// environment overrides. A missing file is not an error.
func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, config); err != nil {
				return nil, fmt.Errorf("failed to decode TOML config: %w", err)
			}
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	return config, nil
}

// DetectionConfig turns the [core] and [filter] sections into detector
// settings.
func (c *Config) DetectionConfig() (haikudetection.DetectionConfig, error) {
	patterns := make([]haikudetection.Pattern, 0, len(c.Core.Patterns))
	for _, raw := range c.Core.Patterns {
		p, err := haikudetection.ParsePattern(raw)
		if err != nil {
			return haikudetection.DetectionConfig{}, err
		}
		patterns = append(patterns, p)
	}

	dc := haikudetection.DetectionConfig{
		Patterns:     patterns,
		MinWords:     c.Filter.MinWords,
		MinChars:     c.Filter.MinChars,
		RejectDigits: c.Filter.RejectDigits,
	}
	if err := haikudetection.ValidateDetectionConfig(dc); err != nil {
		return haikudetection.DetectionConfig{}, err
	}
	return dc, nil
}

// LanguageFilter maps the configured language to a filter; "any" or an
// empty value turns the check off.
func (c *Config) LanguageFilter() scan.LanguageFilter {
	lang := strings.ToLower(strings.TrimSpace(c.Core.Language))
	if lang == "" || lang == "any" {
		return scan.AllowAll{}
	}
	return scan.NewWhatlangFilter(lang)
}

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Hanaasagi/hkdt/internal/scan"
	"github.com/Hanaasagi/hkdt/pkg/haikudetection"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFromFile: %v", err)
	}

	def := NewDefaultConfig()
	if cfg.Core.Language != def.Core.Language || cfg.Output.Dir != def.Output.Dir {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if len(cfg.Core.Patterns) != 2 {
		t.Errorf("default patterns = %v", cfg.Core.Patterns)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
[core]
patterns = ["5-7-5"]
workers = 3
language = "any"

[lexicon]
path = "/usr/share/hkdt/cmudict.dict"

[filter]
min_words = 1
reject_digits = false

[output]
json = true
`)

	cfg, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile: %v", err)
	}

	if cfg.Core.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Core.Workers)
	}
	if cfg.Lexicon.Path != "/usr/share/hkdt/cmudict.dict" {
		t.Errorf("Lexicon.Path = %q", cfg.Lexicon.Path)
	}
	if !cfg.Output.JSON || !cfg.Output.Zine {
		t.Errorf("Output = %+v, want json on and zine left at its default", cfg.Output)
	}
	if cfg.Filter.MinChars != haikudetection.DefaultMinChars {
		t.Errorf("MinChars = %d, want default", cfg.Filter.MinChars)
	}

	dc, err := cfg.DetectionConfig()
	if err != nil {
		t.Fatalf("DetectionConfig: %v", err)
	}
	if len(dc.Patterns) != 1 || !dc.Patterns[0].Equal(haikudetection.Haiku) {
		t.Errorf("Patterns = %v", dc.Patterns)
	}
	if dc.MinWords != 1 || dc.RejectDigits {
		t.Errorf("filter settings not carried over: %+v", dc)
	}

	if _, ok := cfg.LanguageFilter().(scan.AllowAll); !ok {
		t.Errorf("language \"any\" should disable the filter")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[core]\nworkers = 3\n")
	t.Setenv("HKDT_WORKERS", "7")
	t.Setenv("HKDT_LANGUAGE", "fr")
	t.Setenv("HKDT_OUTPUT", "/tmp/zines")

	cfg, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile: %v", err)
	}
	if cfg.Core.Workers != 7 {
		t.Errorf("Workers = %d, want env value 7", cfg.Core.Workers)
	}
	if cfg.Output.Dir != "/tmp/zines" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}

	f, ok := cfg.LanguageFilter().(scan.WhatlangFilter)
	if !ok || f.Target != "fr" {
		t.Errorf("LanguageFilter() = %#v", cfg.LanguageFilter())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfigFromFile(writeConfig(t, "[core\nworkers = ")); err == nil {
		t.Error("malformed TOML accepted")
	}

	t.Setenv("HKDT_WORKERS", "many")
	if _, err := LoadConfigFromFile(""); err == nil {
		t.Error("non-numeric HKDT_WORKERS accepted")
	}
}

func TestDetectionConfigRejectsBadPatterns(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Core.Patterns = []string{"5-7-5", "5-0-5"}
	if _, err := cfg.DetectionConfig(); !errors.Is(err, haikudetection.ErrInvalidPattern) {
		t.Errorf("error = %v, want ErrInvalidPattern", err)
	}

	cfg.Core.Patterns = nil
	if _, err := cfg.DetectionConfig(); !errors.Is(err, haikudetection.ErrNoPatterns) {
		t.Errorf("error = %v, want ErrNoPatterns", err)
	}
}

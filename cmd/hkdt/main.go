package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Hanaasagi/hkdt/cmd"
	"github.com/Hanaasagi/hkdt/internal"
	"github.com/Hanaasagi/hkdt/internal/logger"
	"github.com/Hanaasagi/hkdt/pkg/haikudetection"
	"github.com/Hanaasagi/hkdt/pkg/syllable"
	"github.com/Hanaasagi/hkdt/pkg/textnorm"
)

const (
	appName     = "hkdt"
	defaultSize = 4096
	lexiconName = "cmudict.dict"
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

// app carries what the subcommands share once the root command has loaded
// configuration and logging.
type app struct {
	stateDir   string
	configPath string
	cfg        *Config
	logCloser  io.Closer

	flags globalFlags
}

type globalFlags struct {
	logLevel  string
	lexicon   string
	patterns  []string
	sentences bool
	minWords  int
	minChars  int
	noColor   bool
}

func newApp() *app {
	return &app{
		stateDir:   filepath.Join(xdg.StateHome, appName),
		configPath: filepath.Join(xdg.ConfigHome, appName, "config.toml"),
	}
}

// setup loads configuration, applies flag overrides and starts logging.
func (a *app) setup(c *cobra.Command) error {
	cfg, err := LoadConfigFromFile(a.configPath)
	if err != nil {
		return err
	}

	f := c.Flags()
	if f.Changed("lexicon") {
		cfg.Lexicon.Path = a.flags.lexicon
	}
	if f.Changed("pattern") {
		cfg.Core.Patterns = a.flags.patterns
	}
	if f.Changed("sentences") {
		cfg.Core.Sentences = a.flags.sentences
	}
	if f.Changed("min-words") {
		cfg.Filter.MinWords = a.flags.minWords
	}
	if f.Changed("min-chars") {
		cfg.Filter.MinChars = a.flags.minChars
	}
	if f.Changed("log-level") {
		cfg.Core.LogLevel = a.flags.logLevel
	}
	if a.flags.noColor {
		color.NoColor = true
	}
	a.cfg = cfg

	logFilePath := filepath.Join(a.stateDir, appName+".log")
	level := logger.Level(cfg.Core.LogLevel)
	if internal.IsDebugMode() {
		level = "debug"
	}
	closer, err := logger.InitLogger(logFilePath, level)
	if err != nil {
		return err
	}
	a.logCloser = closer
	slog.Debug("Configuration loaded", "path", a.configPath, "patterns", cfg.Core.Patterns)
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close() // nolint: errcheck
	}
}

// loadCounter builds the syllable counter. Without a configured path the
// XDG data directories are searched for hkdt/cmudict.dict. A missing or
// unreadable dictionary leaves every word to the heuristic.
func (a *app) loadCounter() *syllable.Counter {
	path := a.cfg.Lexicon.Path
	if path == "" {
		if found, err := xdg.SearchDataFile(filepath.Join(appName, lexiconName)); err == nil {
			path = found
		}
	}

	opts := []syllable.CounterOption{syllable.WithCacheSize(a.cfg.Lexicon.CacheSize)}
	if path == "" {
		slog.Warn("No pronouncing dictionary found, counting syllables heuristically")
		return syllable.NewCounter(nil, opts...)
	}

	lex, stats, err := syllable.LoadLexicon(path)
	if err != nil {
		slog.Warn("Could not load pronouncing dictionary, counting syllables heuristically", "path", path, "error", err)
		return syllable.NewCounter(nil, opts...)
	}
	slog.Info("Loaded lexicon", "path", path, "words", stats.UniqueWords, "skipped", stats.SkippedLines)
	return syllable.NewCounter(lex, opts...)
}

func (a *app) newDetector(counter *syllable.Counter) (*haikudetection.Detector, error) {
	dc, err := a.cfg.DetectionConfig()
	if err != nil {
		return nil, err
	}

	opts := []haikudetection.DetectorOption{
		haikudetection.WithConfig(dc),
		haikudetection.WithCounter(counter),
	}
	if a.cfg.Core.Sentences {
		seg, err := textnorm.NewSentenceSegmenter()
		if err != nil {
			return nil, fmt.Errorf("loading sentence model: %w", err)
		}
		opts = append(opts, haikudetection.WithSegmenter(seg))
	}
	return haikudetection.NewDetector(opts...)
}

func (a *app) palette() (internal.Palette, error) {
	return internal.NewPalette(a.cfg.Colors.Title, a.cfg.Colors.Form, a.cfg.Colors.Line)
}

// readInput reads a whole file, or stdin when path is empty or "-".
func readInput(path string, stdin io.Reader) (string, error) {
	var reader io.Reader = stdin

	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("opening input file: %w", err)
		}
		defer file.Close() // nolint: errcheck
		reader = file
	}

	var b strings.Builder
	if _, err := io.Copy(&b, bufio.NewReaderSize(reader, defaultSize)); err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.ReplaceAll(b.String(), "\r\n", "\n"), nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Find accidental haiku in prose",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Find accidental haiku hiding in ordinary prose. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if c.Name() == "version" {
				return nil
			}
			return a.setup(c)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", a.configPath, "Path to the TOML config file")
	pf.StringVar(&a.flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVarP(&a.flags.lexicon, "lexicon", "l", "", "CMU pronouncing dictionary file (.dict or .dict.gz)")
	pf.StringArrayVarP(&a.flags.patterns, "pattern", "p", nil, "Syllable pattern to look for, e.g. 5-7-5 (repeatable)")
	pf.BoolVar(&a.flags.sentences, "sentences", false, "Match within sentences instead of across the whole text")
	pf.IntVar(&a.flags.minWords, "min-words", haikudetection.DefaultMinWords, "Minimum words per line")
	pf.IntVar(&a.flags.minChars, "min-chars", haikudetection.DefaultMinChars, "Minimum display width per line")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newScanCmd(a),
		newDetectCmd(a),
		newCountCmd(a),
		newNormalizeCmd(),
		newVersionCmd(),
	)

	cmd.ApplyTheme(rootCmd)
	return rootCmd
}

func main() {
	a := newApp()

	if err := os.MkdirAll(a.stateDir, 0o755); err == nil {
		if f, err := os.Create(filepath.Join(a.stateDir, "crash")); err == nil {
			_ = debug.SetCrashOutput(f, debug.CrashOptions{})
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("Error executing command", "error", err)
	}
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hanaasagi/hkdt/internal"
	"github.com/Hanaasagi/hkdt/internal/report"
	"github.com/Hanaasagi/hkdt/internal/scan"
	"github.com/Hanaasagi/hkdt/pkg/textnorm"
)

// A fresh waiting message every few documents.
const messageEvery = 5

type scanFlags struct {
	workers     int
	output      string
	maxDocs     int
	language    string
	verbose     bool
	zine        bool
	json        bool
	perDocument bool
}

func newScanCmd(a *app) *cobra.Command {
	var sf scanFlags

	c := &cobra.Command{
		Use:   "scan DIR",
		Short: "Scan every .txt file in a directory and write the zine",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			f := c.Flags()
			if f.Changed("workers") {
				a.cfg.Core.Workers = sf.workers
			}
			if f.Changed("output") {
				a.cfg.Output.Dir = sf.output
			}
			if f.Changed("max-docs") {
				a.cfg.Core.MaxDocs = sf.maxDocs
			}
			if f.Changed("language") {
				a.cfg.Core.Language = sf.language
			}
			if f.Changed("zine") {
				a.cfg.Output.Zine = sf.zine
			}
			if f.Changed("json") {
				a.cfg.Output.JSON = sf.json
			}
			if f.Changed("per-document") {
				a.cfg.Output.PerDocument = sf.perDocument
			}
			return runScan(c.Context(), a, args[0], sf.verbose, c.OutOrStdout())
		},
	}

	c.Flags().IntVarP(&sf.workers, "workers", "w", 0, "Documents scanned in parallel (default: number of CPUs)")
	c.Flags().StringVarP(&sf.output, "output", "o", "results", "Directory for the zine and result files")
	c.Flags().IntVar(&sf.maxDocs, "max-docs", 0, "Scan at most this many documents (0 for all)")
	c.Flags().StringVar(&sf.language, "language", "en", `Only scan documents in this ISO 639-1 language ("any" to disable)`)
	c.Flags().BoolVarP(&sf.verbose, "verbose", "V", false, "Print each haiku as it is found")
	c.Flags().BoolVar(&sf.zine, "zine", true, "Write "+report.ZineFile)
	c.Flags().BoolVar(&sf.json, "json", false, "Write "+report.JSONFile)
	c.Flags().BoolVar(&sf.perDocument, "per-document", true, "Write one result file per document")

	return c
}

func runScan(ctx context.Context, a *app, dir string, verbose bool, out io.Writer) error {
	paths, err := scan.ListDocuments(dir, a.cfg.Core.MaxDocs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(out, "No .txt files in %s\n", dir)
		return nil
	}

	detector, err := a.newDetector(a.loadCounter())
	if err != nil {
		return err
	}
	palette, err := a.palette()
	if err != nil {
		return err
	}

	spinner := internal.NewSpinner(os.Stderr)
	message := internal.RandomMessage()
	done := 0

	scanner := scan.New(detector,
		scan.WithWorkers(a.cfg.Core.Workers),
		scan.WithLanguageFilter(a.cfg.LanguageFilter()),
		scan.WithOnResult(func(r scan.Result) {
			done++
			if verbose {
				for _, c := range r.Candidates {
					spinner.Print(out, palette.FormatHaiku(r.Document.Name(), c.Pattern.String(), c.Lines))
				}
			}
			if done%messageEvery == 0 {
				message = internal.RandomMessage()
			}
			spinner.Step(fmt.Sprintf("[%d/%d] %s", done, len(paths), message))
		}),
	)

	started := time.Now()
	slog.Info("Scanning", "dir", dir, "documents", len(paths))
	summary, err := scanner.Run(ctx, paths)
	spinner.Done()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		slog.Warn("Scan interrupted, writing partial results", "scanned", len(summary.Results))
	}

	if err := writeReports(a, summary, started); err != nil {
		return err
	}

	fmt.Fprintf(out, "Scanned %d documents, found %d haiku in %d (%d skipped)\n",
		len(summary.Results), summary.All.Len(), len(summary.Found()), summary.Skipped())
	return nil
}

func writeReports(a *app, summary *scan.Summary, started time.Time) error {
	dir := a.cfg.Output.Dir

	if a.cfg.Output.Zine {
		err := report.WriteFile(filepath.Join(dir, report.ZineFile), func(w io.Writer) error {
			return report.WriteZine(w, summary.Results)
		})
		if err != nil {
			return err
		}
	}

	if a.cfg.Output.PerDocument {
		if _, err := report.WritePerDocument(dir, summary.Found()); err != nil {
			return err
		}
	}

	if a.cfg.Output.JSON {
		dc, err := a.cfg.DetectionConfig()
		if err != nil {
			return err
		}
		run := report.NewRun(started, dc.Patterns, summary.Results)
		err = report.WriteFile(filepath.Join(dir, report.JSONFile), func(w io.Writer) error {
			return report.WriteJSON(w, run)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func newDetectCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "detect [FILE]",
		Short: "Print the haiku found in one text (stdin when FILE is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			text, err := readInput(path, c.InOrStdin())
			if err != nil {
				return err
			}

			detector, err := a.newDetector(a.loadCounter())
			if err != nil {
				return err
			}

			found := detector.DetectText(textnorm.StripBoilerplate(text)).Sorted()
			out := c.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(found)
			}

			palette, err := a.palette()
			if err != nil {
				return err
			}
			for i, cand := range found {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, palette.FormatHaiku("", cand.Pattern.String(), cand.Lines))
			}
			return nil
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "Print candidates as JSON")
	return c
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count WORD...",
		Short: "Show the syllable count of each word and where it came from",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			counter := a.loadCounter()
			out := c.OutOrStdout()
			for _, word := range args {
				source := "heuristic"
				if _, ok := counter.Lookup(word); ok {
					source = "lexicon"
				}
				fmt.Fprintf(out, "%s\t%d\t%s\n", word, counter.Count(word), source)
			}
			return nil
		},
	}
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [FILE]",
		Short: "Print text the way the detector sees it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			text, err := readInput(path, c.InOrStdin())
			if err != nil {
				return err
			}
			if normalized := textnorm.Normalize(text); normalized != "" {
				fmt.Fprintln(c.OutOrStdout(), normalized)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintf(c.OutOrStdout(), "%s version: %s\n", appName, FullVersion)
		},
	}
}

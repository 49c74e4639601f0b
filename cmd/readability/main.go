// Package main provides the CLI entrypoint for readability.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/readability/internal/batch"
	"github.com/verte-zerg/readability/internal/config"
	"github.com/verte-zerg/readability/internal/lexicon"
	"github.com/verte-zerg/readability/internal/markup"
	"github.com/verte-zerg/readability/internal/model"
	"github.com/verte-zerg/readability/internal/readability"
	"github.com/verte-zerg/readability/internal/report"
	"github.com/verte-zerg/readability/internal/reportui"
	"github.com/verte-zerg/readability/internal/store"
	"github.com/verte-zerg/readability/internal/syllable"
	"github.com/verte-zerg/readability/internal/textstats"
)

const (
	defaultLang      = "en"
	defaultFormat    = report.FormatText
	defaultSegmenter = textstats.SegmenterRegex
	defaultJobs      = 4
	defaultInputFile = "feedback_content.txt"
	stdinName        = "-"
)

var (
	analyzeLang      string
	analyzeFormat    string
	analyzeMarkdown  bool
	analyzeFamiliar  string
	analyzeCMUDict   string
	analyzeSegmenter string
	analyzeJobs      int
	analyzeSave      bool
	analyzeCopy      bool
	analyzeTUI       bool
	analyzeVerbose   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "readability [files...]",
		Short: "Readability metrics for plain text and Markdown",
		Long: "Computes Flesch, SMOG, Dale-Chall and other readability scores.\n" +
			"Reads " + defaultInputFile + " when no files are given; use - for stdin.",
		SilenceUsage: true,
		RunE:         runAnalyzeCmd,
	}

	rootCmd.Flags().StringVar(&analyzeLang, "lang", defaultLang, "language code")
	rootCmd.Flags().StringVar(&analyzeFormat, "format", defaultFormat, "output format: "+strings.Join(report.Formats, ", "))
	rootCmd.Flags().BoolVar(&analyzeMarkdown, "markdown", false, "treat every input as Markdown")
	rootCmd.Flags().StringVar(&analyzeFamiliar, "familiar", "", "familiar-word list path (default: provisioned list for --lang)")
	rootCmd.Flags().StringVar(&analyzeCMUDict, "cmudict", "", "CMU pronouncing dictionary for syllable counts")
	rootCmd.Flags().StringVar(&analyzeSegmenter, "segmenter", defaultSegmenter, "segmenter: "+strings.Join(textstats.Segmenters, ", "))
	rootCmd.Flags().IntVar(&analyzeJobs, "jobs", defaultJobs, "documents analyzed in parallel")
	rootCmd.Flags().BoolVar(&analyzeSave, "save", false, "record results in history")
	rootCmd.Flags().BoolVar(&analyzeCopy, "copy", false, "copy the rendered report to the clipboard")
	rootCmd.Flags().BoolVar(&analyzeTUI, "tui", false, "browse results in an interactive viewer")
	rootCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "log per-document progress to stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyAnalyzeConfig(cmd, fileCfg.Analyze)

	cfg := model.Config{
		Lang:         strings.ToLower(strings.TrimSpace(analyzeLang)),
		Format:       strings.ToLower(analyzeFormat),
		Markdown:     analyzeMarkdown,
		FamiliarPath: analyzeFamiliar,
		CMUDictPath:  analyzeCMUDict,
		Segmenter:    strings.ToLower(analyzeSegmenter),
		Jobs:         analyzeJobs,
		Save:         analyzeSave,
		Copy:         analyzeCopy,
		TUI:          analyzeTUI,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	inputs := loadDocuments(args, cmd.InOrStdin(), cfg.Markdown)
	docs, readErrs := splitInputs(inputs)
	batchCfg := batch.Config{MaxConcurrency: cfg.Jobs}
	if analyzeVerbose {
		batchCfg.OnMessage = func(msg string) { logErrln(msg) }
	}
	analyzed, err := batch.Run(ctx, analyzer, docs, batchCfg)
	if err != nil {
		return fmt.Errorf("analysis aborted: %w", err)
	}
	results := mergeResults(inputs, readErrs, analyzed)

	if cfg.TUI {
		program := tea.NewProgram(reportui.NewModel(results), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
	} else {
		opts := report.Options{Format: cfg.Format, Color: report.IsTerminal(os.Stdout)}
		if err := report.Write(cmd.OutOrStdout(), results, opts); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	if cfg.Copy {
		copyReport(results, cfg.Format)
	}
	if cfg.Save {
		if err := saveRuns(ctx, config.DefaultDBPath(), cfg.Lang, results); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
	}

	if failed := batch.Failed(results); failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func applyAnalyzeConfig(cmd *cobra.Command, file config.AnalyzeConfig) {
	applyStringConfig(cmd, "lang", &analyzeLang, file.Lang)
	applyStringConfig(cmd, "format", &analyzeFormat, file.Format)
	applyStringConfig(cmd, "familiar", &analyzeFamiliar, file.Familiar)
	applyStringConfig(cmd, "cmudict", &analyzeCMUDict, file.CMUDict)
	applyStringConfig(cmd, "segmenter", &analyzeSegmenter, file.Segmenter)
	applyIntConfig(cmd, "jobs", &analyzeJobs, file.Jobs)
	applyBoolConfig(cmd, "markdown", &analyzeMarkdown, file.Markdown)
	applyBoolConfig(cmd, "save", &analyzeSave, file.Save)
}

func validateConfig(cfg model.Config) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if !slices.Contains(report.Formats, cfg.Format) {
		return fmt.Errorf("--format must be one of: %s", strings.Join(report.Formats, ", "))
	}
	if !slices.Contains(textstats.Segmenters, cfg.Segmenter) {
		return fmt.Errorf("--segmenter must be one of: %s", strings.Join(textstats.Segmenters, ", "))
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("--jobs must be >= 1")
	}
	if cfg.TUI && cfg.Copy {
		return fmt.Errorf("--copy cannot be combined with --tui")
	}
	return nil
}

func newAnalyzer(cfg model.Config) (*readability.Analyzer, error) {
	familiarPath := resolveFamiliarPath(cfg)
	familiar, err := lexicon.Load(familiarPath)
	if err != nil {
		return nil, familiarLoadError(cfg.Lang, familiarPath, err)
	}

	var counter syllable.Counter
	if cfg.CMUDictPath != "" {
		entries, err := lexicon.LoadCMUDict(cfg.CMUDictPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load CMU dictionary: %w: %w", readability.ErrResourceUnavailable, err)
		}
		counter = syllable.NewDictionary(entries, syllable.ForLang(cfg.Lang))
	}

	analyzer, err := readability.New(readability.Options{
		Lang:      cfg.Lang,
		Familiar:  familiar,
		Syllables: counter,
		Segmenter: cfg.Segmenter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}
	return analyzer, nil
}

func resolveFamiliarPath(cfg model.Config) string {
	if cfg.FamiliarPath != "" {
		return cfg.FamiliarPath
	}
	return config.DefaultFamiliarPath(cfg.Lang)
}

// input is a document or the error that kept it from being read.
type input struct {
	doc model.Document
	err error
}

func loadDocuments(args []string, stdin io.Reader, markdown bool) []input {
	if len(args) == 0 {
		args = []string{defaultInputFile}
	}
	inputs := make([]input, 0, len(args))
	for _, path := range args {
		var doc model.Document
		var err error
		if path == stdinName {
			doc, err = readability.ReadDocument("stdin", stdin)
		} else {
			doc, err = readability.ReadFile(path)
		}
		if err != nil {
			inputs = append(inputs, input{doc: model.Document{Name: path}, err: err})
			continue
		}
		if markdown || markup.IsMarkdown(path) {
			doc.Text = markup.PlainText([]byte(doc.Text))
		}
		inputs = append(inputs, input{doc: doc})
	}
	return inputs
}

func splitInputs(inputs []input) ([]model.Document, map[int]error) {
	docs := make([]model.Document, 0, len(inputs))
	readErrs := map[int]error{}
	for i, in := range inputs {
		if in.err != nil {
			readErrs[i] = in.err
			continue
		}
		docs = append(docs, in.doc)
	}
	return docs, readErrs
}

// mergeResults restores input order, placing read failures between analyzed
// documents.
func mergeResults(inputs []input, readErrs map[int]error, analyzed []batch.Result) []batch.Result {
	results := make([]batch.Result, 0, len(inputs))
	next := 0
	for i, in := range inputs {
		if err, ok := readErrs[i]; ok {
			results = append(results, batch.Result{Name: in.doc.Name, Err: err})
			continue
		}
		results = append(results, analyzed[next])
		next++
	}
	return results
}

func copyReport(results []batch.Result, format string) {
	var buf bytes.Buffer
	if err := report.Write(&buf, results, report.Options{Format: format}); err != nil {
		logErrf("failed to render report for clipboard: %v\n", err)
		return
	}
	if err := clipboard.WriteAll(buf.String()); err != nil {
		logErrf("failed to copy report to clipboard: %v\n", err)
		return
	}
	logErrln("Copied report to clipboard")
}

func saveRuns(ctx context.Context, dbPath, lang string, results []batch.Result) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	saved := 0
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		run := model.Run{
			Name:    r.Name,
			Lang:    lang,
			Stats:   r.Result.Stats,
			Metrics: r.Result.Metrics,
		}
		if ts, ok := r.Result.Get(model.MetricTextStandard); ok {
			run.TextStandard = ts.Text
		}
		if _, err := st.InsertRun(ctx, run); err != nil {
			return fmt.Errorf("failed to save %s: %w", r.Name, err)
		}
		saved++
	}
	logErrf("Saved %d run(s) to %s\n", saved, dbPath)
	return nil
}

func familiarLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load familiar-word list: %v", err),
		fmt.Sprintf("expected familiar-word list at: %s", path),
		"Run: readability langs",
		fmt.Sprintf("Download: readability wordlist --lang %s", lang),
	}
	return fmt.Errorf("%w: %s", readability.ErrResourceUnavailable, strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

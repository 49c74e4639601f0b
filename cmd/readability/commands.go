package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/readability/internal/config"
	"github.com/verte-zerg/readability/internal/model"
	"github.com/verte-zerg/readability/internal/report"
	"github.com/verte-zerg/readability/internal/store"
	"github.com/verte-zerg/readability/internal/textstats"
	"github.com/verte-zerg/readability/internal/wordfreq"
)

const (
	defaultWordlistSize = 3000
	defaultHistoryLast  = 20
	defaultTrendHeight  = 8
	defaultTrendWindow  = 1
)

var (
	wordlistLang  string
	wordlistSize  int
	wordlistForce bool

	historyName   string
	historyLang   string
	historySince  string
	historyLast   int
	historyMetric string
	historyWidth  int
	historyWindow int
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# readability configuration
# Uncomment a value to enable it. CLI flags override config values.

[analyze]
# lang = %q              # Language code
# format = %q          # Output format: %s
# familiar = ""            # Familiar-word list path (default: provisioned list for lang)
# cmudict = ""             # CMU pronouncing dictionary path
# segmenter = %q      # Segmenter: %s
# jobs = %d                # Documents analyzed in parallel
# markdown = false         # Treat every input as Markdown
# save = false             # Record results in history

[history]
# last = %d               # Runs shown by readability history
# metric = %q  # Metric plotted by readability history
# window = %d              # Moving average window for the history plot
`,
		defaultLang,
		defaultFormat,
		strings.Join(report.Formats, ", "),
		defaultSegmenter,
		strings.Join(textstats.Segmenters, ", "),
		defaultJobs,
		defaultHistoryLast,
		model.MetricFleschReadingEase,
		defaultTrendWindow,
	)
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List provisioned familiar-word lists",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	langs, err := provisionedLangs(config.DefaultFamiliarDir())
	if err != nil {
		return err
	}
	if len(langs) == 0 {
		logErrf("No familiar-word lists found. Download with: readability wordlist --lang <code>\n")
		return fmt.Errorf("no familiar-word lists found")
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func provisionedLangs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read familiar-word directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		if name == "ATTRIBUTION.txt" || name == "LICENSE.txt" {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(langs)
	return langs, nil
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Download familiar-word lists from wordfreq",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", "", "language code, comma-separated codes, or 'all' (default: en)")
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSize, "number of familiar words")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing files")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	outDir := config.DefaultFamiliarDir()

	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.NewClient().Download(ctx, config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", wheel.Filename)
	}
	available, err := wordfreq.Languages(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	langs, allRequested, err := resolveWordlistLangs(wordlistLang, available)
	if err != nil {
		return err
	}

	for _, lang := range langs {
		outPath := filepath.Join(outDir, lang+".txt")
		if !wordlistForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("familiar-word list already exists: %s (use --force to overwrite)", outPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat familiar-word list: %w", err)
			}
		}
		logErrf("Extracting %s familiar words...\n", lang)
		words, err := wordfreq.FamiliarWords(wheel.Path, lang, wordlistSize)
		if err != nil {
			if allRequested {
				logErrf("Skipping %s: %v\n", lang, err)
				continue
			}
			return fmt.Errorf("failed to extract %s word list: %w", lang, err)
		}
		if len(words) < wordlistSize {
			logErrf("Only %d words available for %s\n", len(words), lang)
		}
		if err := wordfreq.WriteList(outPath, words, wheel); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		logErrf("Wrote %s\n", outPath)
	}

	if err := wordfreq.WriteAttribution(wheel.Path, outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	logErrln("Wrote ATTRIBUTION.txt and LICENSE.txt")
	return nil
}

func resolveWordlistLangs(lang string, available []string) ([]string, bool, error) {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		lang = defaultLang
	}
	if lang == "all" {
		return append([]string(nil), available...), true, nil
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, a := range available {
		availableSet[a] = struct{}{}
	}
	var requested []string
	for _, part := range strings.Split(lang, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := availableSet[part]; !ok {
			return nil, false, fmt.Errorf("unknown language %q (available: %s)", part, strings.Join(available, ", "))
		}
		requested = append(requested, part)
	}
	if len(requested) == 0 {
		return nil, false, fmt.Errorf("--lang must not be empty")
	}
	return requested, false, nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved runs and a metric trend",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyName, "name", "", "document name filter")
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N runs (0 = all)")
	cmd.Flags().StringVar(&historyMetric, "metric", model.MetricFleschReadingEase, "metric to plot")
	cmd.Flags().IntVar(&historyWidth, "width", 0, "plot width (default: terminal width)")
	cmd.Flags().IntVar(&historyWindow, "window", defaultTrendWindow, "moving average window for the plot (1 = raw values)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)
	applyStringConfig(cmd, "metric", &historyMetric, fileCfg.History.Metric)
	applyIntConfig(cmd, "window", &historyWindow, fileCfg.History.Window)

	metric, err := resolveMetric(historyMetric)
	if err != nil {
		return err
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}
	var since *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		since = &parsed
	}
	cfg := model.HistoryConfig{
		Name:   historyName,
		Lang:   historyLang,
		Since:  since,
		Last:   historyLast,
		Metric: metric,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	points, err := st.MetricSeries(ctx, cfg.Metric, cfg)
	if err != nil {
		return fmt.Errorf("failed to load %s values: %w", cfg.Metric, err)
	}

	out := cmd.OutOrStdout()
	if err := report.RenderRuns(out, runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	useColor := report.IsTerminal(os.Stdout)
	if err := report.RenderTrend(out, cfg.Metric, points, historyWidth, defaultTrendHeight, historyWindow, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveMetric matches a metric name case-insensitively.
func resolveMetric(name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, m := range model.MetricOrder {
		if strings.EqualFold(m, name) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q (available: %s)", name, strings.Join(model.MetricOrder, ", "))
}

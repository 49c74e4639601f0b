// Package report renders analysis results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/readability/internal/batch"
	"github.com/verte-zerg/readability/internal/model"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatTable, FormatJSON, FormatYAML}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Options controls rendering.
type Options struct {
	Format string
	Color  bool
}

// Entry is the serialized form of one document's result.
type Entry struct {
	Name    string              `json:"name" yaml:"name"`
	Error   string              `json:"error,omitempty" yaml:"error,omitempty"`
	Stats   *model.TokenStats   `json:"stats,omitempty" yaml:"stats,omitempty"`
	Metrics []model.MetricValue `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// Write renders results in the requested format.
func Write(w io.Writer, results []batch.Result, opts Options) error {
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		return WriteText(w, results)
	case FormatTable:
		return WriteTable(w, results, opts.Color)
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatYAML:
		return WriteYAML(w, results)
	default:
		return fmt.Errorf("unknown format %q (available: %s)", opts.Format, strings.Join(Formats, ", "))
	}
}

// FormatValue renders a metric the way it is printed in text output.
func FormatValue(m model.MetricValue) string {
	if m.Text != "" {
		return m.Text
	}
	if m.Integer {
		return strconv.FormatInt(int64(math.Round(m.Value)), 10)
	}
	s := strconv.FormatFloat(m.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") && !strings.ContainsAny(s, "NaInf") {
		s += ".0"
	}
	return s
}

// WriteLines prints "<Metric Name>: <value>" for each metric.
func WriteLines(w io.Writer, res model.MetricResult) error {
	for _, m := range res.Metrics {
		if _, err := fmt.Fprintf(w, "%s: %s\n", m.Name, FormatValue(m)); err != nil {
			return err
		}
	}
	return nil
}

// WriteText prints metric lines per document. A header naming the document
// is only printed when there is more than one.
func WriteText(w io.Writer, results []batch.Result) error {
	multi := len(results) > 1
	for i, r := range results {
		if multi {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "== %s ==\n", r.Name); err != nil {
				return err
			}
		}
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "error: %v\n", r.Err); err != nil {
				return err
			}
			continue
		}
		if err := WriteLines(w, r.Result); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable prints one row per metric and one column per document.
func WriteTable(w io.Writer, results []batch.Result, color bool) error {
	headers := []string{"Metric"}
	rightAlign := map[int]bool{}
	for i, r := range results {
		headers = append(headers, r.Name)
		rightAlign[i+1] = true
	}
	rows := make([][]string, 0, len(model.MetricOrder)+2)
	rows = append(rows, statRow("Words", results, func(s model.TokenStats) int { return s.Words }))
	rows = append(rows, statRow("Sentences", results, func(s model.TokenStats) int { return s.Sentences }))
	for _, name := range model.MetricOrder {
		row := []string{name}
		for _, r := range results {
			cell := "-"
			if r.Err == nil {
				if m, ok := r.Result.Get(name); ok {
					cell = FormatValue(m)
				}
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	lines := formatTable(headers, rows, rightAlign)
	for i, line := range lines {
		if i == 0 && color {
			line = headerStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		msg := fmt.Sprintf("%s: %v", r.Name, r.Err)
		if color {
			msg = errorStyle.Render(msg)
		}
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}
	return nil
}

func statRow(label string, results []batch.Result, value func(model.TokenStats) int) []string {
	row := []string{label}
	for _, r := range results {
		if r.Err != nil {
			row = append(row, "-")
			continue
		}
		row = append(row, strconv.Itoa(value(r.Result.Stats)))
	}
	return row
}

// Entries converts results to their serialized form.
func Entries(results []batch.Result) []Entry {
	out := make([]Entry, 0, len(results))
	for _, r := range results {
		e := Entry{Name: r.Name}
		if r.Err != nil {
			e.Error = r.Err.Error()
		} else {
			stats := r.Result.Stats
			e.Stats = &stats
			e.Metrics = r.Result.Metrics
		}
		out = append(out, e)
	}
	return out
}

// WriteJSON encodes results as an indented JSON array.
func WriteJSON(w io.Writer, results []batch.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Entries(results))
}

// WriteYAML encodes results as a YAML sequence.
func WriteYAML(w io.Writer, results []batch.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Entries(results)); err != nil {
		return err
	}
	return encoder.Close()
}

// IsTerminal reports whether file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

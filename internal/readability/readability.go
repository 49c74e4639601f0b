// Package readability computes readability metrics for plain text.
package readability

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/verte-zerg/readability/internal/model"
	"github.com/verte-zerg/readability/internal/syllable"
	"github.com/verte-zerg/readability/internal/textstats"
)

// Options configures an Analyzer.
type Options struct {
	// Lang selects the heuristic syllable counter when Syllables is nil.
	Lang string
	// Familiar is the familiar-word list. It is required.
	Familiar  textstats.Familiar
	Syllables syllable.Counter
	Segmenter string
}

// Analyzer turns text into a MetricResult. It holds only read-only lookup
// tables and is safe for concurrent use.
type Analyzer struct {
	counter textstats.Counter
}

// New builds an Analyzer. A missing familiar-word list is reported as
// ErrResourceUnavailable rather than silently treating every word as hard.
func New(opts Options) (*Analyzer, error) {
	if opts.Familiar == nil {
		return nil, fmt.Errorf("familiar-word list: %w", ErrResourceUnavailable)
	}
	syl := opts.Syllables
	if syl == nil {
		syl = syllable.ForLang(opts.Lang)
	}
	return &Analyzer{counter: textstats.Counter{
		Syllables: syl,
		Familiar:  opts.Familiar,
		Segmenter: opts.Segmenter,
	}}, nil
}

// Tokenize derives the token statistics of text.
func (a *Analyzer) Tokenize(text string) model.TokenStats {
	return a.counter.Count(text)
}

// Analyze tokenizes text and computes every metric.
func (a *Analyzer) Analyze(text string) (model.MetricResult, error) {
	return Compute(a.Tokenize(text))
}

// AnalyzeFile reads path and analyzes its contents.
func (a *Analyzer) AnalyzeFile(path string) (model.MetricResult, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return model.MetricResult{}, err
	}
	return a.Analyze(doc.Text)
}

// Compute applies every formula to stats in presentation order.
func Compute(stats model.TokenStats) (model.MetricResult, error) {
	if stats.Words == 0 || stats.Sentences == 0 {
		return model.MetricResult{Stats: stats}, ErrDegenerateInput
	}
	metrics := []model.MetricValue{
		{Name: model.MetricFleschReadingEase, Value: FleschReadingEase(stats)},
		{Name: model.MetricFleschKincaidGrade, Value: FleschKincaidGrade(stats)},
		{Name: model.MetricSMOG, Value: SMOG(stats)},
		{Name: model.MetricColemanLiau, Value: ColemanLiau(stats)},
		{Name: model.MetricARI, Value: AutomatedReadabilityIndex(stats)},
		{Name: model.MetricDaleChall, Value: DaleChall(stats)},
		{Name: model.MetricDifficultWords, Value: float64(stats.Difficult), Integer: true},
		{Name: model.MetricLinsearWrite, Value: LinsearWrite(stats)},
		{Name: model.MetricGunningFog, Value: GunningFog(stats)},
		{
			Name:    model.MetricTextStandard,
			Value:   float64(TextStandardGrade(stats)),
			Text:    TextStandard(stats),
			Integer: true,
		},
		{Name: model.MetricFernandezHuerta, Value: FernandezHuerta(stats)},
		{Name: model.MetricSzigrisztPazos, Value: SzigrisztPazos(stats)},
		{Name: model.MetricGutierrezPolini, Value: GutierrezPolini(stats)},
		{Name: model.MetricCrawford, Value: Crawford(stats)},
		{Name: model.MetricGulpease, Value: Gulpease(stats)},
		{Name: model.MetricOsman, Value: Osman(stats)},
	}
	return model.MetricResult{Stats: stats, Metrics: metrics}, nil
}

// ReadFile loads a UTF-8 document from disk.
func ReadFile(path string) (model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %w", ErrInput, err)
	}
	return decode(path, data)
}

// ReadDocument loads a UTF-8 document from r.
func ReadDocument(name string, r io.Reader) (model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Document{}, fmt.Errorf("%w: %s: %w", ErrInput, name, err)
	}
	return decode(name, data)
}

func decode(name string, data []byte) (model.Document, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return model.Document{}, fmt.Errorf("%w: %s is not valid UTF-8", ErrInput, name)
	}
	return model.Document{Name: name, Text: string(data)}, nil
}

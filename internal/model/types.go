// Package model defines shared data structures.
package model

import "time"

// Metric names in presentation order.
const (
	MetricFleschReadingEase  = "Flesch Reading Ease"
	MetricFleschKincaidGrade = "Flesch-Kincaid Grade"
	MetricSMOG               = "SMOG"
	MetricColemanLiau        = "Coleman-Liau"
	MetricARI                = "Automated Readability Index"
	MetricDaleChall          = "Dale-Chall"
	MetricDifficultWords     = "Difficult Words"
	MetricLinsearWrite       = "Linsear Write"
	MetricGunningFog         = "Gunning Fog"
	MetricTextStandard       = "Text Standard"
	MetricFernandezHuerta    = "Fernandez Huerta"
	MetricSzigrisztPazos     = "Szigriszt Pazos"
	MetricGutierrezPolini    = "Gutierrez Polini"
	MetricCrawford           = "Crawford"
	MetricGulpease           = "Gulpease"
	MetricOsman              = "Osman"
)

// MetricOrder is the fixed enumeration order used by every renderer.
var MetricOrder = []string{
	MetricFleschReadingEase,
	MetricFleschKincaidGrade,
	MetricSMOG,
	MetricColemanLiau,
	MetricARI,
	MetricDaleChall,
	MetricDifficultWords,
	MetricLinsearWrite,
	MetricGunningFog,
	MetricTextStandard,
	MetricFernandezHuerta,
	MetricSzigrisztPazos,
	MetricGutierrezPolini,
	MetricCrawford,
	MetricGulpease,
	MetricOsman,
}

// Document is the text under analysis.
type Document struct {
	Name string
	Text string
}

// TokenStats holds the counts every formula is computed from.
type TokenStats struct {
	Sentences     int `json:"sentences" yaml:"sentences"`
	Words         int `json:"words" yaml:"words"`
	Syllables     int `json:"syllables" yaml:"syllables"`
	Characters    int `json:"characters" yaml:"characters"`
	Letters       int `json:"letters" yaml:"letters"`
	Polysyllables int `json:"polysyllables" yaml:"polysyllables"`
	// Unfamiliar counts unique words missing from the familiar-word list.
	Unfamiliar int `json:"unfamiliar_words" yaml:"unfamiliar_words"`
	// Difficult counts unique unfamiliar words with at least two syllables.
	Difficult int `json:"difficult_words" yaml:"difficult_words"`
	// Complex counts unique unfamiliar words with at least three syllables.
	Complex   int `json:"complex_words" yaml:"complex_words"`
	LongWords int `json:"long_words" yaml:"long_words"`

	// Linsear Write operates on a sample of the first words only.
	SampleEasy      int `json:"sample_easy" yaml:"sample_easy"`
	SampleHard      int `json:"sample_hard" yaml:"sample_hard"`
	SampleSentences int `json:"sample_sentences" yaml:"sample_sentences"`

	// Osman inputs.
	VeryComplex int `json:"very_complex_words" yaml:"very_complex_words"`
	Faseeh      int `json:"faseeh_words" yaml:"faseeh_words"`
}

// MetricValue is a single named metric. Text is set only for descriptive metrics.
type MetricValue struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Text  string  `json:"text,omitempty" yaml:"text,omitempty"`
	// Integer marks counts that render without decimals.
	Integer bool `json:"-" yaml:"-"`
}

// MetricResult is the ordered outcome of an analysis.
type MetricResult struct {
	Stats   TokenStats    `json:"stats" yaml:"stats"`
	Metrics []MetricValue `json:"metrics" yaml:"metrics"`
}

// Get returns the metric with the given name.
func (r MetricResult) Get(name string) (MetricValue, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return MetricValue{}, false
}

// Config defines analysis settings.
type Config struct {
	Lang         string
	Format       string
	Markdown     bool
	FamiliarPath string
	CMUDictPath  string
	Segmenter    string
	Jobs         int
	Save         bool
	Copy         bool
	TUI          bool
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Name   string
	Lang   string
	Since  *time.Time
	Last   int
	Metric string
}

// Run captures a stored analysis run.
type Run struct {
	ID           int64
	RunID        string
	CreatedAt    time.Time
	Name         string
	Lang         string
	Stats        TokenStats
	TextStandard string
	Metrics      []MetricValue
}

// MetricPoint is one value of a metric across stored runs.
type MetricPoint struct {
	RunID     int64
	CreatedAt time.Time
	Value     float64
}

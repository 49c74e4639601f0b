package readability

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/verte-zerg/readability/internal/lexicon"
	"github.com/verte-zerg/readability/internal/model"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	familiar := lexicon.NewSet([]string{"the", "a", "and", "of", "to", "is", "on", "was", "it"})
	a, err := New(Options{Lang: "en", Familiar: familiar})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

func metric(t *testing.T, res model.MetricResult, name string) model.MetricValue {
	t.Helper()
	m, ok := res.Get(name)
	if !ok {
		t.Fatalf("metric %q missing", name)
	}
	return m
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 0.011 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestSimpleTextIsEasy(t *testing.T) {
	a := newTestAnalyzer(t)
	res, err := a.Analyze("The cat sat. The dog ran.")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Stats.Sentences != 2 || res.Stats.Words != 6 || res.Stats.Syllables != 6 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	fre := metric(t, res, model.MetricFleschReadingEase).Value
	if fre <= 90 {
		t.Fatalf("expected Flesch Reading Ease > 90, got %v", fre)
	}
	approx(t, "Flesch Reading Ease", fre, 119.19)
}

func TestMetricsFollowPresentationOrder(t *testing.T) {
	a := newTestAnalyzer(t)
	res, err := a.Analyze("The cat sat on the mat. It was a sunny day.")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(res.Metrics) != len(model.MetricOrder) {
		t.Fatalf("expected %d metrics, got %d", len(model.MetricOrder), len(res.Metrics))
	}
	for i, name := range model.MetricOrder {
		if res.Metrics[i].Name != name {
			t.Fatalf("metric %d is %q, want %q", i, res.Metrics[i].Name, name)
		}
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := newTestAnalyzer(t)
	text := "Readability formulas estimate difficulty. They rely on sentence length and word complexity."
	first, err := a.Analyze(text)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	second, err := a.Analyze(text)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if first.Stats != second.Stats {
		t.Fatalf("stats differ: %+v vs %+v", first.Stats, second.Stats)
	}
	for i := range first.Metrics {
		if first.Metrics[i] != second.Metrics[i] {
			t.Fatalf("metric %s differs: %+v vs %+v", first.Metrics[i].Name, first.Metrics[i], second.Metrics[i])
		}
	}
}

func TestFleschKincaidDecreasesWithMoreWords(t *testing.T) {
	prev := math.Inf(1)
	for words := 40; words <= 44; words++ {
		stats := model.TokenStats{Sentences: 2, Syllables: 60, Words: words}
		got := FleschKincaidGrade(stats)
		if got >= prev {
			t.Fatalf("expected grade to decrease at %d words: %v >= %v", words, got, prev)
		}
		prev = got
	}
}

func TestDegenerateInput(t *testing.T) {
	a := newTestAnalyzer(t)
	for _, text := range []string{"", "  \n", "?!..."} {
		_, err := a.Analyze(text)
		if !errors.Is(err, ErrDegenerateInput) {
			t.Fatalf("expected ErrDegenerateInput for %q, got %v", text, err)
		}
	}
	if _, err := Compute(model.TokenStats{Words: 3}); !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("expected ErrDegenerateInput for zero sentences, got %v", err)
	}
}

func TestMissingFamiliarListIsSurfaced(t *testing.T) {
	_, err := New(Options{Lang: "en"})
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("expected ErrResourceUnavailable, got %v", err)
	}
}

func TestTechnicalSentenceIsHard(t *testing.T) {
	a := newTestAnalyzer(t)
	text := "The comprehensive organizational infrastructure modernization initiative necessitates " +
		"considerable interdepartmental coordination, sophisticated technological implementation, " +
		"and continuous administrative evaluation, particularly regarding regulatory compliance, " +
		"operational sustainability, and institutional accountability."
	res, err := a.Analyze(text)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Stats.Sentences != 1 {
		t.Fatalf("expected 1 sentence, got %d", res.Stats.Sentences)
	}
	if fog := metric(t, res, model.MetricGunningFog).Value; fog <= 12 {
		t.Fatalf("expected Gunning Fog > 12, got %v", fog)
	}
	if smog := metric(t, res, model.MetricSMOG).Value; smog <= 12 {
		t.Fatalf("expected SMOG > 12, got %v", smog)
	}
}

func TestFormulasOnKnownStats(t *testing.T) {
	stats := model.TokenStats{
		Words:           100,
		Sentences:       5,
		Syllables:       140,
		Letters:         450,
		Characters:      480,
		Polysyllables:   10,
		Unfamiliar:      12,
		Difficult:       12,
		Complex:         8,
		LongWords:       20,
		SampleEasy:      80,
		SampleHard:      20,
		SampleSentences: 5,
		VeryComplex:     1,
	}
	res, err := Compute(stats)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	want := map[string]float64{
		model.MetricFleschReadingEase:  68.1,
		model.MetricFleschKincaidGrade: 8.7,
		model.MetricSMOG:               11.2,
		model.MetricColemanLiau:        9.18,
		model.MetricARI:                11.2,
		model.MetricDaleChall:          6.52,
		model.MetricDifficultWords:     12,
		model.MetricLinsearWrite:       14,
		model.MetricGunningFog:         11.2,
		model.MetricTextStandard:       11,
		model.MetricFernandezHuerta:    102.44,
		model.MetricSzigrisztPazos:     99.62,
		model.MetricGutierrezPolini:    44.55,
		model.MetricCrawford:           2.4,
		model.MetricGulpease:           56,
		model.MetricOsman:              141.56,
	}
	for name, w := range want {
		approx(t, name, metric(t, res, name).Value, w)
	}
	if got := metric(t, res, model.MetricTextStandard).Text; got != "10th and 11th grade" {
		t.Fatalf("unexpected text standard: %q", got)
	}
}

func TestLinsearWriteThreshold(t *testing.T) {
	easy := model.TokenStats{SampleEasy: 20, SampleHard: 0, SampleSentences: 2}
	// r = 10, below the threshold: (10 - 2) / 2.
	approx(t, "Linsear Write", LinsearWrite(easy), 4)
	hard := model.TokenStats{SampleEasy: 10, SampleHard: 10, SampleSentences: 1}
	// r = 40: 40 / 2.
	approx(t, "Linsear Write", LinsearWrite(hard), 20)
}

func TestDaleChallAdjustment(t *testing.T) {
	under := model.TokenStats{Words: 100, Sentences: 10, Unfamiliar: 5}
	approx(t, "Dale-Chall", DaleChall(under), 0.1579*5+0.0496*10)
	over := model.TokenStats{Words: 100, Sentences: 10, Unfamiliar: 6}
	approx(t, "Dale-Chall", DaleChall(over), 0.1579*6+0.0496*10+3.6365)
}

func TestDaleChallCountsOneSyllableUnfamiliarWords(t *testing.T) {
	a, err := New(Options{Lang: "en", Familiar: lexicon.NewSet([]string{"the"})})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := a.Analyze("The gnu sat on a mat. The yak ran to the lake.")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Stats.Words != 12 || res.Stats.Sentences != 2 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	if res.Stats.Unfamiliar != 9 {
		t.Fatalf("expected 9 unique unfamiliar words, got %d", res.Stats.Unfamiliar)
	}
	if got := metric(t, res, model.MetricDifficultWords).Value; got != 0 {
		t.Fatalf("expected no difficult words, got %v", got)
	}
	// 75% unfamiliar: 0.1579*75 + 0.0496*6 + 3.6365.
	approx(t, "Dale-Chall", metric(t, res, model.MetricDaleChall).Value, 15.78)
}

func TestGradeLevelsUseScoreBands(t *testing.T) {
	if got := fleschBand(95); len(got) != 1 || got[0] != 5 {
		t.Fatalf("fleschBand(95) = %v", got)
	}
	if got := fleschBand(65); len(got) != 2 || got[0] != 8 || got[1] != 9 {
		t.Fatalf("fleschBand(65) = %v", got)
	}
	if got := fleschBand(12); len(got) != 1 || got[0] != 13 {
		t.Fatalf("fleschBand(12) = %v", got)
	}
	if got := daleChallBand(4.2); len(got) != 1 || got[0] != 4 {
		t.Fatalf("daleChallBand(4.2) = %v", got)
	}
	if got := daleChallBand(6.52); len(got) != 2 || got[0] != 7 || got[1] != 8 {
		t.Fatalf("daleChallBand(6.52) = %v", got)
	}
	if got := daleChallBand(9.5); len(got) != 2 || got[0] != 13 || got[1] != 15 {
		t.Fatalf("daleChallBand(9.5) = %v", got)
	}

	// A raw Dale-Chall score of 3 would pull the median down; its band is grade 4.
	stats := model.TokenStats{Words: 100, Sentences: 10, Syllables: 100, Letters: 400, Characters: 420, Unfamiliar: 5}
	levels := GradeLevels(stats)
	if len(levels) != 12+1+1 {
		t.Fatalf("expected 14 candidate grades, got %d: %v", len(levels), levels)
	}
	if levels[len(levels)-1] != 4 {
		t.Fatalf("expected Dale-Chall band 4 last, got %v", levels)
	}
}

func TestTextStandardRoundTrip(t *testing.T) {
	a := newTestAnalyzer(t)
	text := strings.Join([]string{
		"Scientists have studied the migration of birds for many centuries.",
		"Modern tracking devices reveal remarkable patterns across continents.",
		"Some species travel thousands of kilometers without stopping to rest.",
		"Researchers believe magnetic fields help them navigate accurately.",
	}, " ")
	res, err := a.Analyze(text)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	label := metric(t, res, model.MetricTextStandard).Text
	grade, err := ParseGrade(label)
	if err != nil {
		t.Fatalf("ParseGrade(%q) failed: %v", label, err)
	}
	levels := GradeLevels(res.Stats)
	sort.Float64s(levels)
	median := levels[len(levels)/2]
	if math.Abs(float64(grade)-median) > 1 {
		t.Fatalf("text standard %q (%d) is not within 1 of median %v", label, grade, median)
	}
}

func TestGradeLabel(t *testing.T) {
	cases := map[int]string{
		1:  "0th and 1st grade",
		2:  "1st and 2nd grade",
		3:  "2nd and 3rd grade",
		12: "11th and 12th grade",
		13: "12th and 13th grade",
		22: "21st and 22nd grade",
	}
	for g, want := range cases {
		if got := GradeLabel(g); got != want {
			t.Fatalf("GradeLabel(%d) = %q, want %q", g, got, want)
		}
		parsed, err := ParseGrade(want)
		if err != nil || parsed != g {
			t.Fatalf("ParseGrade(%q) = %d, %v", want, parsed, err)
		}
	}
	if _, err := ParseGrade("grade unknown"); err == nil {
		t.Fatalf("expected error for label without digits")
	}
}

func TestReadFileRejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte{0xff, 0xfe, 0x41}, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ReadFile(bad); !errors.Is(err, ErrInput) {
		t.Fatalf("expected ErrInput for invalid UTF-8, got %v", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.txt")); !errors.Is(err, ErrInput) {
		t.Fatalf("expected ErrInput for missing file, got %v", err)
	}
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback_content.txt")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbfThe cat sat. The dog ran."), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	a := newTestAnalyzer(t)
	res, err := a.AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if res.Stats.Words != 6 {
		t.Fatalf("expected 6 words, got %d", res.Stats.Words)
	}
}

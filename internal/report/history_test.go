package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/readability/internal/model"
)

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 5, 10}); got != " +@" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3}); got != "++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MovingAverage[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRenderTrendDrawsPlot(t *testing.T) {
	points := []model.MetricPoint{{Value: 60}, {Value: 70}, {Value: 65}}
	var buf bytes.Buffer
	if err := RenderTrend(&buf, model.MetricFleschReadingEase, points, 12, 4, 0, false); err != nil {
		t.Fatalf("RenderTrend failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Flesch Reading Ease over 3 runs" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "min=60.00 max=70.00") {
		t.Fatalf("unexpected summary %q", lines[1])
	}
	if len(lines) != 3+4 {
		t.Fatalf("expected 4 plot rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[3], "70.0 │ ") || !strings.HasPrefix(lines[6], "60.0 │ ") {
		t.Fatalf("unexpected axis labels:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected color codes")
	}
}

func TestRenderTrendSmoothsPlot(t *testing.T) {
	points := []model.MetricPoint{{Value: 60}, {Value: 70}, {Value: 65}}
	var buf bytes.Buffer
	if err := RenderTrend(&buf, model.MetricFleschReadingEase, points, 12, 4, 2, false); err != nil {
		t.Fatalf("RenderTrend failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Flesch Reading Ease over 3 runs (moving average of 2)" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "min=60.00 max=70.00") {
		t.Fatalf("summary should use raw values, got %q", lines[1])
	}
	// Smoothed values are 60, 65, 67.5.
	if !strings.HasPrefix(lines[3], "67.5 │ ") || !strings.HasPrefix(lines[6], "60.0 │ ") {
		t.Fatalf("unexpected axis labels:\n%s", buf.String())
	}
}

func TestRenderTrendEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTrend(&buf, "SMOG", nil, 0, 0, 0, false); err != nil {
		t.Fatalf("RenderTrend failed: %v", err)
	}
	if buf.String() != "No values recorded for SMOG.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderRuns(t *testing.T) {
	runs := []model.Run{{
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local),
		Name:         "notes.md",
		Lang:         "en",
		Stats:        model.TokenStats{Words: 120, Sentences: 8},
		TextStandard: "7th and 8th grade",
	}}
	var buf bytes.Buffer
	if err := RenderRuns(&buf, runs); err != nil {
		t.Fatalf("RenderRuns failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2026-01-02 03:04") || !strings.Contains(out, "7th and 8th grade") {
		t.Fatalf("unexpected runs output:\n%s", out)
	}
}

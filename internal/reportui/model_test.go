package reportui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/readability/internal/batch"
	"github.com/verte-zerg/readability/internal/model"
)

func testResults() []batch.Result {
	return []batch.Result{
		{
			Name: "intro.md",
			Result: model.MetricResult{
				Stats: model.TokenStats{Words: 42, Sentences: 3, Syllables: 60},
				Metrics: []model.MetricValue{
					{Name: model.MetricFleschReadingEase, Value: 71.2},
					{Name: model.MetricTextStandard, Value: 7, Integer: true, Text: "6th and 7th grade"},
				},
			},
		},
		{Name: "broken.txt", Err: errors.New("no words")},
	}
}

func TestViewShowsActiveDocument(t *testing.T) {
	m := NewModel(testResults())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	for _, want := range []string{"intro.md", "broken.txt", "Flesch Reading Ease", "71.2", "6th and 7th grade", "42"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, view)
		}
	}
}

func TestTabsWrapAround(t *testing.T) {
	m := NewModel(testResults())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != 1 {
		t.Fatalf("expected second tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "Analysis failed: no words") {
		t.Fatalf("expected error view for failed document")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != 0 {
		t.Fatalf("expected wrap to first tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != 1 {
		t.Fatalf("expected wrap to last tab, got %d", m.activeTab)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(testResults())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("a-very-long-document-name.md", 10); got != "a-very-..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}

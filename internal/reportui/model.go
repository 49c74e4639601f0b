// Package reportui provides the Bubble Tea report viewer.
package reportui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/readability/internal/batch"
	"github.com/verte-zerg/readability/internal/model"
	"github.com/verte-zerg/readability/internal/report"
)

const (
	metricColWidth = 28
	valueColWidth  = 22
	maxTabLabel    = 24
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model shows one tab per analyzed document.
type Model struct {
	results   []batch.Result
	activeTab int
	tables    []table.Model

	width  int
	height int
}

// NewModel constructs a report viewer for results.
func NewModel(results []batch.Result) *Model {
	m := &Model{results: results}
	m.tables = make([]table.Model, len(results))
	for i, r := range results {
		m.tables[i] = buildMetricTable(r)
	}
	if len(m.tables) > 0 {
		m.tables[0].Focus()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		}
		if len(m.tables) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.tables[m.activeTab], cmd = m.tables[m.activeTab].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(1, lipgloss.Height(activeNavStyle.Render("X")))
	footerHeight = 2
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	cardsHeight := lipgloss.Height(renderCards(batch.Result{}))
	for i := range m.tables {
		m.tables[i].SetWidth(min(m.width, metricColWidth+valueColWidth+4))
		m.tables[i].SetHeight(max(2, bodyHeight-cardsHeight-1))
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.results)
	if count == 0 {
		return
	}
	m.tables[m.activeTab].Blur()
	m.activeTab = (m.activeTab + delta + count) % count
	m.tables[m.activeTab].Focus()
}

func (m *Model) renderTabs() string {
	if len(m.results) == 0 {
		return activeNavStyle.Render("No documents")
	}
	parts := make([]string, 0, len(m.results))
	for i, r := range m.results {
		label := truncateLine(r.Name, maxTabLabel)
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	if len(m.results) == 0 {
		return "Nothing to show."
	}
	r := m.results[m.activeTab]
	if r.Err != nil {
		return errorStyle.Render(fmt.Sprintf("Analysis failed: %v", r.Err))
	}
	return renderCards(r) + "\n" + m.tables[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	help := helpStyle.Render("Docs: left/right  Scroll: up/down  Quit: q")
	if len(m.results) == 0 || m.results[m.activeTab].Err != nil {
		return help
	}
	s := m.results[m.activeTab].Result.Stats
	stats := fmt.Sprintf("chars=%d letters=%d polysyllables=%d long=%d complex=%d",
		s.Characters, s.Letters, s.Polysyllables, s.LongWords, s.Complex)
	return helpStyle.Render(truncateLine(stats, m.width)) + "\n" + help
}

func renderCards(r batch.Result) string {
	s := r.Result.Stats
	grade := "-"
	if mv, ok := r.Result.Get(model.MetricTextStandard); ok {
		grade = report.FormatValue(mv)
	}
	cards := []string{
		metricCard("Words", fmt.Sprintf("%d", s.Words)),
		metricCard("Sentences", fmt.Sprintf("%d", s.Sentences)),
		metricCard("Syllables", fmt.Sprintf("%d", s.Syllables)),
		metricCard("Difficult", fmt.Sprintf("%d", s.Difficult)),
		metricCard("Grade", grade),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildMetricTable(r batch.Result) table.Model {
	columns := []table.Column{
		{Title: "Metric", Width: metricColWidth},
		{Title: "Value", Width: valueColWidth},
	}
	rows := make([]table.Row, 0, len(r.Result.Metrics))
	for _, mv := range r.Result.Metrics {
		rows = append(rows, table.Row{mv.Name, report.FormatValue(mv)})
	}
	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithStyles(metricTableStyles()),
	)
}

func metricTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Package tui is an interactive browser over a workshop record index:
// a filterable record list on the left, a detail panel on the right with
// sequence, composition and translation views.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/index"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/seq"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#F59E0B")
	surfaceColor = lipgloss.Color("#1F2937")
	textColor    = lipgloss.Color("#F3F4F6")
	mutedColor   = lipgloss.Color("#9CA3AF")
	borderColor  = lipgloss.Color("#374151")
)

var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	sequenceStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#111827")).
			Padding(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	metaStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	sectionStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)

type listItem struct {
	record index.Record
}

func (i listItem) FilterValue() string { return i.record.ID }

func (i listItem) Title() string { return i.record.ID }

func (i listItem) Description() string {
	return fmt.Sprintf("%d bp    GC %.1f%%", i.record.Length, i.record.GC)
}

type mode int

const (
	modeSequence mode = iota
	modeComposition
	modeTranslation
)

func (m mode) String() string {
	switch m {
	case modeSequence:
		return "Sequence"
	case modeComposition:
		return "Composition"
	case modeTranslation:
		return "Translation"
	default:
		return "Unknown"
	}
}

// Model is the bubbletea model for the record browser.
type Model struct {
	list        list.Model
	records     []index.Record
	currentMode mode
	showHelp    bool
	width       int
	height      int
}

// NewModel builds the browser over idx.
func NewModel(idx *index.Index) Model {
	items := make([]list.Item, len(idx.Records))
	for i, record := range idx.Records {
		items[i] = listItem{record: record}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Workshop Records"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)
	return Model{list: l, records: idx.Records}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) cycleMode() Model {
	m.currentMode = (m.currentMode + 1) % 3
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h":
			m.showHelp = !m.showHelp
			return m, nil
		case "tab":
			return m.cycleMode(), nil
		case "1":
			m.currentMode = modeSequence
			return m, nil
		case "2":
			m.currentMode = modeComposition
			return m, nil
		case "3":
			m.currentMode = modeTranslation
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpModal()
	}
	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftPanel(),
		m.renderRightPanel(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderLeftPanel() string {
	return containerStyle.
		Width(m.width/3 - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

func (m Model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3
	panel := containerStyle.Width(rightWidth - 2).Height(m.height - 4)

	item := m.list.SelectedItem()
	if item == nil {
		return panel.Render("No record selected")
	}
	record := item.(listItem).record

	header := titleStyle.Render(record.ID)
	if record.Description != "" {
		header += " " + metaStyle.Render(record.Description)
	}
	meta := metaStyle.Render(fmt.Sprintf("Length: %d bp    GC: %.1f%%", record.Length, record.GC))

	var content string
	switch m.currentMode {
	case modeSequence:
		content = m.renderSequence(record.Sequence, "Sequence")
	case modeComposition:
		content = m.renderComposition(record)
	case modeTranslation:
		content = m.renderTranslation(record)
	}

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, header, meta, "", content))
}

func (m Model) renderSequence(sequence, title string) string {
	if sequence == "" {
		return metaStyle.Render("No " + strings.ToLower(title) + " available")
	}
	body := sequenceStyle.
		Width(m.width*2/3 - 6).
		Render(sequence)
	return lipgloss.JoinVertical(lipgloss.Left, sectionStyle.Render(title+":"), "", body)
}

func (m Model) renderComposition(record index.Record) string {
	if len(record.Composition) == 0 {
		return metaStyle.Render("No composition available")
	}
	bases := make([]string, 0, len(record.Composition))
	for b := range record.Composition {
		bases = append(bases, b)
	}
	sort.Strings(bases)
	var rows []string
	for _, b := range bases {
		n := record.Composition[b]
		pct := 100 * float64(n) / float64(record.Length)
		rows = append(rows, fmt.Sprintf("%s  %6d  %5.1f%%", b, n, pct))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Base composition:"), "",
		sequenceStyle.Render(strings.Join(rows, "\n")))
}

func (m Model) renderTranslation(record index.Record) string {
	prot, err := seq.Translate(record.Sequence)
	if err != nil {
		return metaStyle.Render("No translation available")
	}
	return m.renderSequence(prot, "Translation (standard code, to first stop)")
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("%d/%d records", m.list.Index()+1, len(m.records))
	center := "Mode: " + m.currentMode.String()
	right := "tab: cycle view  h: help  q: quit"

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right) - 6
	var content string
	if spacing > 0 {
		content = left + strings.Repeat(" ", spacing/2) + center + strings.Repeat(" ", spacing-spacing/2) + right
	} else {
		content = left + " | " + center
	}
	return statusBarStyle.Width(m.width).Render(content)
}

func (m Model) renderHelpModal() string {
	help := `Workshop Records Browser - Help

Navigation:
  up/down, j/k   Navigate list
  /              Filter records
  tab            Cycle view modes

View Modes:
  1              Sequence
  2              Base composition
  3              Translation

General:
  h              Toggle this help
  q, Ctrl+C      Quit

Current Mode: ` + m.currentMode.String()

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(56).
		Render(help)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// Run starts the browser in the alternate screen.
func Run(idx *index.Index) error {
	p := tea.NewProgram(NewModel(idx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

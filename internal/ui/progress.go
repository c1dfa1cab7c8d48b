// Package ui renders interactive terminal progress for long lint runs.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Event is one unit of finished lint work, usually a function body.
type Event struct {
	// Label identifies the unit, e.g. "src/main.rs::render".
	Label string
	// Findings is the number of diagnostics the unit produced.
	Findings int
}

type itemStatus uint8

const (
	statusQueued itemStatus = iota
	statusClean
	statusFindings
)

type lintItem struct {
	label    string
	status   itemStatus
	findings int
}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []lintItem
	index   map[string]int
	checked int
	width   int
	done    bool
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders lint-run
// progress. labels lists the units in display order; events delivers one
// Event per finished unit and is closed when the run completes.
func NewProgressModel(title string, labels []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]lintItem, 0, len(labels))
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		items = append(items, lintItem{label: label})
		index[label] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.checked, len(m.items))
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.label, nameWidth)
		status := statusText(item)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev Event) tea.Cmd {
	idx, ok := m.index[ev.Label]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if item.status == statusQueued {
		m.checked++
	}
	item.findings = ev.Findings
	if ev.Findings > 0 {
		item.status = statusFindings
	} else {
		item.status = statusClean
	}

	if len(m.items) == 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.checked) / float64(len(m.items)))
}

func statusText(item lintItem) string {
	switch item.status {
	case statusClean:
		return "clean"
	case statusFindings:
		if item.findings == 1 {
			return "1 finding"
		}
		return fmt.Sprintf("%d findings", item.findings)
	default:
		return "queued"
	}
}

func styleStatus(status itemStatus) lipgloss.Style {
	switch status {
	case statusClean:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case statusFindings:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

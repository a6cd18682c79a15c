// Package tui is a live ingest-diagnostics dashboard for `cmd/chessdb
// watch`: a scrolling feed of parse_error/warning messages alongside
// running totals, so a long read_pgn-backed import can be observed without
// tailing raw log output. Adapted from kyleboon-gochess/cmd/chesstui's
// bubbletea Model/Update/View shape (viewport for scrolling content,
// lipgloss for styling), repointed from an interactive random-move chess
// board viewer onto ingest progress.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Event is one diagnostic or progress update fed into the dashboard. Source
// emits these as it drains chunks; the TUI only renders them.
type Event struct {
	Path      string
	GameIndex int
	Level     string // "info", "warn", "error"
	Message   string
}

// EventSource is anything that can hand the dashboard its next event.
// ChannelSource implements it by wrapping a channel, which cmd/chessdb's
// watch command feeds from the chunks it drains.
type EventSource interface {
	// Next blocks until an event is available, or returns ok=false once the
	// source is exhausted.
	Next() (Event, bool)
}

type eventMsg Event
type doneMsg struct{}

// Model is the dashboard's bubbletea state.
type Model struct {
	source       EventSource
	logViewport  viewport.Model
	log          []string
	imported     int
	warnings     int
	errors       int
	currentPath  string
	done         bool
	width, height int
}

// New builds a dashboard model that reads events from source.
func New(source EventSource) Model {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4"))

	return Model{
		source:      source,
		logViewport: vp,
		width:       80,
		height:      24,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.source)
}

func waitForEvent(source EventSource) tea.Cmd {
	return func() tea.Msg {
		ev, ok := source.Next()
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport = viewport.New(m.width-4, m.height-8)
		m.logViewport.Style = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
		m.logViewport.SetContent(strings.Join(m.log, "\n"))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd

	case eventMsg:
		ev := Event(msg)
		m.currentPath = ev.Path
		switch ev.Level {
		case "warn":
			m.warnings++
		case "error":
			m.errors++
		default:
			m.imported++
		}

		line := fmt.Sprintf("[%s] %s", ev.Level, ev.Message)
		if ev.GameIndex > 0 {
			line = fmt.Sprintf("[%s] (game %d) %s", ev.Level, ev.GameIndex, ev.Message)
		}
		m.log = append(m.log, line)
		m.logViewport.SetContent(strings.Join(m.log, "\n"))
		m.logViewport.GotoBottom()

		return m, waitForEvent(m.source)

	case doneMsg:
		m.done = true
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		Bold(true)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Padding(0, 1)

	status := fmt.Sprintf("rows: %d  warnings: %d  errors: %d  file: %s",
		m.imported, m.warnings, m.errors, m.currentPath)
	if m.done {
		status += "  (done, press q to exit)"
	}

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		titleStyle.Render("chessdb ingest"),
		m.logViewport.View(),
		infoStyle.Render(status),
	)
}

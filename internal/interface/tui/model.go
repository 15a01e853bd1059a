// Package tui provides the interactive menu for running analyses without
// remembering CLI flags.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/igupta/rivalscope/internal/core/config"
)

type mode int

const (
	modeMenu mode = iota
	modeInput
	modeRunning
	modeDone
)

var menuItems = []string{
	"Analyze a company",
	"Compare companies",
	"Quit",
}

// Model drives the menu / input / run / result state machine
type Model struct {
	cfg  *config.Config
	mode mode

	cursor  int
	compare bool

	input   textinput.Model
	spinner spinner.Model

	runCh   chan tea.Msg
	log     []string
	summary []string
	err     error
}

// New creates the TUI model
func New(cfg *config.Config) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{cfg: cfg, input: ti, spinner: sp}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stepLogMsg:
		m.log = append(m.log, string(msg))
		return m, listen(m.runCh)

	case runDoneMsg:
		m.mode = modeDone
		m.summary = msg.summary
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.mode == modeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeMenu:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case "enter":
			switch m.cursor {
			case 0, 1:
				m.compare = m.cursor == 1
				m.mode = modeInput
				m.input.Reset()
				if m.compare {
					m.input.Placeholder = "Amazon, Flipkart, Walmart"
				} else {
					m.input.Placeholder = "Notion"
				}
				m.input.Focus()
				return m, textinput.Blink
			default:
				return m, tea.Quit
			}
		}

	case modeInput:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.mode = modeMenu
		case "enter":
			return m.startRun()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case modeRunning:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case modeDone:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		default:
			m.mode = modeMenu
			m.log = nil
			m.summary = nil
			m.err = nil
		}
	}
	return m, nil
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}

	m.mode = modeRunning
	m.log = nil
	m.runCh = make(chan tea.Msg, 16)

	var run tea.Cmd
	if m.compare {
		var companies []string
		for _, c := range strings.Split(value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				companies = append(companies, c)
			}
		}
		run = startComparison(m.cfg, companies, m.runCh)
	} else {
		run = startAnalysis(m.cfg, value, m.runCh)
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("rivalscope"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeMenu:
		for i, item := range menuItems {
			if i == m.cursor {
				b.WriteString(selectedItemStyle.Render("> " + item))
			} else {
				b.WriteString(itemStyle.Render(item))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("up/down: move  enter: select  q: quit"))

	case modeInput:
		if m.compare {
			b.WriteString(promptStyle.Render("Companies to compare (comma separated, 2-5):"))
		} else {
			b.WriteString(promptStyle.Render("Company to analyze:"))
		}
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: run  esc: back"))

	case modeRunning:
		b.WriteString(m.spinner.View())
		b.WriteString(" Running analysis...\n\n")
		b.WriteString(m.renderLog())

	case modeDone:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Failed: %v", m.err)))
		} else {
			b.WriteString(successStyle.Render("Done"))
			for _, line := range m.summary {
				b.WriteString("\n" + itemStyle.Render(line))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(m.renderLog())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("any key: menu  q: quit"))
	}

	b.WriteString("\n")
	return b.String()
}

// renderLog shows the most recent step lines
func (m Model) renderLog() string {
	const maxLines = 12
	log := m.log
	if len(log) > maxLines {
		log = log[len(log)-maxLines:]
	}
	var b strings.Builder
	for _, line := range log {
		b.WriteString(stepStyle.Render("  " + line))
		b.WriteString("\n")
	}
	return b.String()
}

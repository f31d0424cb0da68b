// Package diag implements an optional diagnostics dashboard: a live
// terminal view of the engine's rendering-active flag, frame counter and
// underrun count, polled rather than pushed since the engine exposes them
// as plain atomics.
package diag

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Counters is the subset of engine.Engine this package depends on, kept
// narrow so diag never needs to import engine's concrete type.
type Counters interface {
	RenderingActive() bool
	FrameCounter() uint64
	Underruns() uint64
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

type tickMsg time.Time

type model struct {
	eng      Counters
	interval time.Duration
	frames   uint64
	active   bool
	under    uint64
}

// NewProgram returns a bubbletea program polling eng at the given interval.
func NewProgram(eng Counters, pollInterval time.Duration) *tea.Program {
	return tea.NewProgram(model{eng: eng, interval: pollInterval}, tea.WithAltScreen())
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.frames = m.eng.FrameCounter()
		m.active = m.eng.RenderingActive()
		m.under = m.eng.Underruns()
		return m, m.tick()
	}
	return m, nil
}

func (m model) View() string {
	state := idleStyle.Render("blanking/sync")
	if m.active {
		state = activeStyle.Render("active video")
	}

	underline := fmt.Sprintf("%d", m.under)
	if m.under > 0 {
		underline = warnStyle.Render(underline)
	}

	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %d\n%s %s\n\n%s",
		labelStyle.Render("ntsctv: scanline engine diagnostics"),
		labelStyle.Render("region:"), state,
		labelStyle.Render("frames:"), m.frames,
		labelStyle.Render("underruns:"), underline,
		idleStyle.Render("press q to quit"),
	)
}

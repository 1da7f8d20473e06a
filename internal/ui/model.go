// ABOUTME: Bubbletea model for the player TUI
// ABOUTME: Defines application state, key handling and rendering

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tafforge/tafforge/internal/player"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// tickMsg drives the periodic status refresh.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model represents the TUI state.
type Model struct {
	player *player.Player
	name   string

	status player.Status
	width  int
	height int
}

// NewModel creates a TUI model for a prepared player.
func NewModel(p *player.Player, name string) Model {
	return Model{
		player: p,
		name:   name,
		status: p.Status(),
	}
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.status = m.player.Status()
		return m, tick()
	}

	return m, nil
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.player.TogglePause()
	case "s":
		m.player.Stop()
	case "n", "right":
		m.player.NextTrack()
	case "p", "left":
		m.player.PrevTrack()
	case "up":
		m.player.AdjustVolume(5)
	case "down":
		m.player.AdjustVolume(-5)
	case "m":
		m.player.ToggleMute()
	}

	m.status = m.player.Status()
	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.name))
	b.WriteString("\n")

	st := m.status
	b.WriteString(headerStyle.Render("State:  "))
	b.WriteString(valueStyle.Render(st.State.String()))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Track:  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d", st.Track+1, st.TrackCount)))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Time:   "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s / %s  [%s]",
		formatDuration(st.Position), formatDuration(st.Length), renderBar(st.Position, st.Length, 24))))
	b.WriteString("\n")

	muteIcon := ""
	if st.Muted {
		muteIcon = "  (muted)"
	}
	b.WriteString(headerStyle.Render("Volume: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] %d%%%s",
		renderBar(time.Duration(st.Volume), 100, 10), st.Volume, muteIcon)))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("space:Pause  n/p:Track  ↑/↓:Volume  m:Mute  s:Stop  q:Quit"))
	b.WriteString("\n")

	return b.String()
}

// renderBar draws a progress bar of the given width.
func renderBar(value, max time.Duration, width int) string {
	filled := 0
	if max > 0 {
		filled = int(int64(value) * int64(width) / int64(max))
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// formatDuration renders a duration as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the player UI

package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tafforge/tafforge/internal/player"
)

// Run starts the player TUI and blocks until the user quits.
func Run(p *player.Player, name string) error {
	prog := tea.NewProgram(NewModel(p, name), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

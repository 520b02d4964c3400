// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the client monitor
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI program
func Run() (*tea.Program, error) {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	return p, nil
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/edtable/internal/table"
)

// Run starts an interactive program for ctrl and blocks until the user quits.
func Run(ctrl *table.Controller, styles Styles, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(New(ctrl, styles), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

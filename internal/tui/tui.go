package tui

import (
	"desk-cli/internal/scene"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(sc *scene.Scene, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	m := newAppModel(sc, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

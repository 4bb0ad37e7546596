package gizmosetup

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gizmo-platform/gizmo-setup/pkg/wizard"
)

// ProgramOptions returns default program options.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithAltScreen()}
}

// NewModel creates the launcher. deps is handed to whichever flow the
// operator picks.
func NewModel(deps wizard.Deps) tea.Model {
	teams := textarea.New()
	teams.Placeholder = "1234"
	teams.ShowLineNumbers = false
	teams.CharLimit = 1000
	teams.SetHeight(8)
	teams.SetWidth(20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = progressStyle

	return setupModel{
		deps:    deps,
		teams:   teams,
		spinner: sp,
	}
}

package gizmosetup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gizmo-platform/gizmo-setup/pkg/wizard"
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	topBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

const errorMessage = "Sorry, an error has occurred. The install process has been cancelled."

// View renders the launcher, the error modal or the current step.
func (m setupModel) View() string {
	var content string
	switch {
	case m.wiz == nil:
		content = m.renderLauncher()
	case m.screen.Err != nil:
		content = m.renderError()
	default:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.renderTopBar(),
			"",
			m.renderStep(),
		)
	}

	return " " + strings.ReplaceAll(content, "\n", "\n ")
}

func (m setupModel) renderLauncher() string {
	title := titleStyle.Render("Gizmo Setup Wizard")
	subtitle := subtitleStyle.Render("What would you like to set up?")

	var items []string
	for i, f := range wizard.Flows {
		name := normalStyle.Render("  " + f.Name)
		if i == m.launcherIdx {
			name = selectedStyle.Render("> " + f.Name)
		}
		items = append(items, name, subtitleStyle.Render("    "+f.Summary), "")
	}

	help := helpStyle.Render("↑/↓: Choose • Enter: Start • Q/Ctrl+C: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
		help,
	)
}

func (m setupModel) renderTopBar() string {
	bar := m.wiz.Flow().Name + "  •  Ctrl+R: Start Over"
	if !m.wiz.Busy() {
		bar += "  •  Esc: Back to menu"
	}
	return topBarStyle.Render(bar)
}

func (m setupModel) renderError() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render(errorMessage),
		"",
		normalStyle.Width(m.modalWidth()).Render(m.screen.Err.Error()),
		"",
		helpStyle.Render("Enter: Start Over"),
	)
	return modalStyle.Render(body)
}

func (m setupModel) modalWidth() int {
	if m.width > 20 {
		return m.width - 12
	}
	return 60
}

func (m setupModel) renderStep() string {
	scr := m.screen
	parts := []string{}

	if scr.Heading != "" {
		parts = append(parts, titleStyle.Render(scr.Heading))
	}
	if scr.Text != "" {
		parts = append(parts, normalStyle.Render(scr.Text), "")
	}

	if scr.Loading != "" {
		parts = append(parts, m.spinner.View()+" "+progressStyle.Render(scr.Loading))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	if scr.TeamEntry {
		parts = append(parts, inputStyle.Render(m.teams.View()))
	}

	for i, opt := range scr.Options {
		if i == m.cursor {
			parts = append(parts, selectedStyle.Render("> "+opt))
		} else {
			parts = append(parts, normalStyle.Render("  "+opt))
		}
	}
	if scr.Empty != "" {
		parts = append(parts, subtitleStyle.Render(scr.Empty))
	}

	if scr.Validation != "" {
		parts = append(parts, "", errorStyle.Render(scr.Validation))
	}
	if scr.Status != "" {
		parts = append(parts, "", subtitleStyle.Render(scr.Status))
	}

	parts = append(parts, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m setupModel) renderHelp() string {
	scr := m.screen
	var keys []string

	switch scr.Step {
	case wizard.StepEnterTeamNumbers:
		keys = append(keys, nextHint("Tab", scr.NextLabel, scr.CanNext))
	case wizard.StepDone:
		if scr.NextTarget != "" {
			keys = append(keys, successStyle.Render("Enter: "+scr.NextTarget))
		}
		keys = append(keys, "Q: Quit")
	default:
		if len(scr.Options) > 0 {
			keys = append(keys, "↑/↓: Select")
		}
		if scr.CanRefresh {
			keys = append(keys, "R: Refresh")
		}
		keys = append(keys, nextHint("Enter", scr.NextLabel, scr.CanNext))
	}
	keys = append(keys, "Ctrl+C: Quit")

	return helpStyle.Render(strings.Join(keys, " • "))
}

func nextHint(key, label string, enabled bool) string {
	hint := key + ": " + label
	if !enabled {
		return disabledStyle.Render(hint)
	}
	return hint
}

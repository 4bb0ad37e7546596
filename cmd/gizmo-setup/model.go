package gizmosetup

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gizmo-platform/gizmo-setup/pkg/wizard"
)

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Init starts the frame clock and the spinner.
func (m setupModel) Init() tea.Cmd {
	return tea.Batch(frameCmd(), m.spinner.Tick)
}

// Update handles messages and updates the model
func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		if m.wiz != nil {
			m.tick()
		}
		return m, frameCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Global quit handling
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.wiz == nil {
			return m.handleLauncherInput(msg)
		}
		if m.screen.Err != nil {
			return m.handleErrorInput(msg)
		}

		switch msg.String() {
		case "ctrl+r":
			m.startOver()
			return m, nil
		case "esc":
			// Leaving mid-install would orphan a running task.
			if !m.wiz.Busy() {
				m.wiz = nil
				m.screen = wizard.Screen{}
			}
			return m, nil
		}

		if m.screen.Loading != "" {
			// No controls while a task is outstanding.
			return m, nil
		}

		switch m.screen.Step {
		case wizard.StepEnterTeamNumbers:
			return m.handleTeamNumbersInput(msg)
		case wizard.StepDone:
			return m.handleDoneInput(msg)
		default:
			return m.handleOptionsInput(msg)
		}
	}

	return m, nil
}

// tick runs one wizard frame and keeps the widgets in step with it.
func (m *setupModel) tick() {
	prev := m.screen.Step
	m.screen = m.wiz.Tick()

	if m.screen.Step != prev || m.screen.Selected >= 0 {
		m.cursor = m.screen.Selected
	}

	if m.screen.TeamEntry {
		m.teams.Focus()
	} else {
		m.teams.Blur()
	}
}

func (m *setupModel) startOver() {
	m.wiz.Reset()
	m.teams.Reset()
	m.cursor = -1
	m.tick()
}

func (m setupModel) handleLauncherInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.launcherIdx > 0 {
			m.launcherIdx--
		}
	case "down", "j":
		if m.launcherIdx < len(wizard.Flows)-1 {
			m.launcherIdx++
		}
	case "enter":
		m.wiz = wizard.New(wizard.Flows[m.launcherIdx], m.deps)
		m.teams.Reset()
		m.cursor = -1
		m.tick()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m setupModel) handleErrorInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "ctrl+r":
		m.wiz.AcknowledgeError()
		m.teams.Reset()
		m.cursor = -1
		m.tick()
	}
	return m, nil
}

func (m setupModel) handleOptionsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.selectOption(m.cursor)
		}
	case "down", "j":
		if m.cursor < len(m.screen.Options)-1 {
			m.cursor++
			m.selectOption(m.cursor)
		}
	case "r", "f5":
		if m.screen.CanRefresh {
			m.wiz.Refresh()
			m.cursor = -1
		}
	case "enter":
		m.wiz.Next()
	}
	m.tick()
	return m, nil
}

func (m *setupModel) selectOption(i int) {
	switch m.screen.Step {
	case wizard.StepChooseVersion:
		m.wiz.SelectRelease(i)
	case wizard.StepChooseBoardRevision:
		m.wiz.SelectVariant(i)
	case wizard.StepChooseDrive:
		m.wiz.SelectDevice(i)
	}
}

func (m setupModel) handleTeamNumbersInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.wiz.Next()
		m.tick()
		return m, nil
	}

	var cmd tea.Cmd
	m.teams, cmd = m.teams.Update(msg)
	m.wiz.SetTeamNumbers(m.teams.Value())
	m.tick()
	return m, cmd
}

func (m setupModel) handleDoneInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.wiz.NextTarget() {
			m.cursor = -1
			m.tick()
		}
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

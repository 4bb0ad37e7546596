package gizmosetup

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/gizmo-platform/gizmo-setup/pkg/wizard"
)

// frameInterval is how often the wizard is ticked.
const frameInterval = 100 * time.Millisecond

// setupModel is the launcher plus, once a flow is picked, its wizard.
type setupModel struct {
	deps wizard.Deps

	// wiz is nil while the launcher is shown.
	wiz    *wizard.Wizard
	screen wizard.Screen

	// UI state
	launcherIdx   int
	cursor        int
	width, height int
	teams         textarea.Model
	spinner       spinner.Model
}

// Message types
type frameMsg time.Time

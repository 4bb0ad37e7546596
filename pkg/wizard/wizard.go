package wizard

import (
	"errors"
	"fmt"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/gizmo-platform/gizmo-setup/pkg/task"
	"github.com/sirupsen/logrus"
)

// ErrInvalidTransition is returned for a step change the flow does not allow.
var ErrInvalidTransition = errors.New("invalid step transition")

// Deps are the collaborators a Wizard hands work to.
type Deps struct {
	Releases  ReleaseSource
	Drives    gizmo.DriveManager
	CacheRoot string
	Log       *logrus.Entry
}

// Wizard drives one flow. It is owned by the render loop: Tick and every
// action must be called from the same goroutine.
type Wizard struct {
	flow Flow
	deps Deps
	log  *logrus.Entry

	current StepID
	entered bool
	session Session
	err     error

	releases task.Slot[[]gizmo.Release]
	download task.Slot[string]
	devices  task.Slot[[]gizmo.Device]
	install  task.Slot[none]

	// abandoned holds tasks left running by Reset. Nothing new starts
	// until they have finished.
	abandoned []func() bool
}

// New returns a wizard for flow positioned at its first step.
func New(flow Flow, deps Deps) *Wizard {
	log := deps.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Wizard{
		flow:    flow,
		deps:    deps,
		log:     log.WithField("flow", flow.Name),
		current: initialStep,
	}
}

func (w *Wizard) Flow() Flow { return w.flow }
func (w *Wizard) Current() StepID { return w.current }
func (w *Wizard) Err() error { return w.err }
func (w *Wizard) Draining() bool { return len(w.abandoned) > 0 }

// Session returns a deep copy of what the flow has collected. Changing it
// has no effect on the wizard.
func (w *Wizard) Session() Session {
	return w.session.clone()
}

// Busy reports whether any task is still running, abandoned ones included.
func (w *Wizard) Busy() bool {
	return w.releases.Busy() || w.download.Busy() || w.devices.Busy() || w.install.Busy() || w.Draining()
}

// Tick runs one frame of the current step and describes what to draw.
// It never blocks on a running task.
func (w *Wizard) Tick() Screen {
	w.drainAbandoned()

	if w.err != nil {
		return w.render()
	}

	if !w.entered {
		w.entered = true
		w.enter()
	}

	next, err := w.advance()
	if err != nil {
		w.fail(err)
		return w.render()
	}
	if next != w.current {
		if err := w.goTo(next); err != nil {
			w.fail(err)
		}
	}
	return w.render()
}

// Reset drops all session state and returns to the first step. A task
// still running is left to finish on its own; its result is discarded.
func (w *Wizard) Reset() {
	abandon(w, &w.releases, "fetch releases")
	abandon(w, &w.download, "download")
	abandon(w, &w.devices, "list drives")
	abandon(w, &w.install, "install")

	w.log.WithField("step", w.current).Info("starting over")
	w.current = initialStep
	w.entered = false
	w.session = Session{}
	w.err = nil
}

// AcknowledgeError dismisses the frozen error, which also starts the flow
// over.
func (w *Wizard) AcknowledgeError() {
	if w.err == nil {
		return
	}
	w.Reset()
}

func (w *Wizard) SelectRelease(i int) {
	if !w.accepting(StepChooseVersion) || i < 0 || i >= len(w.session.Releases) {
		return
	}
	rel := w.session.Releases[i]
	w.session.Release = &rel
}

func (w *Wizard) SetTeamNumbers(text string) {
	if !w.accepting(StepEnterTeamNumbers) {
		return
	}
	w.session.TeamNumbersText = text

	teams, err := ParseTeamNumbers(text)
	if err != nil {
		w.session.TeamNumbers = nil
		w.session.Validation = err.Error()
		return
	}
	w.session.TeamNumbers = teams
	w.session.Validation = ""
}

func (w *Wizard) SelectVariant(i int) {
	if !w.accepting(StepChooseBoardRevision) || i < 0 || i >= len(w.session.Variants) {
		return
	}
	v := w.session.Variants[i]
	w.session.Variant = &v
}

func (w *Wizard) SelectDevice(i int) {
	if !w.accepting(StepChooseDrive) || i < 0 || i >= len(w.session.Devices) {
		return
	}
	d := w.session.Devices[i]
	w.session.Device = &d
}

// Refresh forgets the listed drives so they are enumerated again on the
// next frame.
func (w *Wizard) Refresh() {
	if !w.accepting(StepChooseDrive) || w.devices.Busy() {
		return
	}
	w.session.Devices = nil
	w.session.Device = nil
}

// Next moves past a step that waits for the operator. It reports whether
// the step changed.
func (w *Wizard) Next() bool {
	if w.err != nil || !w.canAdvance() {
		return false
	}
	next, ok := w.flow.transitions.forward(w.current)
	if !ok {
		return false
	}
	if err := w.goTo(next); err != nil {
		w.fail(err)
		return false
	}
	return true
}

// NextTarget loops from Done back to the drive chooser for the next team
// or another device.
func (w *Wizard) NextTarget() bool {
	if !w.accepting(StepDone) || !w.hasNextTarget() {
		return false
	}
	if err := w.goTo(StepChooseDrive); err != nil {
		w.fail(err)
		return false
	}

	if w.flow.Kind == DriverStation {
		w.session.TeamIndex++
	}
	w.session.Devices = nil
	w.session.Device = nil
	w.session.Installed = false
	return true
}

func (w *Wizard) accepting(step StepID) bool {
	return w.err == nil && w.current == step
}

func (w *Wizard) hasNextTarget() bool {
	if w.flow.Kind == DriverStation {
		return w.session.TeamIndex < len(w.session.TeamNumbers)-1
	}
	return true
}

func (w *Wizard) canAdvance() bool {
	s := w.session
	switch w.current {
	case StepChooseVersion:
		return s.Release != nil
	case StepEnterTeamNumbers:
		return len(s.TeamNumbers) > 0 && s.Validation == ""
	case StepChooseBoardRevision:
		return s.Variant != nil
	case StepChooseDrive:
		return s.Device != nil && !w.devices.Busy()
	}
	return false
}

func (w *Wizard) goTo(next StepID) error {
	if !w.flow.transitions.isAllowed(w.current, next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, w.current, next)
	}
	w.log.WithFields(logrus.Fields{"from": w.current, "to": next}).Info("changing step")
	w.current = next
	w.entered = false
	return nil
}

func (w *Wizard) fail(err error) {
	w.log.WithError(err).WithField("step", w.current).Error("install process cancelled")
	w.err = err
}

func (w *Wizard) idle() bool {
	return len(w.abandoned) == 0
}

func (w *Wizard) drainAbandoned() {
	remaining := w.abandoned[:0]
	for _, finished := range w.abandoned {
		if !finished() {
			remaining = append(remaining, finished)
		}
	}
	w.abandoned = remaining
}

// abandon moves a busy slot out of the wizard so it can keep being
// polled until its worker is gone.
func abandon[T any](w *Wizard, s *task.Slot[T], what string) {
	if !s.Busy() {
		return
	}
	held := *s
	*s = task.Slot[T]{}

	log := w.log.WithField("task", what)
	log.Info("leaving task to finish in the background")
	w.abandoned = append(w.abandoned, func() bool {
		r := held.Poll()
		switch r.State {
		case task.Pending:
			return false
		case task.Failed:
			log.WithError(r.Err).Warn("abandoned task failed")
		default:
			log.Info("abandoned task finished")
		}
		return true
	})
}

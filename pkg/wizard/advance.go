package wizard

import (
	"errors"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/gizmo-platform/gizmo-setup/pkg/task"
)

// enter runs once each time a step becomes current.
func (w *Wizard) enter() {
	log := w.log.WithField("step", w.current)

	switch w.current {
	case StepChooseBoardRevision:
		w.session.Variants = nil
		w.session.Variant = nil
		if w.session.Release != nil {
			w.session.Variants = FirmwareVariants(*w.session.Release)
		}
		log.WithField("variants", len(w.session.Variants)).Debug("found firmware variants")
	case StepChooseDrive:
		if team := w.session.target(); team != "" {
			log = log.WithField("team", team)
		}
		log.Info("waiting for drive selection")
	}
}

// advance does the current step's work for one frame and returns the step
// that should be current afterwards.
func (w *Wizard) advance() (StepID, error) {
	switch w.current {
	case StepChooseVersion:
		return w.advanceChooseVersion()
	case StepDownload:
		return w.advanceDownload()
	case StepChooseDrive:
		return w.advanceChooseDrive()
	case StepInstall:
		return w.advanceInstall()
	}
	// The remaining steps only wait for the operator.
	return w.current, nil
}

func (w *Wizard) advanceChooseVersion() (StepID, error) {
	if w.session.Releases != nil {
		return w.current, nil
	}

	if !w.releases.Busy() {
		if !w.idle() {
			return w.current, nil
		}
		if err := w.releases.Start(fetchReleases(w.deps.Releases, w.flow.Repo)); err != nil {
			return w.current, err
		}
	}

	r := w.releases.Poll()
	switch r.State {
	case task.Failed:
		return w.current, r.Err
	case task.Ready:
		w.session.Releases = r.Value
		if latest, ok := gizmo.LatestRelease(r.Value); ok {
			w.session.Release = &latest
		}
	}
	return w.current, nil
}

func (w *Wizard) advanceDownload() (StepID, error) {
	if w.session.ArtifactPath != "" {
		return w.forward()
	}

	if !w.download.Busy() {
		if !w.idle() {
			return w.current, nil
		}
		asset, err := w.flow.artifact(w.session)
		if err != nil {
			return w.current, err
		}
		op := downloadArtifact(w.deps.Releases, w.flow.Repo, *w.session.Release, asset, w.deps.CacheRoot)
		if err := w.download.Start(op); err != nil {
			return w.current, err
		}
	}

	r := w.download.Poll()
	switch r.State {
	case task.Failed:
		return w.current, r.Err
	case task.Ready:
		w.log.WithField("path", r.Value).Info("artifact downloaded")
		w.session.ArtifactPath = r.Value
		return w.forward()
	}
	return w.current, nil
}

func (w *Wizard) advanceChooseDrive() (StepID, error) {
	if w.session.Devices != nil {
		return w.current, nil
	}

	if !w.devices.Busy() {
		if !w.idle() {
			return w.current, nil
		}
		if err := w.devices.Start(listDrives(w.deps.Drives)); err != nil {
			return w.current, err
		}
	}

	r := w.devices.Poll()
	switch r.State {
	case task.Failed:
		return w.current, r.Err
	case task.Ready:
		w.session.Devices = r.Value
	}
	return w.current, nil
}

func (w *Wizard) advanceInstall() (StepID, error) {
	if w.session.Installed {
		return w.forward()
	}

	if !w.install.Busy() {
		if !w.idle() {
			return w.current, nil
		}
		op, err := w.installOperation()
		if err != nil {
			return w.current, err
		}
		if err := w.install.Start(op); err != nil {
			return w.current, err
		}
	}

	r := w.install.Poll()
	switch r.State {
	case task.Failed:
		return w.current, r.Err
	case task.Ready:
		w.log.WithField("device", w.session.Device.String()).Info("install complete")
		w.session.Installed = true
		return w.forward()
	}
	return w.current, nil
}

func (w *Wizard) installOperation() (func() (none, error), error) {
	s := w.session
	if s.Device == nil {
		return nil, errors.New("no drive selected")
	}
	if s.ArtifactPath == "" {
		return nil, errors.New("nothing has been downloaded to install")
	}

	log := w.log.WithField("step", w.current)
	if !w.flow.formatsDrive() {
		return installFile(w.deps.Drives, log, s.ArtifactPath, *s.Device), nil
	}

	team := s.target()
	if team == "" {
		return nil, errors.New("no team number to label the card with")
	}
	return installArchive(w.deps.Drives, log.WithField("team", team), s.ArtifactPath, *s.Device, team), nil
}

func (w *Wizard) forward() (StepID, error) {
	next, ok := w.flow.transitions.forward(w.current)
	if !ok {
		return w.current, ErrInvalidTransition
	}
	return next, nil
}

package wizard

import (
	"fmt"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/gizmo-platform/gizmo-setup/pkg/utils"
)

// Screen describes what the current frame should show. It carries no
// behaviour; the UI maps operator input back onto Wizard actions.
type Screen struct {
	Step    StepID
	Heading string
	Text    string

	// Loading is set while a task is outstanding. No controls are shown
	// then.
	Loading string

	Options  []string
	Selected int
	// Empty is shown instead of an empty option list.
	Empty string

	TeamEntry  bool
	Validation string
	Status     string

	CanNext    bool
	NextLabel  string
	CanRefresh bool
	// NextTarget labels the loop back to the drive chooser. Empty when
	// the flow has nothing left to do.
	NextTarget string

	// Err is the frozen error. When set nothing else is filled in.
	Err error
}

func (w *Wizard) render() Screen {
	if w.err != nil {
		return Screen{Step: w.current, Selected: -1, Err: w.err}
	}

	f := w.flow
	s := w.session
	scr := Screen{
		Step:      w.current,
		Selected:  -1,
		NextLabel: "Next",
		CanNext:   w.canAdvance(),
	}

	switch w.current {
	case StepChooseVersion:
		scr.Heading = f.versionHeading
		scr.Text = f.versionPrompt
		if s.Releases == nil {
			scr.Loading = "Fetching available releases..."
			break
		}
		for i, r := range s.Releases {
			scr.Options = append(scr.Options, r.DisplayName())
			if s.Release != nil && r.Equal(*s.Release) {
				scr.Selected = i
			}
		}

	case StepEnterTeamNumbers:
		scr.Heading = "Team Numbers"
		scr.Text = "Enter your team numbers, one per line."
		scr.TeamEntry = true
		scr.Validation = s.Validation
		scr.Status = fmt.Sprintf("%d team numbers.", len(s.TeamNumbers))

	case StepChooseBoardRevision:
		scr.Heading = "Choose Hardware Version"
		scr.Text = `Select the hardware version of the Gizmo PCB you are using. This should be printed on the board and should look something like "v01.00" or "v00.r6b".`
		if len(s.Variants) == 0 {
			scr.Validation = "Could not recognize any firmware files in the selected release."
		}
		for i, v := range s.Variants {
			scr.Options = append(scr.Options, v.Revision)
			if s.Variant != nil && v.Asset.Name == s.Variant.Asset.Name {
				scr.Selected = i
			}
		}

	case StepDownload:
		scr.Loading = f.downloadText

	case StepChooseDrive:
		scr.Heading = f.driveHeading
		scr.Text = f.driveSteps
		if team := s.target(); team != "" {
			scr.Text = fmt.Sprintf("Setting up driver station for team %s.\n\n%s", team, f.driveSteps)
		}
		scr.NextLabel = f.installButton
		if s.Devices == nil {
			scr.Loading = "Searching for removable drives..."
			break
		}
		scr.CanRefresh = true
		if len(s.Devices) == 0 {
			scr.Empty = "No removable drives found."
		}
		for i, d := range s.Devices {
			scr.Options = append(scr.Options, deviceOption(d))
			if s.Device != nil && d.Equal(*s.Device) {
				scr.Selected = i
			}
		}

	case StepInstall:
		scr.Loading = f.installText

	case StepDone:
		scr.Heading = "Installation Complete"
		scr.Text = w.doneText()
		if w.hasNextTarget() {
			scr.NextTarget = f.nextTargetLabel
		}
	}

	if scr.Loading != "" {
		scr.CanNext = false
	}
	return scr
}

func (w *Wizard) doneText() string {
	if w.flow.Kind != DriverStation {
		return "You can now disconnect the device from the computer.\n\n" + w.flow.doneText
	}

	text := fmt.Sprintf("Please remove the card from the drive and insert it into the driver station for team %s.", w.session.target())
	if w.hasNextTarget() {
		return text + fmt.Sprintf("\n\nOnce you have done this, choose %q.", w.flow.nextTargetLabel)
	}
	return text + "\n\nAll team numbers have been processed. You can now close the wizard or press \"Start Over\"."
}

func deviceOption(d gizmo.Device) string {
	if d.Size <= 0 {
		return d.String()
	}
	return fmt.Sprintf("%s, %s", d, utils.PrettyPrintDiskSize(d.Size))
}

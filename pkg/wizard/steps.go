package wizard

import "fmt"

// StepID names one stage of a flow. Not every flow visits every step.
type StepID int

const (
	StepChooseVersion StepID = iota
	StepEnterTeamNumbers
	StepChooseBoardRevision
	StepDownload
	StepChooseDrive
	StepInstall
	StepDone
)

// initialStep is where every flow starts and where Reset returns to.
const initialStep = StepChooseVersion

var stepNames = map[StepID]string{
	StepChooseVersion:       "choose-version",
	StepEnterTeamNumbers:    "enter-team-numbers",
	StepChooseBoardRevision: "choose-board-revision",
	StepDownload:            "download",
	StepChooseDrive:         "choose-drive",
	StepInstall:             "install",
	StepDone:                "done",
}

func (s StepID) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("StepID(%d)", int(s))
}

// transitions lists where each step may go next. The first entry is the
// forward edge; Done's only edge loops back to the drive chooser.
type transitions map[StepID][]StepID

var driverStationTransitions = transitions{
	StepChooseVersion:    {StepEnterTeamNumbers},
	StepEnterTeamNumbers: {StepDownload},
	StepDownload:         {StepChooseDrive},
	StepChooseDrive:      {StepInstall},
	StepInstall:          {StepDone},
	StepDone:             {StepChooseDrive}, // next team
}

var systemFirmwareTransitions = transitions{
	StepChooseVersion:       {StepChooseBoardRevision},
	StepChooseBoardRevision: {StepDownload},
	StepDownload:            {StepChooseDrive},
	StepChooseDrive:         {StepInstall},
	StepInstall:             {StepDone},
	StepDone:                {StepChooseDrive}, // another device
}

var starterCodeTransitions = transitions{
	StepChooseVersion: {StepDownload},
	StepDownload:      {StepChooseDrive},
	StepChooseDrive:   {StepInstall},
	StepInstall:       {StepDone},
	StepDone:          {StepChooseDrive}, // another device
}

func (t transitions) isAllowed(from, to StepID) bool {
	for _, s := range t[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (t transitions) forward(from StepID) (StepID, bool) {
	next := t[from]
	if len(next) == 0 {
		return from, false
	}
	return next[0], true
}

package wizard

import (
	"errors"
	"fmt"
	"strings"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
)

type FlowKind int

const (
	DriverStation FlowKind = iota
	SystemFirmware
	StarterCode
)

const (
	driverStationAsset = "ds-ramdisk.zip"
	firmwarePrefix     = "gss-"
	starterCodePrefix  = "best-default-program-"
	uf2Extension       = ".uf2"

	// Team numbers end up in a FAT volume label after VolumeLabelPrefix.
	maxTeamDigits = gizmo.MaxLabelLength - len(gizmo.VolumeLabelPrefix)
)

var ErrInvalidTeamNumbers = errors.New("team numbers may only contain digits, one per line")

// Flow is one installation the launcher offers.
type Flow struct {
	Kind    FlowKind
	Name    string
	Summary string
	// Repo is the gizmo-platform repository releases come from.
	Repo string

	versionHeading  string
	versionPrompt   string
	downloadText    string
	driveHeading    string
	driveSteps      string
	installButton   string
	installText     string
	doneText        string
	nextTargetLabel string

	transitions transitions
}

var Flows = []Flow{
	{
		Kind:    DriverStation,
		Name:    "Driver Station",
		Summary: "Set up microSD cards for driver stations, one per team.",
		Repo:    "gizmo",

		versionHeading: "Software Version",
		versionPrompt:  "Select the version of the software you want to install. Usually, this should be the latest version.",
		downloadText:   "Downloading software archive...",
		driveHeading:   "Choose Drive",
		driveSteps: `1. Insert the microSD card for this team into your computer.
2. Press "Refresh" to update the list below.
3. Select the microSD card drive from the list and press "Install Software".`,
		installButton:   "Install Software",
		installText:     "Installing software...",
		nextTargetLabel: "Next Team",

		transitions: driverStationTransitions,
	},
	{
		Kind:    SystemFirmware,
		Name:    "System Firmware",
		Summary: "Install firmware onto the Gizmo system processor.",
		Repo:    "firmware",

		versionHeading: "Firmware Version",
		versionPrompt:  "Select the version of the firmware you want to install. Usually, this should be the latest version.",
		downloadText:   "Downloading firmware file...",
		driveHeading:   "Choose Device",
		driveSteps: `1. Press and hold the BOOTSEL button on the system processor.
2. Connect the system processor to your computer with the USB cable.
3. Release the BOOTSEL button.
4. Press "Refresh" to update the list below.
5. Select the drive from the list and press "Install Firmware". The drive should be named "RPI-RP2".`,
		installButton:   "Install Firmware",
		installText:     "Installing firmware...",
		doneText:        `To install system firmware onto another device, choose "Setup Another Device". If you are done installing system firmware, you can close the wizard or press "Start Over".`,
		nextTargetLabel: "Setup Another Device",

		transitions: systemFirmwareTransitions,
	},
	{
		Kind:    StarterCode,
		Name:    "Student Starter Code",
		Summary: "Install the default program onto the student processor.",
		Repo:    "CircuitPython_Gizmo",

		versionHeading: "Software Version",
		versionPrompt:  "Select the version of the starter code you want to install. Usually, this should be the latest version.",
		downloadText:   "Downloading starter program file...",
		driveHeading:   "Choose Device",
		driveSteps: `1. Press and hold the BOOTSEL button on the student processor.
2. Connect the student processor to your computer with the USB cable.
3. Release the BOOTSEL button.
4. Press "Refresh" to update the list below.
5. Select the drive from the list and press "Install Program". The drive should be named "RPI-RP2".`,
		installButton:   "Install Program",
		installText:     "Installing starter program...",
		doneText:        `To install the starter program onto another device, choose "Setup Another Device". If you are done installing starter code onto Gizmos, you can close the wizard or press "Start Over".`,
		nextTargetLabel: "Setup Another Device",

		transitions: starterCodeTransitions,
	},
}

// FlowByKind returns the launcher entry for kind.
func FlowByKind(kind FlowKind) (Flow, error) {
	for _, f := range Flows {
		if f.Kind == kind {
			return f, nil
		}
	}
	return Flow{}, fmt.Errorf("unknown flow %d", kind)
}

// formatsDrive reports whether installing erases the drive first. Only
// the driver station card gets a fresh, team-labelled filesystem; UF2
// boot drives are written as they are.
func (f Flow) formatsDrive() bool {
	return f.Kind == DriverStation
}

// artifact picks the release asset to download for the session.
func (f Flow) artifact(s Session) (gizmo.Asset, error) {
	if s.Release == nil {
		return gizmo.Asset{}, errors.New("no release selected")
	}

	switch f.Kind {
	case DriverStation:
		return s.Release.FindAsset(driverStationAsset)
	case SystemFirmware:
		if s.Variant == nil {
			return gizmo.Asset{}, errors.New("no board revision selected")
		}
		return s.Variant.Asset, nil
	case StarterCode:
		return s.Release.FindAsset(starterCodePrefix + s.Release.TagName + uf2Extension)
	}
	return gizmo.Asset{}, fmt.Errorf("unknown flow %d", f.Kind)
}

// Variant is one board revision a firmware release was built for.
type Variant struct {
	Revision string
	Asset    gizmo.Asset
}

// FirmwareVariants finds the gss-<revision>-<tag>.uf2 assets of rel.
func FirmwareVariants(rel gizmo.Release) []Variant {
	suffix := "-" + rel.TagName + uf2Extension

	var variants []Variant
	for _, a := range rel.Assets {
		if !strings.HasPrefix(a.Name, firmwarePrefix) || !strings.HasSuffix(a.Name, suffix) {
			continue
		}
		rev := a.Name[len(firmwarePrefix) : len(a.Name)-len(suffix)]
		if rev == "" {
			continue
		}
		variants = append(variants, Variant{Revision: rev, Asset: a})
	}
	return variants
}

// ParseTeamNumbers splits operator input into team numbers, one per line.
// Blank lines are ignored.
func ParseTeamNumbers(text string) ([]string, error) {
	for _, r := range text {
		if (r < '0' || r > '9') && r != '\n' && r != '\r' {
			return nil, ErrInvalidTeamNumbers
		}
	}

	var teams []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > maxTeamDigits {
			return nil, fmt.Errorf("team number %s has more than %d digits", line, maxTeamDigits)
		}
		teams = append(teams, line)
	}
	return teams, nil
}

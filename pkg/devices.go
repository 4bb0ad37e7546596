package gizmo

import (
	"fmt"
	"strings"
)

// Device is a mounted removable volume.
type Device struct {
	// Path is where the volume's filesystem is reachable (a mount point
	// or a drive root such as E:\).
	Path  string `json:"path"`
	Label string `json:"label"`
	// Node identifies the volume to the platform tools: a block device
	// on linux, a drive letter on windows.
	Node string `json:"node,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Equal compares devices by path.
func (d Device) Equal(other Device) bool {
	return d.Path == other.Path
}

func (d Device) String() string {
	name := d.Label
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%s (%s)", name, d.Path)
}

// VolumeLabel returns the label a card for labelSuffix is formatted with.
func VolumeLabel(labelSuffix string) string {
	return VolumeLabelPrefix + labelSuffix
}

// ResolveByLabel finds the device carrying label in devices. FAT labels
// are upper-cased by most tools, so the comparison ignores case. When
// several volumes share the label the one at hint's path wins, otherwise
// the result is ambiguous and an error.
func ResolveByLabel(devices []Device, label string, hint Device) (Device, error) {
	var matches []Device
	for _, d := range devices {
		if strings.EqualFold(d.Label, label) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return Device{}, fmt.Errorf("no removable drive labelled %s found after formatting", label)
	case 1:
		return matches[0], nil
	}

	for _, d := range matches {
		if d.Equal(hint) {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%d removable drives are labelled %s, remove the others and start over", len(matches), label)
}

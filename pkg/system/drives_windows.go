//go:build windows

package system

import (
	"fmt"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/sirupsen/logrus"
)

type windowsDrives struct {
	payloadWriter
	log *logrus.Entry
	run runner
}

// NewDriveManager returns the DriveManager for this platform.
func NewDriveManager(log *logrus.Entry) gizmo.DriveManager {
	return &windowsDrives{
		payloadWriter: payloadWriter{log: log},
		log:           log,
		run:           commandRunner(log),
	}
}

func (w *windowsDrives) powershell(script string) ([]byte, error) {
	return w.run("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
}

func (w *windowsDrives) List() ([]gizmo.Device, error) {
	out, err := w.powershell(listVolumesScript)
	if err != nil {
		return nil, fmt.Errorf("failed to list drives: %w", err)
	}
	return parseVolumes(out)
}

func (w *windowsDrives) Format(dev gizmo.Device, labelSuffix string) error {
	label := gizmo.VolumeLabel(labelSuffix)
	w.log.WithFields(logrus.Fields{"drive": dev.Node, "label": label}).Info("formatting drive")

	script := fmt.Sprintf("Format-Volume -DriveLetter %s -FileSystem FAT32 -NewFileSystemLabel %s -Confirm:$false",
		psQuote(dev.Node), psQuote(label))
	if _, err := w.powershell(script); err != nil {
		return fmt.Errorf("failed to format %s: %w", dev, err)
	}
	return nil
}

func (w *windowsDrives) Flush(dev gizmo.Device) error {
	if _, err := w.powershell("Write-VolumeCache -DriveLetter " + psQuote(dev.Node)); err != nil {
		return fmt.Errorf("failed to flush %s: %w", dev, err)
	}
	return nil
}

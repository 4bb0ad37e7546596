//go:build !linux && !windows

package system

import (
	"fmt"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/sirupsen/logrus"
)

const volumesRoot = "/Volumes"

type diskutilDrives struct {
	payloadWriter
	log *logrus.Entry
	run runner
}

// NewDriveManager returns the DriveManager for this platform.
func NewDriveManager(log *logrus.Entry) gizmo.DriveManager {
	return &diskutilDrives{
		payloadWriter: payloadWriter{log: log},
		log:           log,
		run:           commandRunner(log),
	}
}

func (d *diskutilDrives) List() ([]gizmo.Device, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list drives: %w", err)
	}

	devices := volumesFromPartitions(parts, volumesRoot)
	for i := range devices {
		usage, err := disk.Usage(devices[i].Path)
		if err != nil {
			d.log.WithError(err).WithField("path", devices[i].Path).Warn("could not read volume size")
			continue
		}
		devices[i].Size = int64(usage.Total)
	}
	return devices, nil
}

func (d *diskutilDrives) Format(dev gizmo.Device, labelSuffix string) error {
	label := gizmo.VolumeLabel(labelSuffix)
	d.log.WithFields(logrus.Fields{"path": dev.Path, "label": label}).Info("formatting drive")

	if _, err := d.run("diskutil", "eraseVolume", "FAT32", label, dev.Path); err != nil {
		return fmt.Errorf("failed to format %s: %w", dev, err)
	}
	return nil
}

func (d *diskutilDrives) Flush(dev gizmo.Device) error {
	if _, err := d.run("sync"); err != nil {
		return fmt.Errorf("failed to flush %s: %w", dev, err)
	}
	return nil
}

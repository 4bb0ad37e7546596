//go:build linux

package system

import (
	"fmt"

	"github.com/dell/csi-baremetal/pkg/base/linuxutils/lsblk"
	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/sirupsen/logrus"
)

type linuxDrives struct {
	payloadWriter
	log   *logrus.Entry
	run   runner
	admin runner
	sizes func() (map[string]int64, error)
}

// NewDriveManager returns the DriveManager for this platform.
func NewDriveManager(log *logrus.Entry) gizmo.DriveManager {
	run := commandRunner(log)
	return &linuxDrives{
		payloadWriter: payloadWriter{log: log},
		log:           log,
		run:           run,
		admin:         asAdmin(run),
		sizes:         blockDeviceSizes(log),
	}
}

func (l *linuxDrives) List() ([]gizmo.Device, error) {
	out, err := l.run("lsblk", "-J", "-o", lsblkColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to list drives: %w", err)
	}

	devices, err := parseRemovableMounts(out)
	if err != nil {
		return nil, err
	}

	sizes, err := l.sizes()
	if err != nil {
		// Sizes are only shown to the operator.
		l.log.WithError(err).Warn("could not read block device sizes")
		return devices, nil
	}
	for i := range devices {
		devices[i].Size = sizes[devices[i].Node]
	}
	return devices, nil
}

// Format unmounts the volume, creates a fresh FAT32 filesystem and mounts
// it again through udisks so it shows up where the desktop expects it.
func (l *linuxDrives) Format(dev gizmo.Device, labelSuffix string) error {
	if dev.Node == "" {
		return fmt.Errorf("drive %s has no block device", dev)
	}
	label := gizmo.VolumeLabel(labelSuffix)
	log := l.log.WithFields(logrus.Fields{"node": dev.Node, "label": label})

	log.Info("unmounting drive")
	if _, err := l.run("udisksctl", "unmount", "--no-user-interaction", "-b", dev.Node); err != nil {
		return fmt.Errorf("failed to unmount %s: %w", dev, err)
	}

	log.Info("formatting drive")
	if _, err := l.admin("mkfs.fat", "-F", "32", "-n", label, dev.Node); err != nil {
		return fmt.Errorf("failed to format %s: %w", dev, err)
	}

	log.Info("mounting drive")
	if _, err := l.run("udisksctl", "mount", "--no-user-interaction", "-b", dev.Node); err != nil {
		return fmt.Errorf("failed to mount %s after formatting: %w", dev, err)
	}
	return nil
}

func (l *linuxDrives) Flush(dev gizmo.Device) error {
	if _, err := l.run("sync", "-f", dev.Path); err != nil {
		return fmt.Errorf("failed to flush %s: %w", dev, err)
	}
	return nil
}

// blockDeviceSizes maps every block device path to its size in bytes.
func blockDeviceSizes(log *logrus.Entry) func() (map[string]int64, error) {
	return func() (map[string]int64, error) {
		lsb := lsblk.NewLSBLK(log.Logger)

		devices, err := lsb.GetBlockDevices("")
		if err != nil {
			return nil, err
		}

		sizes := map[string]int64{}
		var walk func(d lsblk.BlockDevice)
		walk = func(d lsblk.BlockDevice) {
			sizes[d.Name] = d.Size.Int64
			for _, child := range d.Children {
				walk(child)
			}
		}
		for _, d := range devices {
			walk(d)
		}
		return sizes, nil
	}
}

package system

import (
	"path/filepath"
	"sort"
	"strings"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/shirou/gopsutil/v4/disk"
)

// removableFilesystems are the filesystems a card or a UF2 boot drive
// comes with.
var removableFilesystems = map[string]bool{
	"msdos": true,
	"vfat":  true,
	"exfat": true,
}

// volumesFromPartitions keeps the FAT-like partitions mounted below
// mountRoot. The label is the last path element, which is how macOS names
// mount points.
func volumesFromPartitions(parts []disk.PartitionStat, mountRoot string) []gizmo.Device {
	devices := []gizmo.Device{}
	for _, p := range parts {
		if !removableFilesystems[strings.ToLower(p.Fstype)] {
			continue
		}
		if filepath.Dir(p.Mountpoint) != mountRoot {
			continue
		}
		devices = append(devices, gizmo.Device{
			Path:  p.Mountpoint,
			Label: filepath.Base(p.Mountpoint),
			Node:  p.Device,
		})
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Path < devices[j].Path })
	return devices
}

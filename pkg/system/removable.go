package system

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
)

const lsblkColumns = "NAME,PATH,MOUNTPOINTS,RM,HOTPLUG,TYPE,LABEL"

type lsblkDevice struct {
	Name        string          `json:"name"`
	Path        string          `json:"path"`
	Mountpoints []string        `json:"mountpoints"`
	RM          json.RawMessage `json:"rm"`
	Hotplug     json.RawMessage `json:"hotplug"`
	Type        string          `json:"type"`
	Children    []lsblkDevice   `json:"children,omitempty"`
	Label       string          `json:"label"`
}

type lsblkOutput struct {
	Blockdevices []lsblkDevice `json:"blockdevices"`
}

// parseRemovableMounts turns `lsblk -J -o lsblkColumns` output into the
// mounted filesystems that sit on removable or hot-plugged media, sorted
// by mount path. Partitions inherit removability from their disk.
func parseRemovableMounts(output []byte) ([]gizmo.Device, error) {
	var result lsblkOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse lsblk output: %w", err)
	}

	mounts := map[string]gizmo.Device{}
	var walk func(device lsblkDevice, removableParent bool)
	walk = func(device lsblkDevice, removableParent bool) {
		removable := removableParent || isTrue(device.RM) || isTrue(device.Hotplug)
		if removable {
			for _, mount := range device.Mountpoints {
				if mount == "" || mount == "[SWAP]" {
					continue
				}
				mounts[mount] = gizmo.Device{
					Path:  mount,
					Label: device.Label,
					Node:  device.Path,
				}
			}
		}
		for _, child := range device.Children {
			walk(child, removable)
		}
	}

	for _, device := range result.Blockdevices {
		walk(device, false)
	}

	paths := make([]string, 0, len(mounts))
	for path := range mounts {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := make([]gizmo.Device, 0, len(paths))
	for _, path := range paths {
		out = append(out, mounts[path])
	}
	return out, nil
}

// lsblk prints booleans as 0/1 or true/false depending on its version.
func isTrue(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	text := strings.Trim(string(raw), `"`)
	return text == "1" || text == "true"
}

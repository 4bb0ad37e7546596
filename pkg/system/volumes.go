package system

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
)

// listVolumesScript prints removable volumes that have a drive letter.
const listVolumesScript = `Get-Volume | Where-Object { $_.DriveType -eq 'Removable' -and $_.DriveLetter } | ` +
	`Select-Object DriveLetter,FileSystemLabel,Size | ConvertTo-Json -Compress`

type psVolume struct {
	DriveLetter     json.RawMessage `json:"DriveLetter"`
	FileSystemLabel string          `json:"FileSystemLabel"`
	Size            int64           `json:"Size"`
}

// parseVolumes decodes ConvertTo-Json output. PowerShell emits a bare
// object instead of an array when only one volume matches, and nothing at
// all when none do.
func parseVolumes(output []byte) ([]gizmo.Device, error) {
	output = bytes.TrimSpace(output)
	if len(output) == 0 {
		return []gizmo.Device{}, nil
	}

	var volumes []psVolume
	if output[0] == '{' {
		var v psVolume
		if err := json.Unmarshal(output, &v); err != nil {
			return nil, fmt.Errorf("failed to parse volume list: %w", err)
		}
		volumes = []psVolume{v}
	} else if err := json.Unmarshal(output, &volumes); err != nil {
		return nil, fmt.Errorf("failed to parse volume list: %w", err)
	}

	devices := make([]gizmo.Device, 0, len(volumes))
	for _, v := range volumes {
		letter, err := driveLetter(v.DriveLetter)
		if err != nil {
			return nil, err
		}
		devices = append(devices, gizmo.Device{
			Path:  letter + `:\`,
			Label: v.FileSystemLabel,
			Node:  letter,
			Size:  v.Size,
		})
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Path < devices[j].Path })
	return devices, nil
}

// driveLetter accepts a [char] as serialized by either PowerShell 7 ("E")
// or Windows PowerShell 5.1 (69).
func driveLetter(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && len(s) == 1 {
		return strings.ToUpper(s), nil
	}
	var code int
	if err := json.Unmarshal(raw, &code); err == nil && code > 0 && code < 128 {
		return strings.ToUpper(string(rune(code))), nil
	}
	return "", fmt.Errorf("unexpected drive letter %s", strconv.Quote(string(raw)))
}

// psQuote quotes s as a single-quoted PowerShell string.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

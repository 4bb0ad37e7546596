/*
Gizmo setup wizard architecture:

 The render loop (bubbletea) owns a Wizard. Every frame it calls Tick,
 which runs the active Step. Steps never block: anything slow is handed
 to a task.Slot, which runs it on its own goroutine and is polled on
 later frames until it yields a value or an error.

                     ┌────────────────────────────────┐
   frame tick ─────► │  Wizard (render goroutine)     │
                     │                                │
   key press  ─────► │  current Step ──► Session      │
                     │      │   ▲                     │
                     └──────┼───┼─────────────────────┘
                      Start │   │ Poll (non-blocking)
                            ▼   │
                     ┌──────────┴─────┐
                     │   task.Slot    │  one goroutine, one result
                     └──────┬─────────┘
                            ▼
           GitHub releases / asset download / DriveManager

 Errors from a Slot freeze the Wizard until the operator acknowledges
 them, which resets the flow to its first Step.
*/

package gizmo

const (
	// GitHubOwner owns every repository the wizard installs from.
	GitHubOwner = "gizmo-platform"

	// VolumeLabelPrefix is prepended to the team number when a card is
	// formatted, e.g. GIZMO1234.
	VolumeLabelPrefix = "GIZMO"

	// MaxLabelLength is the FAT32 volume label limit.
	MaxLabelLength = 11
)

// DriveManager is the platform capability set used to prepare removable
// media. Implementations live in pkg/system.
type DriveManager interface {
	// List enumerates mounted removable volumes. It never caches.
	List() ([]Device, error)
	// Format erases dev and labels it VolumeLabelPrefix+labelSuffix. The
	// device's path afterwards is unspecified; callers re-resolve it by
	// label.
	Format(dev Device, labelSuffix string) error
	// Write places source onto dev. Zip archives are extracted, any other
	// file is copied into the volume root.
	Write(source string, dev Device, overwrite bool) error
	// Flush makes sure everything written to dev is durable.
	Flush(dev Device) error
}

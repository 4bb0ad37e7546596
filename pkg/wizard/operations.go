package wizard

import (
	"fmt"
	"path/filepath"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/sirupsen/logrus"
)

// ReleaseSource lists releases and fetches their assets.
type ReleaseSource interface {
	FetchReleases(owner, repo string) ([]gizmo.Release, error)
	DownloadAsset(asset gizmo.Asset, owner, repo string, release gizmo.Release, cacheRoot string) (string, error)
}

type none = struct{}

// The functions below build the operations handed to a task.Slot. Every
// input is copied into the closure when the operation is built, so a
// running worker never touches the session.

func fetchReleases(src ReleaseSource, repo string) func() ([]gizmo.Release, error) {
	return func() ([]gizmo.Release, error) {
		releases, err := src.FetchReleases(gizmo.GitHubOwner, repo)
		if err != nil {
			return nil, err
		}
		if releases == nil {
			releases = []gizmo.Release{}
		}
		return releases, nil
	}
}

func downloadArtifact(src ReleaseSource, repo string, release gizmo.Release, asset gizmo.Asset, cacheRoot string) func() (string, error) {
	return func() (string, error) {
		return src.DownloadAsset(asset, gizmo.GitHubOwner, repo, release, cacheRoot)
	}
}

func listDrives(drives gizmo.DriveManager) func() ([]gizmo.Device, error) {
	return func() ([]gizmo.Device, error) {
		devices, err := drives.List()
		if err != nil {
			return nil, err
		}
		if devices == nil {
			devices = []gizmo.Device{}
		}
		return devices, nil
	}
}

// installArchive erases dev, labels it for team and extracts source onto
// it. Where the volume shows up after formatting is platform specific, so
// it is looked up again by its new label.
func installArchive(drives gizmo.DriveManager, log *logrus.Entry, source string, dev gizmo.Device, team string) func() (none, error) {
	return func() (none, error) {
		label := gizmo.VolumeLabel(team)

		log.WithFields(logrus.Fields{"device": dev.String(), "label": label}).Info("formatting drive")
		if err := drives.Format(dev, team); err != nil {
			return none{}, err
		}

		devices, err := drives.List()
		if err != nil {
			return none{}, fmt.Errorf("failed to find %s after formatting: %w", label, err)
		}
		target, err := gizmo.ResolveByLabel(devices, label, dev)
		if err != nil {
			return none{}, err
		}

		return none{}, writeAndFlush(drives, log, source, target)
	}
}

// installFile copies source onto dev as it is.
func installFile(drives gizmo.DriveManager, log *logrus.Entry, source string, dev gizmo.Device) func() (none, error) {
	return func() (none, error) {
		return none{}, writeAndFlush(drives, log, source, dev)
	}
}

func writeAndFlush(drives gizmo.DriveManager, log *logrus.Entry, source string, dev gizmo.Device) error {
	log = log.WithFields(logrus.Fields{"device": dev.String(), "source": filepath.Base(source)})

	log.Info("writing payload")
	if err := drives.Write(source, dev, true); err != nil {
		return fmt.Errorf("failed to write %s to %s: %w", filepath.Base(source), dev, err)
	}

	log.Info("flushing drive")
	return drives.Flush(dev)
}

package version

import (
	"fmt"
	"time"

	"github.com/carlmjohnson/versioninfo"
)

type GizmoVersionInfoGit struct {
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

type GizmoVersionInfo struct {
	Release    string              `json:"release"`
	LastCommit time.Time           `json:"lastCommit"`
	Git        GizmoVersionInfoGit `json:"git"`
}

func GetGizmoRelease() *GizmoVersionInfo {
	return &GizmoVersionInfo{
		Release:    versioninfo.Version,
		LastCommit: versioninfo.LastCommit,
		Git: GizmoVersionInfoGit{
			Commit: versioninfo.Revision,
			Dirty:  versioninfo.DirtyBuild,
		},
	}
}

// String is the one-line form written to the log on startup.
func (v GizmoVersionInfo) String() string {
	commit := v.Git.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if v.Git.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s)", v.Release, commit)
}

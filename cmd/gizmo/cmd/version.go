package cmd

import (
	"fmt"

	"github.com/gizmo-platform/gizmo-setup/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get gizmo setup wizard version information",
	Run: func(cmd *cobra.Command, args []string) {
		version := version.GetGizmoRelease()

		fmt.Printf("Gizmo Setup Release: %s\n", version.Release)
		if !version.LastCommit.IsZero() {
			fmt.Printf("Last Commit: %s\n", version.LastCommit.Format("2006-01-02 15:04:05 MST"))
		}
		fmt.Printf("Git: %s\n", version.Git.Commit)
		fmt.Printf("Dirty: %t\n", version.Git.Dirty)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

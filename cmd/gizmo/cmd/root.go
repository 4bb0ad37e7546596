package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	gizmosetup "github.com/gizmo-platform/gizmo-setup/cmd/gizmo-setup"
	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/gizmo-platform/gizmo-setup/pkg/github"
	"github.com/gizmo-platform/gizmo-setup/pkg/system"
	"github.com/gizmo-platform/gizmo-setup/pkg/version"
	"github.com/gizmo-platform/gizmo-setup/pkg/wizard"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gizmo",
	Short: "Set up Gizmo driver stations, firmware and starter code",
	Long: `An installation wizard that downloads Gizmo releases from GitHub and
writes them onto microSD cards and RP2040 boot drives.`,
	SilenceUsage: true,
	// Default to the wizard when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func runWizard() error {
	config := gizmo.LoadConfig()
	if err := config.Prepare(); err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer config.Cleanup()

	logger, sink := gizmo.NewLogger(config)
	defer sink.Close()

	log := logrus.NewEntry(logger)
	log.WithFields(logrus.Fields{
		"version": version.GetGizmoRelease().String(),
		"scratch": config.ScratchDir,
	}).Info("starting setup wizard")

	deps := wizard.Deps{
		Releases:  github.NewClient(config, log.WithField("component", "github")),
		Drives:    system.NewDriveManager(log.WithField("component", "drives")),
		CacheRoot: config.DownloadsDir(),
		Log:       log,
	}

	p := tea.NewProgram(gizmosetup.NewModel(deps), gizmosetup.ProgramOptions()...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run setup TUI: %w", err)
	}

	log.Info("setup wizard closed")
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dirsweep
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirsweep",
		Short: "Track and clean up new entries in monitored directories",
		Long: `dirsweep snapshots the immediate contents of the directories you choose,
reports entries that appeared or disappeared since the snapshot, and
deletes newly appeared entries on request.

Paths can be excluded permanently. Entries that cannot be deleted for
lack of permission are excluded automatically so they are not flagged again.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("home", "", "dirsweep home directory (default: $DIRSWEEP_HOME or the user config dir)")
	cmd.PersistentFlags().String("config", "", "Path to config file (default: <home>/config.yaml)")
	cmd.PersistentFlags().String("state-dir", "", "Directory holding the snapshot and exclusion documents")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().Bool("log-file", false, "Also write a run log under the log directory")

	cmd.AddCommand(NewDirCommand())
	cmd.AddCommand(NewSnapshotCommand())
	cmd.AddCommand(NewChangesCommand())
	cmd.AddCommand(NewCleanCommand())
	cmd.AddCommand(NewExcludeCommand())
	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSnapshotCommand creates the 'dirsweep snapshot' command
func NewSnapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Record the current contents of every monitored directory",
		Long: `Record the immediate children of every monitored directory as the new
baseline. Directories that are missing or unreadable keep their previous
baseline and are reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			result := s.monitor.SnapshotAll()
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot updated %d director%s, skipped %d\n",
				result.Updated, plural(result.Updated, "y", "ies"), result.Skipped)
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/dirsweep/internal/models"
)

// NewDirCommand creates the 'dirsweep dir' parent command
func NewDirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Manage monitored directories",
	}

	cmd.AddCommand(newDirAddCommand())
	cmd.AddCommand(newDirRemoveCommand())
	cmd.AddCommand(newDirListCommand())

	return cmd
}

func newDirAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Start monitoring directories",
		Long: `Start monitoring one or more directories.

A newly added directory has no baseline until 'dirsweep snapshot' is run;
until then it is skipped when computing changes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := absPaths(args)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			added := 0
			for _, path := range paths {
				if _, err := s.monitor.AddDirectory(path); err != nil {
					if errors.Is(err, models.ErrAlreadyMonitored) {
						fmt.Fprintf(out, "Already monitoring %s\n", path)
						continue
					}
					return err
				}
				added++
				fmt.Fprintf(out, "Monitoring %s\n", path)
			}
			if added > 0 {
				fmt.Fprintln(out, "Run 'dirsweep snapshot' to record a baseline.")
			}
			return nil
		},
	}
}

func newDirRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>...",
		Short: "Stop monitoring directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := absPaths(args)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			for _, path := range paths {
				if removed, _ := s.monitor.RemoveDirectory(path); removed {
					fmt.Fprintf(out, "Stopped monitoring %s\n", path)
				} else {
					fmt.Fprintf(out, "Not monitoring %s\n", path)
				}
			}
			return nil
		},
	}
}

func newDirListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List monitored directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			s.printer.Directories(s.monitor.Directories())
			return nil
		},
	}
}

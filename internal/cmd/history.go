package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'dirsweep history' command
func NewHistoryCommand() *cobra.Command {
	var limit int
	var verbose bool
	var pathFlag string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent cleanup runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if s.history == nil {
				fmt.Fprintln(out, "Cleanup history is disabled.")
				return nil
			}

			if pathFlag != "" {
				path, err := filepath.Abs(pathFlag)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", pathFlag, err)
				}
				items, err := s.history.PathHistory(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("read cleanup history: %w", err)
				}
				s.printer.PathHistory(path, items)
				return nil
			}

			runs, err := s.history.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read cleanup history: %w", err)
			}
			s.printer.History(runs)

			if verbose {
				for _, run := range runs {
					fmt.Fprintf(out, "\n%s\n", run.ID)
					for _, item := range run.Items {
						line := fmt.Sprintf("  %s (%s) %s", item.Path, item.Kind, item.Outcome)
						if item.Error != "" {
							line += ": " + item.Error
						}
						fmt.Fprintln(out, line)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().StringVar(&pathFlag, "path", "", "Show every recorded outcome for one path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show every path of each run")

	return cmd
}

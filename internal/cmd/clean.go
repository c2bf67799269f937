package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/dirsweep/internal/display"
)

// NewCleanCommand creates the 'dirsweep clean' command
func NewCleanCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete entries that appeared since the last snapshot",
		Long: `Delete every new, non-excluded entry reported by 'dirsweep changes'.
Directories are deleted with everything inside them.

Entries that cannot be deleted for lack of permission are excluded
automatically and will not be reported again.

Examples:
  # Review the candidates and confirm
  dirsweep clean

  # Delete without asking
  dirsweep clean --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			candidates := s.monitor.ComputeChanges().New()
			if len(candidates) == 0 {
				fmt.Fprintln(out, "Nothing to clean.")
				return nil
			}

			fmt.Fprintf(out, "The following %d new entr%s will be deleted:\n", len(candidates), plural(len(candidates), "y", "ies"))
			for _, c := range candidates {
				fmt.Fprintf(out, "  %s (%s)\n", c.Path, c.Kind)
			}

			if s.cfg.Cleanup.Confirm && !yes {
				if !confirmAction(cmd.InOrStdin(), out) {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}
			}

			result := s.monitor.Cleanup(cmd.Context(), candidates)

			progress := display.NewProgressIndicator(out, len(result.Items), s.printer.Color())
			progress.Start()
			for _, item := range result.Items {
				progress.Step(item)
			}
			progress.Complete(result.Report)

			if len(result.AutoExcluded) > 0 {
				display.AutoExclusionWarning(result.AutoExcluded).Display(out, s.printer.Color())
			}

			if result.After != nil {
				fmt.Fprintln(out, "\nRemaining changes:")
				s.printer.Changes(result.After)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")

	return cmd
}

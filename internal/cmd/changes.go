package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewChangesCommand creates the 'dirsweep changes' command
func NewChangesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "changes",
		Short: "Show entries added or removed since the last snapshot",
		Long: `Compare every monitored directory with its baseline.

New entries that are excluded are not shown. Removed entries are always
shown, excluded or not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			changes := s.monitor.ComputeChanges()
			if asJSON {
				data, err := json.MarshalIndent(changes, "", "  ")
				if err != nil {
					return fmt.Errorf("encode changes: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			s.printer.Changes(changes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the change set as JSON")

	return cmd
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/dirsweep/internal/report"
)

// NewReportCommand creates the 'dirsweep report' command
func NewReportCommand() *cobra.Command {
	var asHTML bool
	var output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown or HTML report of directories, changes and exclusions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			data := report.Markdown(report.Input{
				GeneratedAt: time.Now(),
				Directories: s.monitor.Directories(),
				Changes:     s.monitor.ComputeChanges(),
				Exclusions:  s.monitor.Exclusions(),
			})
			if asHTML {
				data, err = report.HTML(data)
				if err != nil {
					return err
				}
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the report as HTML")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/dirsweep/internal/fileutil"
	"github.com/harrison/dirsweep/internal/models"
)

// NewExcludeCommand creates the 'dirsweep exclude' parent command
func NewExcludeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exclude",
		Short: "Manage paths ignored by change reporting and cleanup",
		Long: `Excluded paths are never reported as new and never deleted.
Removals of excluded paths are still reported.`,
	}

	cmd.AddCommand(newExcludeAddCommand())
	cmd.AddCommand(newExcludeRemoveCommand())
	cmd.AddCommand(newExcludeListCommand())

	return cmd
}

func newExcludeAddCommand() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "add <path>...",
		Short: "Exclude paths",
		Long: `Exclude one or more paths. The type (file or folder) is read from disk
unless --kind is given, which is required for paths that do not exist.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var forced models.EntryKind
			if kindFlag != "" {
				k, err := models.ParseEntryKind(kindFlag)
				if err != nil {
					return err
				}
				forced = k
			}

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
			var changes *models.ChangeSet
			for _, path := range paths {
				var added bool
				var kind models.EntryKind
				if forced == "" {
					// A pending new entry keeps the type it was classified with
					if changes == nil {
						changes = s.monitor.ComputeChanges()
					}
					if rec, ok := changes.Find(path); ok && rec.Kind.IsNew() {
						kind = rec.Kind.EntryKind()
						added, _ = s.monitor.ExcludeChange(rec)
						printExcluded(out, path, kind, added)
						continue
					}
				}

				kind = forced
				if kind == "" {
					kind, err = fileutil.ProbeKind(fileutil.OS{}, path)
					if err != nil {
						return fmt.Errorf("cannot determine type of %s, pass --kind: %w", path, err)
					}
				}
				added, _ = s.monitor.Exclude(path, kind)
				printExcluded(out, path, kind, added)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", "Entry type: file or folder (default: read from disk)")

	return cmd
}

func printExcluded(out io.Writer, path string, kind models.EntryKind, added bool) {
	if added {
		fmt.Fprintf(out, "Excluded %s (%s)\n", path, kind)
	} else {
		fmt.Fprintf(out, "Already excluded %s\n", path)
	}
}

func newExcludeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>...",
		Short: "Remove exclusions",
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
				if removed, _ := s.monitor.Unexclude(path); removed {
					fmt.Fprintf(out, "Removed exclusion %s\n", path)
				} else {
					fmt.Fprintf(out, "Not excluded %s\n", path)
				}
			}
			return nil
		},
	}
}

func newExcludeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exclusions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			s.printer.Exclusions(s.monitor.Exclusions())
			return nil
		},
	}
}

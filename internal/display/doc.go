// Package display renders dirsweep state for the terminal: monitored
// directories, change lists, exclusions, cleanup progress and cleanup
// history.
//
// All output goes through a Printer, which decides once whether ANSI colour
// is used:
//
//	p := display.NewPrinter(cmd.OutOrStdout())
//	p.Changes(changeSet)
//	p.Exclusions(registry.Records())
//
// Colour is enabled only when the writer is a terminal. Tables are aligned
// with text/tabwriter; colour is applied to the last column only so escape
// codes never skew alignment.
//
// Warnings group related paths under a title and optional suggestion:
//
//	display.AutoExclusionWarning(report.AutoExcluded).Display(out, p.Color())
package display

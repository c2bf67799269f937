package display

import (
	"fmt"
	"io"

	"github.com/harrison/dirsweep/internal/cleanup"
)

// ProgressIndicator prints one line per processed cleanup candidate.
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
	colored bool
}

// NewProgressIndicator creates a progress indicator for total candidates.
func NewProgressIndicator(w io.Writer, total int, colored bool) *ProgressIndicator {
	return &ProgressIndicator{
		writer:  w,
		total:   total,
		colored: colored,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Cleaning up %d new entries:\n", p.total)
}

// Step displays "[N/Total] path (outcome)" for one processed item.
func (p *ProgressIndicator) Step(item cleanup.Item) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s (%s)", p.current, p.total, item.Path, item.Outcome)
	if item.Err != nil {
		line += ": " + item.Err.Error()
	}
	if p.colored {
		line = outcomeColor(item.Outcome) + line + "\x1b[0m"
	}
	fmt.Fprintln(p.writer, line)
}

// Complete prints the summary counts of a finished run.
func (p *ProgressIndicator) Complete(report *cleanup.Report) {
	check := "✓"
	if p.colored {
		check = "\x1b[32m✓\x1b[0m"
	}
	fmt.Fprintf(p.writer, "%s Deleted %d, auto-excluded %d, skipped %d, failed %d\n",
		check, len(report.Deleted), len(report.AutoExcluded), len(report.Skipped), len(report.Failed))
}

func outcomeColor(o cleanup.Outcome) string {
	switch o {
	case cleanup.OutcomeDeleted:
		return "\x1b[32m"
	case cleanup.OutcomeAutoExcluded:
		return "\x1b[33m"
	case cleanup.OutcomeFailed:
		return "\x1b[31m"
	default:
		return "\x1b[36m"
	}
}

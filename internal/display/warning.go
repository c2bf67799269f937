package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when colored is true.
func (w Warning) Display(out io.Writer, colored bool) {
	var b strings.Builder

	if colored {
		b.WriteString("\x1b[33m")
	}
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		b.WriteString("    ")
		if len(w.Paths) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}
		for i, path := range w.Paths {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, path))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if colored {
		b.WriteString("\x1b[0m")
	}

	fmt.Fprint(out, b.String())
}

// AutoExclusionWarning reports paths cleanup could not delete for lack of
// permission and excluded instead.
func AutoExclusionWarning(paths []string) Warning {
	return Warning{
		Title:      "Permission denied during cleanup",
		Message:    "These entries were added to the exclusion list and will not be cleaned again.",
		Paths:      paths,
		Suggestion: "Run 'dirsweep exclude remove <path>' after fixing permissions to make them eligible again.",
	}
}

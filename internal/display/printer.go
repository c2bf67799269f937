package display

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/dirsweep/internal/history"
	"github.com/harrison/dirsweep/internal/models"
)

// Printer writes tables and status lines to a single writer.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter enables colour when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	colored := false
	if f, ok := out.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) && !color.NoColor
	}
	return &Printer{out: out, color: colored}
}

// NewPrinterWithColor forces colour on or off.
func NewPrinterWithColor(out io.Writer, colored bool) *Printer {
	return &Printer{out: out, color: colored}
}

// Color reports whether ANSI colour is in use.
func (p *Printer) Color() bool {
	return p.color
}

func (p *Printer) paint(s string, attrs ...color.Attribute) string {
	if !p.color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (p *Printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
}

// Directories lists monitored directories with their baseline state.
func (p *Printer) Directories(entries []*models.DirectoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No directories are monitored.")
		return
	}

	w := p.table()
	fmt.Fprintln(w, "DIRECTORY\tENTRIES\tLAST SNAPSHOT")
	fmt.Fprintln(w, "---------\t-------\t-------------")
	for _, e := range entries {
		label := e.SnapshotLabel()
		if !e.HasBaseline() {
			label = p.paint(label, color.FgYellow)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Path, len(e.Children), label)
	}
	w.Flush()
}

// Changes lists every change record. Diagnostics are left to the logger.
func (p *Printer) Changes(changes *models.ChangeSet) {
	if changes == nil || changes.Total() == 0 {
		fmt.Fprintln(p.out, "No changes detected.")
		return
	}

	w := p.table()
	fmt.Fprintln(w, "PATH\tCHANGE")
	fmt.Fprintln(w, "----\t------")
	for _, c := range changes.Records {
		fmt.Fprintf(w, "%s\t%s\n", c.Path, p.changeKind(c.Kind))
	}
	w.Flush()
	fmt.Fprintf(p.out, "\n%d change(s), %d new\n", changes.Total(), len(changes.New()))
}

func (p *Printer) changeKind(kind models.ChangeKind) string {
	switch kind {
	case models.ChangeNewFile, models.ChangeNewDirectory:
		return p.paint(string(kind), color.FgGreen)
	case models.ChangeDeleted:
		return p.paint(string(kind), color.FgRed)
	default:
		return string(kind)
	}
}

// Exclusions lists the exclusion registry.
func (p *Printer) Exclusions(records []models.ExclusionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(p.out, "No exclusions.")
		return
	}

	w := p.table()
	fmt.Fprintln(w, "PATH\tTYPE\tEXCLUDED\tSOURCE")
	fmt.Fprintln(w, "----\t----\t--------\t------")
	for i := range records {
		r := &records[i]
		source := r.Source()
		if r.Automatic {
			source = p.paint(source, color.FgYellow)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Path, r.Kind, r.ExcludedLabel(), source)
	}
	w.Flush()
}

// History lists recorded cleanup runs, newest first.
func (p *Printer) History(runs []*history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.out, "No cleanup runs recorded.")
		return
	}

	w := p.table()
	fmt.Fprintln(w, "RUN\tSTARTED\tDELETED\tAUTO-EXCLUDED\tSKIPPED\tFAILED")
	fmt.Fprintln(w, "---\t-------\t-------\t-------------\t-------\t------")
	for _, r := range runs {
		failed := fmt.Sprintf("%d", r.Failed)
		if r.Failed > 0 {
			failed = p.paint(failed, color.FgRed)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			shortID(r.ID),
			r.StartedAt.Local().Format(models.TimestampLayout),
			r.Deleted, r.AutoExcluded, r.Skipped, failed)
	}
	w.Flush()
}

// PathHistory lists every recorded cleanup outcome for one path.
func (p *Printer) PathHistory(path string, items []history.RunItem) {
	if len(items) == 0 {
		fmt.Fprintf(p.out, "No cleanup history for %s.\n", path)
		return
	}

	w := p.table()
	fmt.Fprintln(w, "KIND\tOUTCOME\tERROR")
	fmt.Fprintln(w, "----\t-------\t-----")
	for _, item := range items {
		outcome := item.Outcome
		if item.Error != "" {
			outcome = p.paint(outcome, color.FgRed)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.Kind, outcome, item.Error)
	}
	w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

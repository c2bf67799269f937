// Package report renders the change set, monitored directories and
// exclusions as a markdown document, optionally converted to HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/dirsweep/internal/models"
)

// Input is everything a report shows.
type Input struct {
	GeneratedAt time.Time
	Directories []*models.DirectoryEntry
	Changes     *models.ChangeSet
	Exclusions  []models.ExclusionRecord
}

// Markdown builds the report document. Output is deterministic for a given
// Input so it can be diffed between runs.
func Markdown(in Input) []byte {
	var b strings.Builder

	b.WriteString("# dirsweep change report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", in.GeneratedAt.Format(models.TimestampLayout))

	b.WriteString("## Monitored directories\n\n")
	if len(in.Directories) == 0 {
		b.WriteString("No directories are monitored.\n\n")
	} else {
		b.WriteString("| Directory | Entries | Last snapshot |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, d := range in.Directories {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", cell(d.Path), len(d.Children), d.SnapshotLabel())
		}
		b.WriteString("\n")
	}

	b.WriteString("## Changes\n\n")
	changes := in.Changes
	if changes == nil {
		changes = &models.ChangeSet{}
	}
	if changes.Total() == 0 {
		b.WriteString("No changes detected.\n\n")
	} else {
		b.WriteString("| Path | Change |\n")
		b.WriteString("| --- | --- |\n")
		for _, c := range changes.Records {
			fmt.Fprintf(&b, "| %s | %s |\n", cell(c.Path), c.Kind)
		}
		fmt.Fprintf(&b, "\nTotal: %d (%d new)\n\n", changes.Total(), len(changes.New()))
	}

	if len(changes.Diagnostics) > 0 {
		b.WriteString("### Diagnostics\n\n")
		for _, d := range changes.Diagnostics {
			fmt.Fprintf(&b, "- %s\n", text(d.String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Exclusions\n\n")
	if len(in.Exclusions) == 0 {
		b.WriteString("No exclusions.\n")
	} else {
		b.WriteString("| Path | Type | Excluded | Source |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for i := range in.Exclusions {
			e := &in.Exclusions[i]
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(e.Path), e.Kind, e.ExcludedLabel(), e.Source())
		}
	}

	return []byte(b.String())
}

// HTML converts report markdown to a standalone HTML page.
func HTML(markdown []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert(markdown, &body); err != nil {
		return nil, fmt.Errorf("render report html: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>dirsweep change report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// markdownEscaper backslash-escapes punctuation that markdown would read as
// emphasis, code, links, raw HTML, entities or a table column break.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"~", `\~`,
	"|", `\|`,
)

// text escapes s so it renders literally.
func text(s string) string {
	return markdownEscaper.Replace(s)
}

// cell escapes s for use inside a table row.
func cell(s string) string {
	return strings.ReplaceAll(text(s), "\n", " ")
}

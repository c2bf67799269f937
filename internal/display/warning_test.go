package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{Title: "Configuration Missing"}

	w.Display(&buf, true)
	output := buf.String()

	if !strings.Contains(output, "\x1b[33m") {
		t.Error("Expected yellow ANSI color code in output")
	}
	if !strings.Contains(output, "⚠️") {
		t.Error("Expected warning emoji ⚠️ in output")
	}
	if !strings.Contains(output, "Configuration Missing") {
		t.Error("Expected title in output")
	}
	if !strings.HasSuffix(output, "\x1b[0m") {
		t.Error("Expected ANSI reset code at end of output")
	}
}

func TestDisplayWarning_NoColor(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "Plain"}.Display(&buf, false)

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Expected no ANSI codes, got %q", buf.String())
	}
	if buf.String() != "⚠️  Warning: Plain\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestDisplayWarning_WithPaths(t *testing.T) {
	tests := []struct {
		name   string
		paths  []string
		header string
	}{
		{name: "single path", paths: []string{"/a/x"}, header: "    Affected path:\n"},
		{name: "multiple paths", paths: []string{"/a/x", "/a/y"}, header: "    Affected paths:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Warning{Title: "T", Paths: tt.paths}.Display(&buf, false)
			output := buf.String()

			if !strings.Contains(output, tt.header) {
				t.Errorf("Expected header %q in %q", tt.header, output)
			}
			for i, p := range tt.paths {
				want := "      " + string(rune('1'+i)) + ". " + p + "\n"
				if !strings.Contains(output, want) {
					t.Errorf("Expected numbered path %q in %q", want, output)
				}
			}
		})
	}
}

func TestDisplayWarning_Complete(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Title",
		Message:    "Message body",
		Paths:      []string{"/a/locked"},
		Suggestion: "Do something",
	}
	w.Display(&buf, false)
	output := buf.String()

	titleIdx := strings.Index(output, "Title")
	msgIdx := strings.Index(output, "    Message body")
	pathIdx := strings.Index(output, "/a/locked")
	sugIdx := strings.Index(output, "    Suggestion:\n    Do something")

	if titleIdx < 0 || msgIdx < 0 || pathIdx < 0 || sugIdx < 0 {
		t.Fatalf("Missing section in output:\n%s", output)
	}
	if !(titleIdx < msgIdx && msgIdx < pathIdx && pathIdx < sugIdx) {
		t.Errorf("Sections out of order:\n%s", output)
	}
}

func TestAutoExclusionWarning(t *testing.T) {
	w := AutoExclusionWarning([]string{"/a/locked"})

	if w.Title == "" || w.Suggestion == "" {
		t.Error("Expected title and suggestion")
	}
	if len(w.Paths) != 1 || w.Paths[0] != "/a/locked" {
		t.Errorf("Unexpected paths %v", w.Paths)
	}
}

package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLinePadsLabelToWidestStatus(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := New(&buf)
	l.OK("done")
	l.Create("src/less")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if want := strings.Repeat(" ", labelWidth-2) + "ok done"; lines[0] != want {
		t.Fatalf("ok line = %q, want %q", lines[0], want)
	}
	if !strings.HasSuffix(lines[1], "create src/less") {
		t.Fatalf("unexpected create line %q", lines[1])
	}
	okIdx := strings.Index(lines[0], "done")
	createIdx := strings.Index(lines[1], "src/less")
	if okIdx != createIdx {
		t.Fatalf("messages not aligned: %d vs %d", okIdx, createIdx)
	}
}

func TestWritelnAlignsWithTaggedLines(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := New(&buf)
	l.Info("first")
	l.Writeln("second")
	l.Writeln("")

	lines := strings.Split(buf.String(), "\n")
	if strings.Index(lines[0], "first") != strings.Index(lines[1], "second") {
		t.Fatalf("untagged line not aligned: %q", buf.String())
	}
	if lines[2] != "" {
		t.Fatalf("expected blank line, got %q", lines[2])
	}
}

func TestInitDebugToggle(t *testing.T) {
	Init(false, true)
	// Must not panic when disabled.
	Debug("ignored %d", 1)

	Init(true, true)
	if Debug == nil {
		t.Fatal("Debug should be assigned after Init")
	}
	Init(false, true)
}

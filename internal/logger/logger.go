package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// This is a function variable that is assigned dynamically during Init based on debug flag.
// It starts as a no-op so packages can log before the CLI has parsed its flags.
var Debug = func(format string, a ...any) {}

// Init initializes the logger package, specifically enabling or disabling debug logging.
// Parameters:
// - enableDebug: boolean flag to turn debug messages on or off.
// - noColor: strips ANSI colors from every helper (set for --no-color or non-terminal stdout).
func Init(enableDebug, noColor bool) {
	if noColor {
		color.NoColor = true
	}
	if enableDebug {
		// Assign Debug to print cyan-colored debug messages on the default output.
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// Status is one of the fixed labels printed in front of a status line.
type Status string

const (
	StatusCreate Status = "create"
	StatusUpdate Status = "update"
	StatusRemove Status = "remove"
	StatusFetch  Status = "fetch"
	StatusRun    Status = "run"
	StatusSkip   Status = "skip"
	StatusInfo   Status = "info"
	StatusOK     Status = "ok"
	StatusError  Status = "error"
)

// statusColors maps every label to the color it is rendered with.
// Green is used for things that were added, yellow for changes, red for removals and failures.
var statusColors = map[Status]*color.Color{
	StatusCreate: color.New(color.FgGreen),
	StatusUpdate: color.New(color.FgYellow),
	StatusRemove: color.New(color.FgRed),
	StatusFetch:  color.New(color.FgCyan),
	StatusRun:    color.New(color.FgHiMagenta),
	StatusSkip:   color.New(color.FgHiBlack),
	StatusInfo:   color.New(color.FgBlue),
	StatusOK:     color.New(color.FgGreen, color.Bold),
	StatusError:  color.New(color.FgRed, color.Bold),
}

// labelWidth is the width of the longest label; every label is right-padded to it.
var labelWidth = func() int {
	w := 0
	for s := range statusColors {
		if len(s) > w {
			w = len(s)
		}
	}
	return w
}()

// Logger decorates a line writer with status-tagged helpers.
// It is purely presentational and safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{out: w}
}

var std = New(color.Output)

// Std returns the process-wide Logger writing to the terminal.
func Std() *Logger { return std }

// Line writes a status line: the padded, colored label followed by the formatted message.
func (l *Logger) Line(s Status, format string, a ...any) {
	label := fmt.Sprintf("%*s", labelWidth, string(s))
	if c, ok := statusColors[s]; ok {
		label = c.Sprint(label)
	}
	msg := fmt.Sprintf(format, a...)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", label, strings.TrimRight(msg, "\n"))
}

// Writeln writes an untagged line, indented to align with tagged messages.
func (l *Logger) Writeln(format string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if format == "" {
		fmt.Fprintln(l.out)
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", strings.Repeat(" ", labelWidth), fmt.Sprintf(format, a...))
}

func (l *Logger) Create(format string, a ...any) { l.Line(StatusCreate, format, a...) }
func (l *Logger) Update(format string, a ...any) { l.Line(StatusUpdate, format, a...) }
func (l *Logger) Remove(format string, a ...any) { l.Line(StatusRemove, format, a...) }
func (l *Logger) Fetch(format string, a ...any)  { l.Line(StatusFetch, format, a...) }
func (l *Logger) Run(format string, a ...any)    { l.Line(StatusRun, format, a...) }
func (l *Logger) Skip(format string, a ...any)   { l.Line(StatusSkip, format, a...) }
func (l *Logger) Info(format string, a ...any)   { l.Line(StatusInfo, format, a...) }
func (l *Logger) OK(format string, a ...any)     { l.Line(StatusOK, format, a...) }
func (l *Logger) Error(format string, a ...any)  { l.Line(StatusError, format, a...) }

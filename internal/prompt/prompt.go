// Package prompt runs a linear question-and-answer session over a reader and writer.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Spec is one question. Specs are asked in slice order.
type Spec struct {
	Name    string // key in the returned Answers
	Message string // text shown to the user
	Default string // used when the answer is empty
	// Derive computes the default from earlier answers when Default is empty.
	Derive func(Answers) string
	// Secret answers are read without echo when the input is a terminal.
	Secret bool
}

// Answers maps spec names to the collected answers.
type Answers map[string]string

// Get returns the answer for name, or "" when it was not asked.
func (a Answers) Get(name string) string { return a[name] }

var (
	questionMark = color.New(color.FgGreen).SprintFunc()
	defaultHint  = color.New(color.FgHiBlack).SprintFunc()
)

// Collector asks questions on w and reads answers line by line from r.
type Collector struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	hasTTY bool
}

// New creates a Collector. When r is a terminal, secret answers are read without echo.
func New(r io.Reader, w io.Writer) *Collector {
	c := &Collector{in: bufio.NewReader(r), out: w}
	if f, ok := r.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c.fd = int(f.Fd())
		c.hasTTY = true
	}
	return c
}

// Collect presents specs in order and returns every answer, defaults substituted for
// empty input. Any read failure aborts the whole session; partial answers are discarded.
// Cancelling ctx aborts a pending question with ctx.Err().
func (c *Collector) Collect(ctx context.Context, specs []Spec) (Answers, error) {
	answers := make(Answers, len(specs))
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		def := spec.Default
		if def == "" && spec.Derive != nil {
			def = spec.Derive(answers)
		}

		answer, err := c.ask(ctx, spec, def)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", spec.Name, err)
		}
		if answer == "" {
			answer = def
		}
		answers[spec.Name] = answer
	}
	return answers, nil
}

type reply struct {
	line string
	err  error
}

func (c *Collector) ask(ctx context.Context, spec Spec, def string) (string, error) {
	fmt.Fprintf(c.out, "%s %s", questionMark("?"), strings.TrimSpace(spec.Message))
	if def != "" && !spec.Secret {
		fmt.Fprintf(c.out, " %s", defaultHint("("+def+")"))
	}
	fmt.Fprint(c.out, " ")

	// A read that is still blocked on cancellation is abandoned with the session.
	done := make(chan reply, 1)
	go func() {
		line, err := c.read(spec)
		done <- reply{line, err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case r := <-done:
		return r.line, r.err
	}
}

func (c *Collector) read(spec Spec) (string, error) {
	if spec.Secret && c.hasTTY {
		raw, err := term.ReadPassword(c.fd)
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		// A final line without a newline is still an answer.
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}

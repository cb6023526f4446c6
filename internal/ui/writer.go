// Package ui provides the terminal output writer used by leaf actions,
// including quiet mode and pager support for long output.
//
// The pager command comes from configuration or $PAGER and is executed as
// given, the way git and man do it.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/footprint-tools/keel/internal/domain"
	"golang.org/x/term"
)

// Writer implements domain.OutputWriter.
type Writer struct {
	out           io.Writer
	quiet         bool
	pagerDisabled bool
	configGetter  func(string) (string, bool)
	envGetter     func(string) string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled disables the pager.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithQuiet suppresses Printf and Println. Write and Pager still print,
// so data output such as YAML is never lost.
func WithQuiet(quiet bool) WriterOption {
	return func(w *Writer) {
		w.quiet = quiet
	}
}

// WithConfigGetter sets where the pager setting is read from.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) {
		w.configGetter = fn
	}
}

// WithEnvGetter sets the environment lookup function.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// NewWriter creates a Writer on stdout.
func NewWriter(opts ...WriterOption) *Writer {
	return NewWriterTo(os.Stdout, opts...)
}

// NewWriterTo creates a Writer on out.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:       out,
		envGetter: os.Getenv,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

// Printf formats and prints unless quiet.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	if w.quiet {
		return 0, nil
	}
	return fmt.Fprintf(w.out, format, args...)
}

// Println prints a line unless quiet.
func (w *Writer) Println(args ...any) (int, error) {
	if w.quiet {
		return 0, nil
	}
	return fmt.Fprintln(w.out, args...)
}

// Pager shows content through a pager when the output is a terminal.
//
// Precedence:
//  1. pager disabled or output not a terminal: direct output
//  2. the pager setting ("cat" bypasses)
//  3. $PAGER ("cat" bypasses)
//  4. less -FRSX
func (w *Writer) Pager(content string) {
	f, ok := w.out.(*os.File)
	if w.pagerDisabled || !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(w.out, content)
		return
	}

	if w.configGetter != nil {
		if cmd, ok := w.configGetter("pager"); ok && cmd != "" {
			w.runPagerCmd(cmd, content)
			return
		}
	}
	if w.envGetter != nil {
		if cmd := w.envGetter("PAGER"); cmd != "" {
			w.runPagerCmd(cmd, content)
			return
		}
	}

	w.runPager("less", []string{"-FRSX"}, content)
}

func (w *Writer) runPagerCmd(pagerCmd string, content string) {
	parts := strings.Fields(pagerCmd)
	if len(parts) == 0 || parts[0] == "cat" {
		fmt.Fprint(w.out, content)
		return
	}
	w.runPager(parts[0], parts[1:], content)
}

func (w *Writer) runPager(pager string, args []string, content string) {
	cmd := exec.Command(pager, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Fprint(w.out, content)
	}
}

var _ domain.OutputWriter = (*Writer)(nil)

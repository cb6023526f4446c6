// Package prompt provides the interactive input sources used to fill in
// command fields that were not given on the command line.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/footprint-tools/keel/internal/dispatchers"
	"github.com/footprint-tools/keel/internal/ui/style"
	"golang.org/x/term"
)

const maxInputLength = 4096

var errInputTooLong = fmt.Errorf("answer is longer than %d bytes", maxInputLength)

// Line is a line-oriented prompter. Selections are shown as numbered menus.
// It works on any reader, so it is used when input is piped and in tests.
type Line struct {
	source io.Reader
	reader *bufio.Reader
	out    io.Writer

	requests  chan bool
	lines     chan lineResult
	stopped   chan struct{}
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

type lineResult struct {
	text string
	err  error
}

// NewLine creates a line prompter reading from in and writing prompts to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &Line{
		source: in,
		reader: bufio.NewReader(in),
		out:    out,
		done:   make(chan struct{}),
	}
}

// Close stops the background reader.
func (l *Line) Close() error {
	l.closeOnce.Do(func() { close(l.done) })
	return nil
}

func (l *Line) initPump() {
	l.startOnce.Do(func() {
		l.requests = make(chan bool)
		l.lines = make(chan lineResult)
		l.stopped = make(chan struct{})
		go l.pump()
	})
}

// pump reads one line per request so that a blocked read does not prevent
// the prompt from noticing a cancelled context. The source is only read
// while a request is pending, which leaves a terminal free between prompts.
func (l *Line) pump() {
	defer close(l.stopped)
	for {
		var secret bool
		select {
		case secret = <-l.requests:
		case <-l.done:
			return
		}

		text, err := l.read(secret)
		if errors.Is(err, io.EOF) {
			if text == "" {
				return
			}
			err = nil
		}
		select {
		case l.lines <- lineResult{text: text, err: err}:
		case <-l.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// read returns the next line. Secrets typed at a terminal are read with
// echo turned off unless earlier input is still buffered.
func (l *Line) read(secret bool) (string, error) {
	if secret && l.reader.Buffered() == 0 {
		if fd, ok := terminalFd(l.source); ok {
			b, err := term.ReadPassword(fd)
			if err != nil {
				return "", fmt.Errorf("read secret: %w", err)
			}
			return string(b), nil
		}
	}
	return l.reader.ReadString('\n')
}

func terminalFd(r io.Reader) (int, bool) {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}

func (l *Line) readLine(ctx context.Context, secret bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.initPump()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-l.done:
		return "", dispatchers.ErrInterrupted
	case <-l.stopped:
		return "", dispatchers.ErrInterrupted
	case res := <-l.lines:
		// a line requested by a prompt that was cancelled
		return res.line()
	case l.requests <- secret:
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-l.done:
		return "", dispatchers.ErrInterrupted
	case <-l.stopped:
		return "", dispatchers.ErrInterrupted
	case res := <-l.lines:
		return res.line()
	}
}

func (r lineResult) line() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	text := strings.TrimRight(r.text, "\r\n")
	if len(text) > maxInputLength {
		return "", errInputTooLong
	}
	return text, nil
}

// Input asks for one line of text. An empty answer accepts the suggestion.
// Secrets are read without echo when the source is a terminal.
func (l *Line) Input(ctx context.Context, req dispatchers.InputRequest) (string, error) {
	suggest := req.Suggest
	if req.Secret {
		suggest = ""
	}
	_, onTerminal := terminalFd(l.source)

	for {
		fmt.Fprint(l.out, formatQuestion(req.Message, suggest, req.Optional))
		text, err := l.readLine(ctx, req.Secret)
		if req.Secret && onTerminal {
			fmt.Fprintln(l.out)
		}
		if errors.Is(err, errInputTooLong) {
			l.Report(err)
			continue
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" && suggest != "" {
			return suggest, nil
		}
		return text, nil
	}
}

// Select shows a numbered menu and returns the index chosen. The answer may
// be the number or the option name; an empty answer picks the default.
func (l *Line) Select(ctx context.Context, req dispatchers.SelectRequest) (int, error) {
	if len(req.Options) == 0 {
		return 0, errors.New("nothing to select from")
	}
	def := req.Default
	if def < 0 || def >= len(req.Options) {
		def = 0
	}

	fmt.Fprintln(l.out, style.Header(req.Message))
	for i, o := range req.Options {
		line := fmt.Sprintf("  %2d) %s", i+1, o.Name)
		if o.Description != "" {
			line += style.Muted("  " + o.Description)
		}
		fmt.Fprintln(l.out, line)
	}

	for {
		fmt.Fprintf(l.out, "%s ", style.Muted(fmt.Sprintf("Enter a number [%d]:", def+1)))
		text, err := l.readLine(ctx, false)
		if errors.Is(err, errInputTooLong) {
			l.Report(err)
			continue
		}
		if err != nil {
			return 0, err
		}
		idx, ok := matchOption(strings.TrimSpace(text), req.Options, def)
		if ok {
			return idx, nil
		}
		fmt.Fprintln(l.out, style.Error(fmt.Sprintf("Please enter a number between 1 and %d.", len(req.Options))))
	}
}

// Report prints a problem with the previous answer.
func (l *Line) Report(err error) {
	fmt.Fprintln(l.out, style.Error("✗ "+err.Error()))
}

func matchOption(text string, opts []dispatchers.Option, def int) (int, bool) {
	if text == "" {
		return def, true
	}
	if n, err := strconv.Atoi(text); err == nil {
		if n >= 1 && n <= len(opts) {
			return n - 1, true
		}
		return 0, false
	}
	for i, o := range opts {
		if strings.EqualFold(o.Name, text) {
			return i, true
		}
	}
	return 0, false
}

func formatQuestion(message, suggest string, optional bool) string {
	var b strings.Builder
	b.WriteString(style.Info("?"))
	b.WriteString(" ")
	b.WriteString(message)
	if suggest != "" {
		b.WriteString(" ")
		b.WriteString(style.Muted("(" + suggest + ")"))
	}
	if optional {
		b.WriteString(" ")
		b.WriteString(style.Muted("[optional]"))
	}
	b.WriteString(" ")
	return b.String()
}

var _ dispatchers.Prompter = (*Line)(nil)

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/footprint-tools/keel/internal/app"
	"github.com/footprint-tools/keel/internal/cli"
	"github.com/footprint-tools/keel/internal/dispatchers"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/log"
	"github.com/footprint-tools/keel/internal/prompt"
	"github.com/footprint-tools/keel/internal/ui/style"
	"github.com/footprint-tools/keel/internal/usage"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := app.DefaultOptions()
	opts.Out = stdout
	opts.StyleEnabled = colorEnabled(opts.StyleConfig["color"], isTerminal(stdout))

	a, err := app.New(opts)
	if err != nil {
		fmt.Fprintln(stderr, style.Error(err.Error()))
		return 1
	}
	defer func() { _ = app.Close(a) }()

	tree, err := cli.BuildTree()
	if err != nil {
		a.Logger.Error("keel: command tree: %v", err)
		fmt.Fprintln(stderr, style.Error(err.Error()))
		return 1
	}

	runOpts := []dispatchers.RunOption{
		dispatchers.WithLogger(a.Logger),
		dispatchers.WithOutput(a.Output),
		dispatchers.WithTrace(rootSwitches(a)),
	}
	if p := choosePrompter(opts.StyleConfig["prompt_style"], stdin, stderr); p != nil {
		runOpts = append(runOpts, dispatchers.WithPrompter(p))
		if c, ok := p.(io.Closer); ok {
			defer func() { _ = c.Close() }()
		}
	}

	err = tree.Run(ctx, args, domain.Global{App: a}, runOpts...)
	if err != nil {
		fmt.Fprintln(stderr, style.Error(err.Error()))
	}
	return usage.ExitCode(err)
}

// rootSwitches applies --no-color and --verbose once the root node is resolved.
func rootSwitches(a *domain.Application) func(dispatchers.Step) {
	return func(s dispatchers.Step) {
		if s.NodeID != cli.ProgramName {
			return
		}
		if dispatchers.Value[bool](s.Scope, "no-color") {
			style.Init(false, nil)
		}
		if dispatchers.Value[bool](s.Scope, "verbose") {
			if l, ok := a.Logger.(*log.Logger); ok {
				l.SetLevel(log.LevelDebug)
			}
		}
	}
}

func colorEnabled(setting string, tty bool) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	default:
		return tty
	}
}

// choosePrompter returns nil when fields must come from the command line.
// The TUI needs a terminal on stdin; without one the walk is non-interactive
// unless the line style was asked for explicitly.
func choosePrompter(promptStyle string, in io.Reader, out io.Writer) dispatchers.Prompter {
	switch promptStyle {
	case "never":
		return nil
	case "line":
		return prompt.NewLine(in, out)
	default:
		if !isTerminal(in) {
			return nil
		}
		return prompt.NewTUI(in, out)
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

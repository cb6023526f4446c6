// Package logs implements the `keel logs` leaves over the rotating log file.
package logs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/paths"
)

// DefaultLimit is how many lines `logs view` shows without --limit.
const DefaultLimit = 50

// Deps adds the log file location to the leaf dependencies.
type Deps struct {
	actions.Deps
	LogFilePath  func() string
	PollInterval time.Duration
}

func depsFor(g domain.Global) Deps {
	return Deps{
		Deps:         actions.DepsFor(g),
		LogFilePath:  paths.LogFilePath,
		PollInterval: 500 * time.Millisecond,
	}
}

// View shows the last lines of the log file.
func View(_ context.Context, v domain.LogView) error {
	return view(v, depsFor(v.Global))
}

func view(v domain.LogView, deps Deps) error {
	logPath := deps.LogFilePath()

	content, err := os.ReadFile(logPath)
	if errors.Is(err, os.ErrNotExist) {
		if v.JSON {
			_, _ = fmt.Fprintln(deps.Out, "[]")
		} else {
			_, _ = deps.Printf("%s\n", deps.Styler.Muted("No log file found at "+logPath))
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		lines = nil
	}

	limit := int(v.Limit)
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	if v.JSON {
		return viewJSON(lines, deps)
	}
	if len(lines) == 0 {
		_, _ = deps.Printf("%s\n", deps.Styler.Muted("Log file is empty"))
		return nil
	}
	for _, line := range lines {
		_, _ = fmt.Fprintln(deps.Out, colorizeLogLine(deps.Styler, line))
	}
	return nil
}

// logEntryRegex matches lines like: [2026-01-29 10:30:45] INFO: message
var logEntryRegex = regexp.MustCompile(`^\[([^\]]+)\]\s+(DEBUG|INFO|WARN|ERROR):\s*(.*)$`)

type logEntry struct {
	Timestamp string `json:"timestamp,omitempty"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message"`
}

func parseLine(line string) logEntry {
	m := logEntryRegex.FindStringSubmatch(line)
	if m == nil {
		return logEntry{Message: line}
	}
	return logEntry{Timestamp: m[1], Level: m[2], Message: m[3]}
}

func viewJSON(lines []string, deps Deps) error {
	entries := make([]logEntry, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			entries = append(entries, parseLine(line))
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(deps.Out, string(data))
	return err
}

// Tail follows the log file until the context is cancelled.
func Tail(ctx context.Context, g domain.Global) error {
	return tail(ctx, depsFor(g))
}

func tail(ctx context.Context, deps Deps) error {
	logPath := deps.LogFilePath()

	file, err := os.OpenFile(logPath, os.O_RDONLY|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}

	_, _ = deps.Printf("%s\n\n", deps.Styler.Muted("Following logs at "+logPath+" (Ctrl+C to stop)"))

	reader := bufio.NewReader(file)
	ticker := time.NewTicker(deps.PollInterval)
	defer ticker.Stop()

	var partial string
	for {
		line, err := reader.ReadString('\n')
		partial += line
		if err == nil {
			_, _ = fmt.Fprintln(deps.Out, colorizeLogLine(deps.Styler, strings.TrimSuffix(partial, "\n")))
			partial = ""
			continue
		}
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("read log file: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Clear empties the log file.
func Clear(_ context.Context, g domain.Global) error {
	return clearLog(depsFor(g))
}

func clearLog(deps Deps) error {
	if err := os.WriteFile(deps.LogFilePath(), nil, 0600); err != nil {
		return fmt.Errorf("clear log file: %w", err)
	}
	_, _ = deps.Printf("%s\n", deps.Styler.Success("Log file cleared"))
	return nil
}

func colorizeLogLine(s domain.Styler, line string) string {
	switch parseLine(line).Level {
	case "ERROR":
		return s.Error(line)
	case "WARN":
		return s.Warning(line)
	case "INFO":
		return s.Info(line)
	case "DEBUG":
		return s.Muted(line)
	}
	return line
}

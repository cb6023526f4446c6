package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/footprint-tools/keel/internal/dispatchers"
	"github.com/footprint-tools/keel/internal/ui/style"
)

// TUI prompts with small inline Bubble Tea programs. It needs a terminal.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI creates a terminal prompter.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &TUI{in: in, out: out}
}

func (t *TUI) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, dispatchers.ErrInterrupted
		}
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}

// Input asks for one line of text.
func (t *TUI) Input(ctx context.Context, req dispatchers.InputRequest) (string, error) {
	final, err := t.run(ctx, newInputModel(req))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled {
		return "", dispatchers.ErrInterrupted
	}
	return m.input.Value(), nil
}

// Select shows a list and returns the index chosen.
func (t *TUI) Select(ctx context.Context, req dispatchers.SelectRequest) (int, error) {
	if len(req.Options) == 0 {
		return 0, errors.New("nothing to select from")
	}
	final, err := t.run(ctx, newSelectModel(req))
	if err != nil {
		return 0, err
	}
	m := final.(selectModel)
	if m.cancelled {
		return 0, dispatchers.ErrInterrupted
	}
	return m.cursor, nil
}

// Report prints a problem with the previous answer.
func (t *TUI) Report(err error) {
	fmt.Fprintln(t.out, style.Error("✗ "+err.Error()))
}

var _ dispatchers.Prompter = (*TUI)(nil)

//
// Key bindings
//

type inputKeys struct {
	Submit key.Binding
	Cancel key.Binding
}

func (k inputKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Submit, k.Cancel} }
func (k inputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type selectKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Choose key.Binding
	Cancel key.Binding
}

func (k selectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Cancel}
}

func (k selectKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top, k.Bottom}, {k.Choose, k.Cancel}}
}

var (
	defaultInputKeys = inputKeys{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel: key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel")),
	}
	defaultSelectKeys = selectKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Choose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Cancel: key.NewBinding(key.WithKeys("ctrl+c", "esc", "q"), key.WithHelp("q", "cancel")),
	}
)

func questionLine(message string) string {
	return style.Info("?") + " " + lipgloss.NewStyle().Bold(true).Render(message)
}

//
// Text input
//

type inputModel struct {
	message   string
	input     textinput.Model
	keys      inputKeys
	help      help.Model
	done      bool
	cancelled bool
}

func newInputModel(req dispatchers.InputRequest) inputModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = maxInputLength
	if req.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if req.Optional {
		ti.Placeholder = "optional, press enter to skip"
	}
	if req.Suggest != "" {
		ti.SetValue(req.Suggest)
		ti.CursorEnd()
	}
	ti.Focus()

	return inputModel{
		message: req.Message,
		input:   ti,
		keys:    defaultInputKeys,
		help:    help.New(),
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		value := m.input.Value()
		if m.input.EchoMode == textinput.EchoPassword {
			value = strings.Repeat("•", len([]rune(value)))
		}
		if m.cancelled {
			value = style.Muted("cancelled")
		}
		return questionLine(m.message) + " " + value + "\n"
	}

	var b strings.Builder
	b.WriteString(questionLine(m.message))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

//
// Selection list
//

type selectModel struct {
	message   string
	options   []dispatchers.Option
	cursor    int
	keys      selectKeys
	help      help.Model
	done      bool
	cancelled bool
}

func newSelectModel(req dispatchers.SelectRequest) selectModel {
	cursor := req.Default
	if cursor < 0 || cursor >= len(req.Options) {
		cursor = 0
	}
	return selectModel{
		message: req.Message,
		options: req.Options,
		cursor:  cursor,
		keys:    defaultSelectKeys,
		help:    help.New(),
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	last := len(m.options) - 1
	switch {
	case key.Matches(msg2, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg2, m.keys.Choose):
		m.done = true
		return m, tea.Quit
	case key.Matches(msg2, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = last
		}
	case key.Matches(msg2, m.keys.Down):
		if m.cursor < last {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case key.Matches(msg2, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg2, m.keys.Bottom):
		m.cursor = last
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return questionLine(m.message) + " " + style.Info(m.options[m.cursor].Name) + "\n"
	}
	if m.cancelled {
		return questionLine(m.message) + " " + style.Muted("cancelled") + "\n"
	}

	var b strings.Builder
	b.WriteString(questionLine(m.message))
	b.WriteString("\n")

	width := 0
	for _, o := range m.options {
		width = max(width, lipgloss.Width(o.Name))
	}
	nameStyle := lipgloss.NewStyle().Width(width + 2)

	for i, o := range m.options {
		cursor := "   "
		name := nameStyle.Render(o.Name)
		if i == m.cursor {
			cursor = " → "
			name = nameStyle.Bold(true).Render(o.Name)
		}
		b.WriteString(cursor)
		b.WriteString(name)
		if o.Description != "" {
			b.WriteString(style.Muted(o.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

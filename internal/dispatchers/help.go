package dispatchers

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/footprint-tools/keel/internal/ui/style"
)

// pager is implemented by writers that can page long output.
type pager interface {
	Pager(content string)
}

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' || c == '-' && i > 0 && usage[i-1] == ' ' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := strings.TrimSpace(usage[cmdEnd:])
	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

// usageLine renders how node n is invoked when reached at path.
func (t *Tree) usageLine(n *node, path []string) string {
	parts := []string{strings.Join(path, " ")}

	switch n.kind {
	case kindChoice:
		parts = append(parts, "<command>")
	case kindSequence:
		for _, f := range n.positionals() {
			parts = append(parts, f.usageToken())
		}
		for _, f := range n.fields {
			if !f.positional {
				parts = append(parts, f.usageToken())
			}
		}
		if n.next != "" {
			next := t.nodes[n.next]
			switch {
			case next.keyword != "":
				parts = append(parts, next.keyword, "...")
			case next.kind == kindChoice:
				parts = append(parts, "<command>", "...")
			default:
				parts = append(parts, "...")
			}
		}
	}
	return strings.Join(parts, " ")
}

// Help renders the help text of a node.
func (t *Tree) Help(nodeID string, path []string) (string, error) {
	n, ok := t.nodes[nodeID]
	if !ok {
		return "", fmt.Errorf("unknown node %q", nodeID)
	}
	if len(path) == 0 {
		path = []string{t.name}
	}

	var out bytes.Buffer

	out.WriteString(strings.Join(path, " "))
	if n.summary != "" {
		out.WriteString(" - ")
		out.WriteString(n.summary)
	}
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(t.usageLine(n, path)))
	out.WriteString("\n\n")

	if n.description != "" {
		out.WriteString(n.description)
		out.WriteString("\n\n")
	}

	if positionals := n.positionals(); len(positionals) > 0 {
		out.WriteString("ARGUMENTS\n")
		for _, f := range positionals {
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-24s", f.usageToken())), f.description)
		}
		out.WriteString("\n")
	}

	out.WriteString("FLAGS\n")
	for _, f := range n.fields {
		if f.positional {
			continue
		}
		name := f.flagName()
		if f.short != "" {
			name = "-" + f.short + ", " + name
		}
		if !f.boolean {
			hint := f.valueHint
			if hint == "" {
				hint = "<" + f.name + ">"
			}
			name += " " + hint
		}
		fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-24s", name)), f.description)
	}
	fmt.Fprintf(&out, "   %s  %s\n\n", style.Info(fmt.Sprintf("%-24s", "-h, --help")), "Show this help")

	if n.kind == kindChoice {
		out.WriteString("COMMANDS\n")
		for _, v := range n.variants {
			desc := v.Description
			if desc == "" {
				desc = t.nodes[v.Target].summary
			}
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-24s", v.Name)), desc)
		}
		out.WriteString("\n")
		fmt.Fprintf(&out, "See '%s <command> --help' to read about a specific command.\n", strings.Join(path, " "))
	} else if n.next != "" {
		next := t.nodes[n.next]
		if next.keyword != "" {
			out.WriteString("NEXT\n")
			fmt.Fprintf(&out, "   %s  %s\n\n", style.Info(fmt.Sprintf("%-24s", next.keyword)), next.summary)
		}
	}

	return out.String(), nil
}

// WriteHelp renders the help of a node to w, through its pager when it has one.
func (t *Tree) WriteHelp(w io.Writer, nodeID string, path []string) error {
	text, err := t.Help(nodeID, path)
	if err != nil {
		return err
	}
	if p, ok := w.(pager); ok {
		p.Pager(text)
		return nil
	}
	_, err = io.WriteString(w, text)
	return err
}

// Package theme implements the `keel config theme` leaves.
package theme

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/ui/style"
)

// Names lists every theme a user may pick: the base names, which follow the
// terminal background, then the explicit variants.
func Names() []string {
	return slices.Concat(style.BaseThemeNames, style.ThemeNames)
}

// List prints every theme with a preview of its colors.
func List(_ context.Context, g domain.Global) error {
	return list(actions.DepsFor(g), style.Enabled())
}

func list(deps actions.Deps, preview bool) error {
	current, _ := deps.Config.Get("color_theme")
	if current == "" {
		current = "default"
	}

	_, _ = deps.Printf("Available themes (* = current)\n\n")
	for _, name := range style.ThemeNames {
		marker := "  "
		if name == current || name == style.ResolveThemeName(current) {
			marker = deps.Styler.Success("* ")
		}
		line := fmt.Sprintf("%s%-16s", marker, name)
		if preview {
			line += "  " + renderColorPreview(style.Themes[name])
		}
		_, _ = fmt.Fprintln(deps.Out, line)
	}
	_, _ = deps.Printf("\nUse 'keel config theme set <name>' to change\n")
	return nil
}

// renderColorPreview returns colored text samples for a theme.
func renderColorPreview(cfg style.ColorConfig) string {
	colorize := func(text, color string) string {
		if color == "" || color == "bold" {
			return lipgloss.NewStyle().Bold(true).Render(text)
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
	}

	return colorize("success ", cfg.Success) +
		colorize("error ", cfg.Error) +
		colorize("info ", cfg.Info) +
		colorize("muted", cfg.Muted) +
		"   " +
		colorize("+12.5 ", cfg.Credit) +
		colorize("-3", cfg.Debit)
}

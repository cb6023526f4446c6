// Package style provides semantic terminal styling using lipgloss.
//
// All styling is semantic (Success, Warning, Error, etc.) rather than
// visual. When disabled, every helper returns its input unchanged.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool
	colors  ColorConfig

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
	creditStyle  lipgloss.Style
	debitStyle   lipgloss.Style
)

// Init enables or disables styling. NO_COLOR and KEEL_NO_COLOR (any
// non-empty value) disable styling regardless of enable.
//
// cfg supplies the color_theme setting; nil means the default theme.
// Call once from main before any output.
func Init(enable bool, cfg map[string]string) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("KEEL_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if enabled {
		colors = LoadColorConfig(cfg)
		initStyles(colors)
	}
}

// GetColors returns the active color configuration.
func GetColors() ColorConfig {
	return colors
}

func initStyles(colors ColorConfig) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(colors.Success)
	warningStyle = makeStyle(colors.Warning)
	errorStyle = makeStyle(colors.Error)
	infoStyle = makeStyle(colors.Info)
	mutedStyle = makeStyle(colors.Muted)
	headerStyle = makeStyle(colors.Header)
	creditStyle = makeStyle(colors.Credit)
	debitStyle = makeStyle(colors.Debit)
}

// makeStyle creates a lipgloss style from "bold" or an ANSI color number.
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

// Success styles text for successful operations.
func Success(text string) string { return render(successStyle, text) }

// Warning styles text for warnings.
func Warning(text string) string { return render(warningStyle, text) }

// Error styles text for errors.
func Error(text string) string { return render(errorStyle, text) }

// Info styles identifiers and commands.
func Info(text string) string { return render(infoStyle, text) }

// Header styles section headers and titles.
func Header(text string) string { return render(headerStyle, text) }

// Muted styles secondary information.
func Muted(text string) string { return render(mutedStyle, text) }

// Credit styles incoming amounts.
func Credit(text string) string { return render(creditStyle, text) }

// Debit styles outgoing amounts.
func Debit(text string) string { return render(debitStyle, text) }

package style

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds the colors of one theme.
// Values are ANSI color numbers (0-255) or "bold".
type ColorConfig struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
	Credit  string
	Debit   string
}

// BaseThemeNames lists the themes that pick a dark or light variant automatically.
var BaseThemeNames = []string{"default", "mono", "ocean", "contrast"}

// ThemeNames lists every theme with its explicit variant.
var ThemeNames = []string{
	"default-dark", "default-light",
	"mono-dark", "mono-light",
	"ocean-dark", "ocean-light",
	"contrast-dark", "contrast-light",
}

// Themes contains the built-in color themes. Dark variants use bright
// colors and light variants use dark, saturated ones.
var Themes = map[string]ColorConfig{
	"default-dark": {
		Success: "10", Warning: "11", Error: "9", Info: "14",
		Muted: "245", Header: "bold", Credit: "10", Debit: "13",
	},
	"default-light": {
		Success: "28", Warning: "130", Error: "124", Info: "27",
		Muted: "243", Header: "bold", Credit: "28", Debit: "90",
	},
	"mono-dark": {
		Success: "255", Warning: "250", Error: "bold", Info: "253",
		Muted: "242", Header: "bold", Credit: "255", Debit: "248",
	},
	"mono-light": {
		Success: "232", Warning: "238", Error: "bold", Info: "234",
		Muted: "246", Header: "bold", Credit: "232", Debit: "240",
	},
	"ocean-dark": {
		Success: "49", Warning: "221", Error: "203", Info: "75",
		Muted: "67", Header: "bold", Credit: "49", Debit: "111",
	},
	"ocean-light": {
		Success: "30", Warning: "136", Error: "160", Info: "25",
		Muted: "66", Header: "bold", Credit: "30", Debit: "61",
	},
	"contrast-dark": {
		Success: "46", Warning: "226", Error: "196", Info: "51",
		Muted: "250", Header: "bold", Credit: "46", Debit: "201",
	},
	"contrast-light": {
		Success: "22", Warning: "94", Error: "88", Info: "18",
		Muted: "238", Header: "bold", Credit: "22", Debit: "53",
	},
}

// IsDarkBackground reports whether the terminal has a dark background.
// termenv returns true when detection fails.
func IsDarkBackground() bool {
	return termenv.HasDarkBackground()
}

// ResolveThemeName appends -dark or -light to a base theme name.
func ResolveThemeName(name string) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}
	if IsDarkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig picks the theme named by KEEL_COLOR_THEME or the
// color_theme setting, falling back to default-dark for unknown names.
func LoadColorConfig(cfg map[string]string) ColorConfig {
	name := "default"
	if env := os.Getenv("KEEL_COLOR_THEME"); env != "" {
		name = env
	} else if v := cfg["color_theme"]; v != "" {
		name = v
	}

	theme, ok := Themes[ResolveThemeName(name)]
	if !ok {
		theme = Themes["default-dark"]
	}
	return theme
}

package style

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var dark = map[string]string{"color_theme": "default-dark"}

func clearEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("KEEL_NO_COLOR", "")
	t.Setenv("KEEL_COLOR_THEME", "")
}

var helpers = map[string]func(string) string{
	"Success": Success,
	"Warning": Warning,
	"Error":   Error,
	"Info":    Info,
	"Header":  Header,
	"Muted":   Muted,
	"Credit":  Credit,
	"Debit":   Debit,
}

func TestDisabledReturnsPlainText(t *testing.T) {
	clearEnv(t)
	Init(false, dark)

	for name, fn := range helpers {
		require.Equal(t, "test message", fn("test message"), name)
	}
}

func TestEnabledReturnsStyledText(t *testing.T) {
	clearEnv(t)
	Init(true, dark)
	t.Cleanup(func() { Init(false, nil) })

	for name, fn := range helpers {
		out := fn("test message")
		require.Contains(t, out, "test message", name)
		require.Contains(t, out, "\x1b[", name)
	}
}

func TestNoColorEnvDisablesStyling(t *testing.T) {
	for _, env := range []string{"NO_COLOR", "KEEL_NO_COLOR"} {
		t.Run(env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(env, "1")

			Init(true, dark)
			require.False(t, Enabled())
			require.Equal(t, "test", Success("test"))
		})
	}
}

func TestLoadColorConfig(t *testing.T) {
	clearEnv(t)

	require.Equal(t, Themes["ocean-light"], LoadColorConfig(map[string]string{"color_theme": "ocean-light"}))
	require.Equal(t, Themes["default-dark"], LoadColorConfig(map[string]string{"color_theme": "no-such-dark"}))

	t.Setenv("KEEL_COLOR_THEME", "mono-dark")
	require.Equal(t, Themes["mono-dark"], LoadColorConfig(dark))
}

func TestThemesAreComplete(t *testing.T) {
	require.Len(t, Themes, len(ThemeNames))
	for _, name := range ThemeNames {
		theme, ok := Themes[name]
		require.True(t, ok, name)
		require.NotEmpty(t, theme.Success, name)
		require.NotEmpty(t, theme.Debit, name)
	}
	for _, base := range BaseThemeNames {
		require.Contains(t, ThemeNames, base+"-dark")
		require.Contains(t, ThemeNames, base+"-light")
	}
}

func TestResolveThemeName_KeepsExplicitVariant(t *testing.T) {
	require.Equal(t, "mono-light", ResolveThemeName("mono-light"))
	require.Equal(t, "ocean-dark", ResolveThemeName("ocean-dark"))
}

func TestNopStyler(t *testing.T) {
	var s NopStyler
	require.False(t, s.Enabled())
	require.Equal(t, "x", s.Header("x"))
}

package theme

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/keel/internal/actions/actiontest"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/ui/style"
)

func TestNames(t *testing.T) {
	names := Names()

	require.Contains(t, names, "default")
	require.Contains(t, names, "ocean-light")
	require.Len(t, names, len(style.BaseThemeNames)+len(style.ThemeNames))
}

func TestList_MarksCurrent(t *testing.T) {
	env := actiontest.New(t)
	require.NoError(t, env.Config.Set("color_theme", "mono-light"))

	require.NoError(t, list(env.Deps, false))

	var marked []string
	for _, line := range strings.Split(env.Out.String(), "\n") {
		if strings.HasPrefix(line, "* ") {
			marked = append(marked, strings.TrimSpace(strings.TrimPrefix(line, "* ")))
		}
	}
	require.Equal(t, []string{"mono-light"}, marked)
	require.Contains(t, env.Info.String(), "keel config theme set")
}

func TestList_Preview(t *testing.T) {
	env := actiontest.New(t)

	require.NoError(t, list(env.Deps, true))

	require.Contains(t, env.Out.String(), "success")
	require.Contains(t, env.Out.String(), "+12.5")
}

func TestSet(t *testing.T) {
	env := actiontest.New(t)

	err := set(domain.ConfigAssignment{Key: "color_theme", Value: "ocean"}, env.Deps)
	require.NoError(t, err)

	value, _ := env.Config.Get("color_theme")
	require.Equal(t, "ocean", value)
	require.Contains(t, env.Info.String(), "Theme set to ocean")
}

func TestSet_AlreadyActive(t *testing.T) {
	env := actiontest.New(t)
	require.NoError(t, env.Config.Set("color_theme", "contrast-dark"))

	require.NoError(t, set(domain.ConfigAssignment{Value: "contrast-dark"}, env.Deps))

	require.Contains(t, env.Info.String(), "already active")
}

func TestSet_Unknown(t *testing.T) {
	env := actiontest.New(t)

	err := Set(context.Background(), domain.ConfigAssignment{Value: "neon"})

	require.ErrorContains(t, err, "unknown theme: neon")
	value, _ := env.Config.Get("color_theme")
	require.Equal(t, "default", value)
}

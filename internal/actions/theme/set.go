package theme

import (
	"context"
	"fmt"
	"slices"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/ui/style"
)

// Set stores the color_theme setting and applies it to this process.
func Set(_ context.Context, c domain.ConfigAssignment) error {
	return set(c, actions.DepsFor(c.Globals()))
}

func set(c domain.ConfigAssignment, deps actions.Deps) error {
	if !slices.Contains(Names(), c.Value) {
		return fmt.Errorf("unknown theme: %s", c.Value)
	}

	current, _ := deps.Config.Get("color_theme")
	if current == c.Value {
		_, _ = deps.Printf("Theme %s is already active\n", deps.Styler.Info(c.Value))
		return nil
	}

	if err := deps.Config.Set("color_theme", c.Value); err != nil {
		return err
	}
	deps.Logger.Info("theme: set to %s", c.Value)

	if style.Enabled() {
		style.Init(true, map[string]string{"color_theme": c.Value})
	}
	_, _ = deps.Printf("Theme set to %s\n", deps.Styler.Success(c.Value))
	return nil
}

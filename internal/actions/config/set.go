package config

import (
	"context"
	"fmt"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/usage"
)

// Set persists a validated key=value pair.
func Set(_ context.Context, c domain.ConfigAssignment) error {
	return set(c, actions.DepsFor(c.Globals()))
}

func set(c domain.ConfigAssignment, deps actions.Deps) error {
	previous, hadValue := deps.Config.Get(c.Key)
	if err := deps.Config.Set(c.Key, c.Value); err != nil {
		return err
	}
	deps.Logger.Info("config: %s set to %q", c.Key, c.Value)

	action := "added"
	if hadValue && previous != "" {
		action = "updated"
	}
	_, _ = deps.Printf("%s %s=%s\n", deps.Styler.Success(action), c.Key, c.Value)
	return nil
}

// Get prints the effective value of one key.
func Get(_ context.Context, c domain.ConfigKeyRef) error {
	return get(c, actions.DepsFor(c.Globals()))
}

func get(c domain.ConfigKeyRef, deps actions.Deps) error {
	value, found := deps.Config.Get(c.Key)
	if !found {
		return usage.InvalidConfigKey(c.Key)
	}
	_, err := fmt.Fprintln(deps.Out, value)
	return err
}

// Unset removes a key from the config file so its default applies again.
func Unset(_ context.Context, c domain.ConfigKeyRef) error {
	return unset(c, actions.DepsFor(c.Globals()))
}

func unset(c domain.ConfigKeyRef, deps actions.Deps) error {
	if err := deps.Config.Unset(c.Key); err != nil {
		return err
	}
	deps.Logger.Info("config: %s unset", c.Key)

	value, _ := deps.Config.Get(c.Key)
	_, _ = deps.Printf("%s %s (now %q)\n", deps.Styler.Warning("unset"), c.Key, value)
	return nil
}

// Package config implements the `keel config` leaves.
package config

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/keel/internal/actions"
	"github.com/footprint-tools/keel/internal/domain"
)

// Show prints the effective configuration grouped by section, or as a
// YAML mapping with --yaml.
func Show(_ context.Context, c domain.ConfigShow) error {
	return show(c, actions.DepsFor(c.Globals()))
}

func show(c domain.ConfigShow, deps actions.Deps) error {
	values, err := deps.Config.GetAll()
	if err != nil {
		return err
	}

	if c.YAML {
		return showYAML(values, deps)
	}

	s := deps.Styler
	first := true
	for _, section := range domain.ConfigSections() {
		var lines []string
		for _, key := range domain.VisibleConfigKeys() {
			if key.Section != section {
				continue
			}
			value := values[key.Name]
			if key.HideIfEmpty && value == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-18s %s", key.Name, value))
		}
		if len(lines) == 0 {
			continue
		}
		if !first {
			_, _ = fmt.Fprintln(deps.Out)
		}
		first = false
		_, _ = fmt.Fprintln(deps.Out, s.Header(section))
		_, _ = fmt.Fprintln(deps.Out, strings.Join(lines, "\n"))
	}
	return nil
}

// showYAML emits the visible keys in declaration order.
func showYAML(values map[string]string, deps actions.Deps) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range domain.VisibleConfigKeys() {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key.Name, HeadComment: key.Description},
			&yaml.Node{Kind: yaml.ScalarNode, Value: values[key.Name], Tag: "!!str"},
		)
	}

	enc := yaml.NewEncoder(deps.Out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

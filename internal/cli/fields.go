package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/footprint-tools/keel/internal/dispatchers"
	"github.com/footprint-tools/keel/internal/domain"
)

// parseAccountID accepts lower-case ids made of letters, digits, '-', '_' and '.'.
func parseAccountID(raw string) (any, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return nil, errors.New("account id must not be empty")
	}
	if len(id) > 64 {
		return nil, errors.New("account id must be at most 64 characters")
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return nil, fmt.Errorf("account id may only contain a-z, 0-9, '-', '_' and '.', got %q", r)
		}
	}
	return id, nil
}

func parseAmount(raw string) (any, error) {
	return domain.ParseAmount(raw)
}

func positiveHeight(v any) error {
	if v.(int64) <= 0 {
		return errors.New("block height must be positive")
	}
	return nil
}

func positiveLimit(v any) error {
	if v.(int64) <= 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

func accountField[P any](name, prompt, description string) dispatchers.Field[P] {
	return dispatchers.Field[P]{
		Name:        name,
		Positional:  true,
		Prompt:      prompt,
		Description: description,
		ValueHint:   "<" + name + ">",
		Parse:       parseAccountID,
	}
}

// rootFields are the process-wide switches; they are never prompted.
var rootFields = []dispatchers.Field[domain.Global]{
	{Name: "verbose", Short: "v", Bool: true, Description: "Log every step of the walk at debug level"},
	{Name: "quiet", Short: "q", Bool: true, Description: "Print results only"},
	{Name: "no-color", Bool: true, Description: "Disable colored output"},
}

// configKeyField selects one of the visible config keys.
func configKeyField[P any]() dispatchers.Field[P] {
	return dispatchers.Field[P]{
		Name:        "key",
		Positional:  true,
		Prompt:      "Which setting?",
		Description: "Configuration key",
		Parse:       dispatchers.ParseString,
		Check: func(v any) error {
			if !domain.IsValidConfigKey(v.(string)) {
				return fmt.Errorf("unknown config key %q", v)
			}
			return nil
		},
		Options: func(P) []dispatchers.Option {
			keys := domain.VisibleConfigKeys()
			opts := make([]dispatchers.Option, len(keys))
			for i, k := range keys {
				opts[i] = dispatchers.Option{Name: k.Name, Description: k.Description}
			}
			return opts
		},
	}
}

package config

import (
	"os"
	"strings"

	"github.com/footprint-tools/keel/internal/paths"
)

// EnvPrefix is prepended to the upper-cased key name to form its
// environment override, e.g. KEEL_DEFAULT_NETWORK.
const EnvPrefix = "KEEL_"

// Default configuration values (in code, not persisted)
var Defaults = map[string]func() string{
	"networks":        func() string { return "mainnet,testnet,localnet" },
	"default_network": func() string { return "" },
	"initial_balance": func() string { return "" },
	"db_path":         func() string { return paths.LedgerDBPath() },
	"prompt_style":    func() string { return "tui" },
	"color":           func() string { return "auto" },
	"color_theme":     func() string { return "default" }, // auto-detects -dark/-light
	"pager":           func() string { return "" },
	"enable_log":      func() string { return "true" },
	"log_level":       func() string { return "info" },
	"log_max_size_mb": func() string { return "10" },
}

// EnvKey returns the environment variable that overrides key.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

func fromEnv(key string) (string, bool) {
	return os.LookupEnv(EnvKey(key))
}

// Get returns the value for a config key.
// Lookup order: KEEL_<KEY> environment variable, config file, default.
// Returns the value and whether it was found anywhere.
func Get(key string) (string, bool) {
	if value, ok := fromEnv(key); ok {
		return value, true
	}

	if cfg, err := load(); err == nil {
		if value, exists := cfg[key]; exists {
			return value, true
		}
	}

	if defaultFn, ok := Defaults[key]; ok {
		return defaultFn(), true
	}

	return "", false
}

// GetAll returns all config values: defaults, overridden by the file,
// overridden by the environment.
func GetAll() (map[string]string, error) {
	result := make(map[string]string)

	for key, valueFn := range Defaults {
		result[key] = valueFn()
	}

	if cfg, err := load(); err == nil {
		for key, value := range cfg {
			result[key] = value
		}
	}

	for key := range result {
		if value, ok := fromEnv(key); ok {
			result[key] = value
		}
	}

	return result, nil
}

func load() (map[string]string, error) {
	lines, err := ReadLines()
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

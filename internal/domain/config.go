package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in `keel config show`
	Hidden      bool   // Hidden keys are not shown in help or config show
	HideIfEmpty bool   // Only show in config show if explicitly set
	Check       func(value string) error
}

// ConfigKeys defines all available configuration keys.
// This is the single source of truth for configuration.
// Order determines display order in `keel config show`.
var ConfigKeys = []ConfigKey{
	// Networks
	{
		Name:        "networks",
		Default:     "mainnet,testnet,localnet",
		Description: "Comma-separated list of known networks",
		Section:     "Networks",
		Check:       checkNetworkList,
	},
	{
		Name:        "default_network",
		Default:     "",
		Description: "Network used when network-config is not given (empty: ask)",
		Section:     "Networks",
		HideIfEmpty: true,
	},
	// Accounts
	{
		Name:        "initial_balance",
		Default:     "",
		Description: "Balance for new accounts when --initial-balance is not given (empty: ask)",
		Section:     "Accounts",
		HideIfEmpty: true,
		Check: func(value string) error {
			if value == "" {
				return nil
			}
			_, err := ParseAmount(value)
			return err
		},
	},
	{
		Name:        "db_path",
		Default:     "", // Set dynamically to paths.LedgerDBPath()
		Description: "Path to the ledger database",
		Section:     "Accounts",
	},
	// Interaction
	{
		Name:        "prompt_style",
		Default:     "tui",
		Description: "Prompt style on a terminal: tui, line, never",
		Section:     "Interaction",
		Check:       oneOf("tui", "line", "never"),
	},
	{
		Name:        "color",
		Default:     "auto",
		Description: "Colored output: auto, always, never",
		Section:     "Interaction",
		Check:       oneOf("auto", "always", "never"),
	},
	{
		Name:        "color_theme",
		Default:     "default",
		Description: "Color theme: default, mono, ocean, contrast (optionally -dark or -light)",
		Section:     "Interaction",
	},
	{
		Name:        "pager",
		Default:     "",
		Description: "Pager for long output such as help (empty: $PAGER or less; cat disables)",
		Section:     "Interaction",
		HideIfEmpty: true,
	},
	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
		Check:       checkBool,
	},
	{
		Name:        "log_level",
		Default:     "info",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
		Check:       oneOf("debug", "info", "warn", "error"),
	},
	{
		Name:        "log_max_size_mb",
		Default:     "10",
		Description: "Rotate the log file after this many megabytes",
		Section:     "Logging",
		Hidden:      true,
		Check:       checkPositiveInt,
	},
}

func oneOf(values ...string) func(string) error {
	return func(value string) error {
		for _, v := range values {
			if value == v {
				return nil
			}
		}
		return fmt.Errorf("must be one of: %s", strings.Join(values, ", "))
	}
}

func checkBool(value string) error {
	if _, err := strconv.ParseBool(value); err != nil {
		return fmt.Errorf("must be true or false")
	}
	return nil
}

func checkPositiveInt(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func checkNetworkList(value string) error {
	if len(SplitNetworks(value)) == 0 {
		return fmt.Errorf("at least one network is required")
	}
	return nil
}

// SplitNetworks parses the comma-separated networks setting.
func SplitNetworks(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// configKeyMap is a lookup map for configuration keys.
var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// GetConfigKey returns the ConfigKey for a given name.
func GetConfigKey(name string) (ConfigKey, bool) {
	key, ok := configKeyMap[name]
	return key, ok
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// CheckConfigValue validates a value for the given key.
func CheckConfigValue(name, value string) error {
	key, ok := configKeyMap[name]
	if !ok {
		return fmt.Errorf("unknown config key %q", name)
	}
	if key.Check == nil {
		return nil
	}
	return key.Check(value)
}

// VisibleConfigKeys returns all non-hidden configuration keys.
func VisibleConfigKeys() []ConfigKey {
	var visible []ConfigKey
	for _, key := range ConfigKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"Networks", "Accounts", "Interaction", "Logging"}
}

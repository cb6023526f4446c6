package config

import (
	"fmt"
	"strconv"
	"strings"
)

const bom = "\uFEFF"

// Parse reads key=value lines into a map. Blank lines and lines starting
// with # are skipped. Values may be double-quoted; unquoted values drop a
// trailing " # comment". Later keys override earlier ones.
func Parse(lines []string) (map[string]string, error) {
	cfg := make(map[string]string)

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, bom)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: expected key=value", i+1)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key", i+1)
		}

		cfg[key] = parseValue(strings.TrimSpace(value))
	}

	return cfg, nil
}

func parseValue(raw string) string {
	if strings.HasPrefix(raw, `"`) {
		if end := strings.LastIndex(raw, `"`); end > 0 {
			if unquoted, err := strconv.Unquote(raw[:end+1]); err == nil {
				return unquoted
			}
			return raw[1:end]
		}
		return raw
	}
	if idx := strings.Index(raw, " #"); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	return raw
}

// quoteValue is the inverse of parseValue for values that need it.
func quoteValue(value string) string {
	if value == "" || strings.ContainsAny(value, " \t#\"") || value != strings.TrimSpace(value) {
		return strconv.Quote(value)
	}
	return value
}

package config

import "strings"

// Set assigns key in lines, keeping any inline comment on an existing entry.
// It reports whether an existing line was updated rather than appended.
func Set(lines []string, key, value string) ([]string, bool) {
	entry := key + "=" + quoteValue(value)

	for i, line := range lines {
		k, rest, ok := entryKey(line)
		if !ok || k != key {
			continue
		}

		if idx := strings.Index(rest, " #"); idx >= 0 && !strings.HasPrefix(strings.TrimSpace(rest), `"`) {
			lines[i] = entry + " " + strings.TrimSpace(rest[idx:])
		} else {
			lines[i] = entry
		}
		return lines, true
	}

	// Uncomment a "# key=" placeholder written by initializeDefaults.
	for i, line := range lines {
		if strings.TrimSpace(line) == "# "+key+"=" {
			lines[i] = entry
			return lines, true
		}
	}

	lines = append(lines, entry)
	return lines, false
}

// Unset removes every entry for key and reports whether one was found.
func Unset(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false

	for _, line := range lines {
		if k, _, ok := entryKey(line); ok && k == key {
			removed = true
			continue
		}
		out = append(out, line)
	}

	return out, removed
}

func entryKey(line string) (key, rest string, ok bool) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(line, bom))
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	k, rest, ok := strings.Cut(trimmed, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(k), rest, true
}

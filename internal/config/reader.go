package config

import (
	"bufio"
	"os"
	"strings"

	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/log"
	"github.com/footprint-tools/keel/internal/paths"
)

// ReadLines returns the raw lines of the config file. A missing or empty
// file is created and seeded with the visible defaults.
func ReadLines() ([]string, error) {
	configPath, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(configPath)
	isNew := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	file, err := os.OpenFile(configPath, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	if err := os.Chmod(configPath, 0600); err != nil {
		log.Warn("config: could not set permissions on config file: %v", err)
	}

	var lines []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if isNew && len(lines) == 0 {
		lines = initializeDefaults()
		if err := WriteLines(lines); err != nil {
			log.Warn("config: could not write default config: %v", err)
		}
	}

	return lines, nil
}

// initializeDefaults creates config lines with default values for visible keys.
func initializeDefaults() []string {
	lines := []string{
		"# keel configuration",
		"# Edit values below or use: keel config set <key> <value>",
		"",
	}

	section := ""
	for _, key := range domain.VisibleConfigKeys() {
		if key.Section != section {
			if section != "" {
				lines = append(lines, "")
			}
			section = key.Section
			lines = append(lines, "# "+section)
		}

		// HideIfEmpty keys are commented out (optional overrides)
		if key.HideIfEmpty {
			lines = append(lines, "# "+key.Name+"=")
			continue
		}

		value := key.Default
		if fn, ok := Defaults[key.Name]; ok {
			value = fn()
		}
		lines = append(lines, key.Name+"="+quoteValue(value))
	}

	return lines
}

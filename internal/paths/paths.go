package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "keel"

// AppDataDir returns the application directory for the log file.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory,
// where the ledger database lives.
//   - macOS: ~/Library/Application Support/keel
//   - Linux: $XDG_DATA_HOME/keel or ~/.local/share/keel
//   - Windows: %LOCALAPPDATA%\keel
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// LedgerDBPath returns the default path of the SQLite ledger.
func LedgerDBPath() string {
	return filepath.Join(AppLocalDataDir(), "ledger.db")
}

// ConfigFilePath returns ~/.keelrc.
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".keelrc"), nil
}

// LogFilePath returns the path to the application log file.
//   - macOS: ~/Library/Application Support/keel/keel.log
//   - Linux: $XDG_CONFIG_HOME/keel/keel.log or ~/.config/keel/keel.log
//   - Windows: %AppData%\keel\keel.log
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "keel.log")
}

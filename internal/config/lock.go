package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/footprint-tools/keel/internal/paths"
)

const (
	lockFileName     = ".keelrc.lock"
	lockTimeout      = 5 * time.Second
	staleLockTimeout = 30 * time.Second
	lockPollInterval = 50 * time.Millisecond
)

// ErrLockTimeout is returned when the config lock cannot be acquired in time.
var ErrLockTimeout = errors.New("config: lock timeout")

// WithLock runs fn while holding an exclusive lock file next to the config
// file, so concurrent `keel config set` invocations do not lose writes.
func WithLock(fn func() error) error {
	configPath, err := paths.ConfigFilePath()
	if err != nil {
		return err
	}
	lockPath := filepath.Join(filepath.Dir(configPath), lockFileName)

	f, err := acquireLock(lockPath, time.Now().Add(lockTimeout))
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(lockPath)
	}()

	return fn()
}

func acquireLock(lockPath string, deadline time.Time) (*os.File, error) {
	for {
		if info, err := os.Stat(lockPath); err == nil && time.Since(info.ModTime()) > staleLockTimeout {
			_ = os.Remove(lockPath)
		}

		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, err
		}

		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		time.Sleep(lockPollInterval)
	}
}

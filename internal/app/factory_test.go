package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/keel/internal/log"
)

func setupTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	for _, key := range []string{"KEEL_DB_PATH", "KEEL_ENABLE_LOG", "KEEL_LOG_LEVEL", "KEEL_COLOR", "KEEL_LOG_MAX_SIZE_MB"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func TestDefaultOptions(t *testing.T) {
	setupTempHome(t)

	opts := DefaultOptions()

	require.True(t, opts.StyleEnabled)
	require.True(t, opts.LogEnabled)
	require.Equal(t, log.LevelInfo, opts.LogLevel)
	require.Equal(t, 10, opts.LogMaxSizeMB)
	require.NotEmpty(t, opts.DBPath)
}

func TestDefaultOptions_FromEnv(t *testing.T) {
	setupTempHome(t)
	t.Setenv("KEEL_COLOR", "never")
	t.Setenv("KEEL_ENABLE_LOG", "false")
	t.Setenv("KEEL_LOG_LEVEL", "debug")

	opts := DefaultOptions()

	require.False(t, opts.StyleEnabled)
	require.False(t, opts.LogEnabled)
	require.Equal(t, log.LevelDebug, opts.LogLevel)
}

func TestNew_OpensLedger(t *testing.T) {
	home := setupTempHome(t)
	dbPath := filepath.Join(home, "data", "ledger.db")

	app, err := New(Options{DBPath: dbPath, PagerDisabled: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(app) })

	require.NotNil(t, app.Ledger)
	require.NotNil(t, app.Config)
	require.NotNil(t, app.Logger)
	require.NotNil(t, app.Output)
	require.NotNil(t, app.Styler)

	_, err = os.Stat(dbPath)
	require.NoError(t, err)
}

func TestNew_WithLogging(t *testing.T) {
	setupTempHome(t)

	app, err := New(Options{
		DBPath:       filepath.Join(t.TempDir(), "ledger.db"),
		LogEnabled:   true,
		LogLevel:     log.LevelDebug,
		LogMaxSizeMB: 1,
	})
	require.NoError(t, err)
	require.NoError(t, Close(app))

	_, isNop := app.Logger.(log.NopLogger)
	require.False(t, isNop)
}

func TestNewForTesting(t *testing.T) {
	var out bytes.Buffer
	app, err := NewForTesting(&out, map[string]string{"default_network": "testnet"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(app) })

	value, ok := app.Config.Get("default_network")
	require.True(t, ok)
	require.Equal(t, "testnet", value)

	height, err := app.Ledger.Height(context.Background(), "testnet")
	require.NoError(t, err)
	require.Zero(t, height)

	_, err = app.Output.Printf("hello %s", "keel")
	require.NoError(t, err)
	require.Equal(t, "hello keel", out.String())
}

func TestClose_NilComponents(t *testing.T) {
	app, err := NewForTesting(&bytes.Buffer{}, nil)
	require.NoError(t, err)
	require.NoError(t, app.Ledger.Close())
	app.Ledger = nil
	app.Logger = nil

	require.NoError(t, Close(app))
}

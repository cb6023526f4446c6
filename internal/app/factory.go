// Package app wires the keel application from configuration.
package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/footprint-tools/keel/internal/config"
	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/log"
	"github.com/footprint-tools/keel/internal/paths"
	"github.com/footprint-tools/keel/internal/store"
	"github.com/footprint-tools/keel/internal/ui"
	"github.com/footprint-tools/keel/internal/ui/style"
)

// Options configures the application factory.
type Options struct {
	// Store options
	DBPath string

	// Output options; Out defaults to stdout
	Out           io.Writer
	PagerDisabled bool

	// Log options
	LogEnabled   bool
	LogLevel     log.Level
	LogMaxSizeMB int

	// Style options
	StyleEnabled bool
	StyleConfig  map[string]string
}

// DefaultOptions reads the options from the effective configuration.
func DefaultOptions() Options {
	cfg, _ := config.GetAll()

	maxSize, err := strconv.Atoi(cfg["log_max_size_mb"])
	if err != nil {
		maxSize = log.DefaultMaxSizeMB
	}

	return Options{
		DBPath:       cfg["db_path"],
		LogEnabled:   cfg["enable_log"] == "true",
		LogLevel:     log.ParseLevel(cfg["log_level"]),
		LogMaxSizeMB: maxSize,
		StyleEnabled: cfg["color"] != "never",
		StyleConfig:  cfg,
	}
}

// New creates a new Application with all dependencies wired up.
func New(opts Options) (*domain.Application, error) {
	var logger domain.Logger = log.NopLogger{}
	if opts.LogEnabled {
		l, err := log.New(paths.LogFilePath(), opts.LogLevel, log.Options{MaxSizeMB: opts.LogMaxSizeMB})
		if err == nil {
			logger = l
		}
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = paths.LedgerDBPath()
	}
	ledger, err := store.New(dbPath)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	logger.Debug("app: ledger at %s", dbPath)

	style.Init(opts.StyleEnabled, opts.StyleConfig)

	writerOpts := []ui.WriterOption{ui.WithConfigGetter(config.Get)}
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}

	output := ui.NewWriter(writerOpts...)
	if opts.Out != nil {
		output = ui.NewWriterTo(opts.Out, writerOpts...)
	}

	return &domain.Application{
		Ledger: ledger,
		Config: config.NewProvider(),
		Logger: logger,
		Output: output,
		Styler: style.NewStyler(),
	}, nil
}

// NewForTesting creates an Application over an in-memory ledger and an
// in-memory configuration seeded with values. Output goes to out.
func NewForTesting(out io.Writer, values map[string]string) (*domain.Application, error) {
	ledger, err := store.New(store.MemoryPath)
	if err != nil {
		return nil, err
	}
	return &domain.Application{
		Ledger: ledger,
		Config: config.NewMemoryProvider(values),
		Logger: log.NopLogger{},
		Output: ui.NewWriterTo(out, ui.WithPagerDisabled()),
		Styler: style.NopStyler{},
	}, nil
}

// Close cleans up application resources.
func Close(app *domain.Application) error {
	if app.Logger != nil {
		_ = app.Logger.Close()
	}
	if app.Ledger != nil {
		return app.Ledger.Close()
	}
	return nil
}

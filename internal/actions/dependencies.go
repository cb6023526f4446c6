// Package actions holds the leaf actions of the keel command tree.
// Each leaf receives the context its node derived and reaches the
// outside world only through Deps.
package actions

import (
	"io"

	"github.com/footprint-tools/keel/internal/domain"
	"github.com/footprint-tools/keel/internal/log"
	"github.com/footprint-tools/keel/internal/ui/style"
)

// Version is set at build time with -ldflags "-X .../internal/actions.Version=...".
var Version = "dev"

// Deps is everything a leaf action may touch.
type Deps struct {
	Ledger  domain.Ledger
	Config  domain.ConfigProvider
	Out     io.Writer                                  // results
	Printf  func(format string, a ...any) (int, error) // progress, silenced by --quiet
	Styler  domain.Styler
	Logger  domain.Logger
	Version func() string
}

// DepsFor builds Deps from the application carried by a context.
func DepsFor(g domain.Global) Deps {
	d := Deps{
		Styler:  style.NopStyler{},
		Logger:  log.NopLogger{},
		Out:     io.Discard,
		Version: func() string { return Version },
	}
	if g.App == nil {
		d.Printf = discardf
		return d
	}

	d.Ledger = g.App.Ledger
	d.Config = g.App.Config
	if g.App.Output != nil {
		d.Out = g.App.Output
	}
	if g.App.Styler != nil {
		d.Styler = g.App.Styler
	}
	if g.App.Logger != nil {
		d.Logger = g.App.Logger
	}

	d.Printf = discardf
	if !g.Quiet && g.App.Output != nil {
		d.Printf = g.App.Output.Printf
	}
	return d
}

func discardf(string, ...any) (int, error) { return 0, nil }

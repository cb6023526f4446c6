package actions

import (
	"context"
	"fmt"

	"github.com/footprint-tools/keel/internal/domain"
)

// ShowVersion prints the keel version.
func ShowVersion(_ context.Context, g domain.Global) error {
	return showVersion(DepsFor(g))
}

func showVersion(deps Deps) error {
	_, err := fmt.Fprintf(deps.Out, "keel version %v\n", deps.Version())
	return err
}

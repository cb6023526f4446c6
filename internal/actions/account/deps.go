// Package account implements the `keel account` leaves.
package account

import "github.com/footprint-tools/keel/internal/actions"

// Deps aliases the shared leaf dependencies.
type Deps = actions.Deps

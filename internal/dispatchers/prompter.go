package dispatchers

import (
	"context"
	"errors"
)

// ErrInterrupted is returned by a Prompter when the user aborts input.
var ErrInterrupted = errors.New("interrupted")

// Option is one entry of a selection menu.
type Option struct {
	Name        string
	Description string
}

// InputRequest asks for one line of text.
type InputRequest struct {
	Message  string
	Suggest  string // pre-filled text the user may accept or edit
	Secret   bool
	Optional bool
}

// SelectRequest asks the user to pick one option.
type SelectRequest struct {
	Message string
	Options []Option
	Default int
}

// Prompter is the interactive input source used to fill missing fields.
// Both methods block until the user answers, the context is cancelled, or
// the user aborts (ErrInterrupted).
type Prompter interface {
	Input(ctx context.Context, req InputRequest) (string, error)
	Select(ctx context.Context, req SelectRequest) (int, error)

	// Report shows a problem with the previous answer before the next prompt.
	Report(err error)
}

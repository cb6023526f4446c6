package style

import "github.com/footprint-tools/keel/internal/domain"

// Styler implements domain.Styler using the package-level style functions.
type Styler struct{}

// NewStyler creates a Styler.
func NewStyler() *Styler {
	return &Styler{}
}

func (s *Styler) Enabled() bool              { return Enabled() }
func (s *Styler) Success(text string) string { return Success(text) }
func (s *Styler) Warning(text string) string { return Warning(text) }
func (s *Styler) Error(text string) string   { return Error(text) }
func (s *Styler) Info(text string) string    { return Info(text) }
func (s *Styler) Muted(text string) string   { return Muted(text) }
func (s *Styler) Header(text string) string  { return Header(text) }
func (s *Styler) Credit(text string) string  { return Credit(text) }
func (s *Styler) Debit(text string) string   { return Debit(text) }

// NopStyler returns text unchanged.
type NopStyler struct{}

func (NopStyler) Enabled() bool              { return false }
func (NopStyler) Success(text string) string { return text }
func (NopStyler) Warning(text string) string { return text }
func (NopStyler) Error(text string) string   { return text }
func (NopStyler) Info(text string) string    { return text }
func (NopStyler) Muted(text string) string   { return text }
func (NopStyler) Header(text string) string  { return text }
func (NopStyler) Credit(text string) string  { return text }
func (NopStyler) Debit(text string) string   { return text }

var _ domain.Styler = (*Styler)(nil)
var _ domain.Styler = NopStyler{}

package dispatchers

// Source records where a Builder value came from.
type Source int

const (
	SourceUnset Source = iota
	SourceFlag
	SourceDerived
	SourceDefault
	SourcePrompt
)

func (s Source) String() string {
	switch s {
	case SourceFlag:
		return "flag"
	case SourceDerived:
		return "derived"
	case SourceDefault:
		return "default"
	case SourcePrompt:
		return "prompt"
	default:
		return "unset"
	}
}

// Builder accumulates the values of one node while it is being resolved.
// A fresh Builder is created for every node visit.
type Builder struct {
	fields  []field
	values  map[string]any
	sources map[string]Source
	retry   map[string]bool
}

func newBuilder(fields []field) *Builder {
	return &Builder{
		fields:  fields,
		values:  make(map[string]any, len(fields)),
		sources: make(map[string]Source, len(fields)),
		retry:   make(map[string]bool),
	}
}

// Set assigns a value and records its source.
func (b *Builder) Set(name string, value any, src Source) {
	b.values[name] = value
	b.sources[name] = src
}

// Unset clears a value so that it is resolved again, by prompting if needed.
func (b *Builder) Unset(name string) {
	delete(b.values, name)
	delete(b.sources, name)
	b.retry[name] = true
}

// Get returns the current value of a field.
func (b *Builder) Get(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// IsSet reports whether the field has a value.
func (b *Builder) IsSet(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Source returns where the current value of a field came from.
func (b *Builder) Source(name string) Source {
	return b.sources[name]
}

// markAsked records that an optional field was offered and left empty.
func (b *Builder) markAsked(name string) {
	delete(b.retry, name)
}

// pending returns the fields that still need a value, in declaration order.
// Optional fields are pending only after a validation failure unset them.
func (b *Builder) pending() []field {
	var out []field
	for _, f := range b.fields {
		if b.IsSet(f.name) {
			continue
		}
		if f.optional && !b.retry[f.name] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (b *Builder) freeze() Scope {
	names := make([]string, len(b.fields))
	for i, f := range b.fields {
		names[i] = f.name
	}
	return newScope(names, b.values)
}

// BuilderValue returns the typed value of a field, or the zero value.
func BuilderValue[T any](b *Builder, name string) T {
	var zero T
	v, ok := b.values[name]
	if !ok {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		return zero
	}
	return t
}

package ir

import "io"

// CustomPrinter emits the custom textual form of a registered operation.
// It receives the output sink after the optional `%id = ` prefix has
// already been written.
type CustomPrinter func(w io.Writer, op *Operation)

// OpRegistry maps operation names to custom printers. A nil registry is
// valid and matches nothing; every operation then uses the generic
// verbose form.
type OpRegistry struct {
	printers map[string]CustomPrinter
}

// NewOpRegistry builds an empty registry.
func NewOpRegistry() *OpRegistry {
	return &OpRegistry{printers: make(map[string]CustomPrinter)}
}

// Register installs a custom printer for an operation name. The last
// registration for a name wins.
func (r *OpRegistry) Register(name string, p CustomPrinter) {
	r.printers[name] = p
}

// Lookup returns the custom printer for a name, if any.
func (r *OpRegistry) Lookup(name string) (CustomPrinter, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.printers[name]
	return p, ok
}

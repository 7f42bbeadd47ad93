// Package ir defines the lattice intermediate representation and its
// textual printer.
//
// A module is an ordered list of functions. A function body comes in two
// shapes: a control-flow graph of basic blocks, or a nested tree of
// structured statements. The printer treats both through one shared
// core; see print.go.
package ir

// Module is an ordered sequence of functions.
type Module struct {
	Funcs []*Func
}

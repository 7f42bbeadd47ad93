package ir

import "lattice/internal/types"

// FuncKind enumerates function body shapes.
type FuncKind uint8

const (
	// FuncExt is a declaration: signature only, no body.
	FuncExt FuncKind = iota
	// FuncCFG is a function made of basic blocks.
	FuncCFG
	// FuncML is a function made of nested structured statements.
	FuncML
)

// Func is a function in a module. Type is the function's signature (a
// KindFunction TypeID). Blocks is populated for FuncCFG, Body for
// FuncML; both stay empty for FuncExt.
type Func struct {
	Kind FuncKind
	Name string
	Type types.TypeID

	Blocks []*Block
	Body   []Stmt
}

package ir

import "lattice/internal/types"

// Block is a basic block: ordered arguments, ordered operations and one
// terminator.
type Block struct {
	Args []*Value
	Ops  []*Operation
	Term Terminator
}

// AddArg appends a block argument of the given type and returns it.
func (b *Block) AddArg(ty types.TypeID) *Value {
	arg := &Value{Kind: ValueBlockArg, Type: ty, Block: b}
	b.Args = append(b.Args, arg)
	return arg
}

// Terminated reports whether the block carries a terminator.
func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// TermKind enumerates terminator kinds.
type TermKind uint8

const (
	// TermNone marks a block that has not been terminated yet.
	TermNone TermKind = iota
	// TermBranch transfers control to another block.
	TermBranch
	// TermReturn leaves the function.
	TermReturn
)

// Terminator ends a basic block.
type Terminator struct {
	Kind TermKind

	Branch BranchTerm
	Return ReturnTerm
}

// BranchTerm is an unconditional branch with block arguments.
type BranchTerm struct {
	Target   *Block
	Operands []*Value
}

// ReturnTerm returns zero or more values from the function.
type ReturnTerm struct {
	Operands []*Value
}

package ir

import "lattice/internal/types"

// ValueKind enumerates value-producing entities.
type ValueKind uint8

const (
	// ValueBlockArg is an argument of a basic block.
	ValueBlockArg ValueKind = iota
	// ValueResult is a result of an operation. All results of one
	// operation share a single printed id; individual results are
	// addressed with a #index suffix.
	ValueResult
	// ValueInduction is the induction variable of a for statement.
	ValueInduction
)

// Value is an identity-bearing SSA value. Identity is pointer identity;
// the printer's numbering tables key on *Value.
type Value struct {
	Kind ValueKind
	Type types.TypeID

	// Block owns the value for ValueBlockArg.
	Block *Block

	// Op owns the value for ValueResult; Index is the result position.
	Op    *Operation
	Index int

	// For owns the value for ValueInduction.
	For *ForStmt
}

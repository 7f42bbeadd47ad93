package ir

import (
	"lattice/internal/affine"
	"lattice/internal/types"
)

// StmtKind enumerates structured statement kinds.
type StmtKind uint8

const (
	// StmtOp is a plain operation statement.
	StmtOp StmtKind = iota
	// StmtFor is a bounded iteration statement.
	StmtFor
	// StmtIf is a conditional statement.
	StmtIf
)

// Stmt is a node of a structured function body.
type Stmt struct {
	Kind StmtKind

	Op  *Operation
	For *ForStmt
	If  *IfStmt
}

// OpStmt wraps an operation into a statement.
func OpStmt(op *Operation) Stmt {
	return Stmt{Kind: StmtOp, Op: op}
}

// ForStmt is a bounded loop. Lower and Upper are affine bound
// expressions, Step is a constant. IV is the loop induction variable; it
// participates in value numbering like any other value.
type ForStmt struct {
	Lower *affine.Expr
	Upper *affine.Expr
	Step  int64

	IV   *Value
	Body []Stmt
}

// NewForStmt builds a loop and materializes its induction variable with
// the given type (conventionally the affine integer type).
func NewForStmt(lower, upper *affine.Expr, step int64, ivType types.TypeID) *ForStmt {
	st := &ForStmt{Lower: lower, Upper: upper, Step: step}
	st.IV = &Value{Kind: ValueInduction, Type: ivType, For: st}
	return st
}

// IfStmt is a conditional with a then body and an optional else body.
// The condition expression is not part of the serialized form.
type IfStmt struct {
	Then []Stmt
	Else []Stmt
}

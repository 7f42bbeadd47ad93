package affine

// ExprKind enumerates affine expression node kinds.
type ExprKind uint8

const (
	// ExprDim is a reference to a dimension identifier (d0, d1, ...).
	ExprDim ExprKind = iota
	// ExprSymbol is a reference to a symbol identifier (s0, s1, ...).
	ExprSymbol
	// ExprConstant is an integer constant.
	ExprConstant
	// ExprAdd is a binary addition.
	ExprAdd
	// ExprMul is a binary multiplication.
	ExprMul
	// ExprFloorDiv is a binary floor division.
	ExprFloorDiv
	// ExprCeilDiv is a binary ceiling division.
	ExprCeilDiv
	// ExprMod is a binary modulo.
	ExprMod
)

// Expr is a node of an affine index expression.
//
// Nodes are immutable and shared by pointer: the same subtree may be
// reachable from several parents, so consumers that need to deduplicate
// must key on pointer identity, not structure.
type Expr struct {
	Kind ExprKind

	// Position of the dimension or symbol for ExprDim/ExprSymbol.
	Position uint32

	// Value of the constant for ExprConstant.
	Value int64

	// Operands for binary kinds.
	LHS *Expr
	RHS *Expr
}

// IsBinary reports whether the node is one of the binary operator kinds.
func (e *Expr) IsBinary() bool {
	switch e.Kind {
	case ExprAdd, ExprMul, ExprFloorDiv, ExprCeilDiv, ExprMod:
		return true
	case ExprDim, ExprSymbol, ExprConstant:
		return false
	default:
		return false
	}
}

// Dim builds a dimension reference.
func Dim(position uint32) *Expr {
	return &Expr{Kind: ExprDim, Position: position}
}

// Symbol builds a symbol reference.
func Symbol(position uint32) *Expr {
	return &Expr{Kind: ExprSymbol, Position: position}
}

// Constant builds an integer constant.
func Constant(value int64) *Expr {
	return &Expr{Kind: ExprConstant, Value: value}
}

// Add builds lhs + rhs.
func Add(lhs, rhs *Expr) *Expr {
	return &Expr{Kind: ExprAdd, LHS: lhs, RHS: rhs}
}

// Mul builds lhs * rhs.
func Mul(lhs, rhs *Expr) *Expr {
	return &Expr{Kind: ExprMul, LHS: lhs, RHS: rhs}
}

// FloorDiv builds lhs floordiv rhs.
func FloorDiv(lhs, rhs *Expr) *Expr {
	return &Expr{Kind: ExprFloorDiv, LHS: lhs, RHS: rhs}
}

// CeilDiv builds lhs ceildiv rhs.
func CeilDiv(lhs, rhs *Expr) *Expr {
	return &Expr{Kind: ExprCeilDiv, LHS: lhs, RHS: rhs}
}

// Mod builds lhs mod rhs.
func Mod(lhs, rhs *Expr) *Expr {
	return &Expr{Kind: ExprMod, LHS: lhs, RHS: rhs}
}

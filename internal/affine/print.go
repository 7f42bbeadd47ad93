package affine

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the expression to w using the canonical textual form.
//
// Binary operators other than addition are always fully parenthesized.
// Addition gets two sugar rewrites, each looking exactly one level into
// the right operand: `x + (y * -c)` prints as `(x - (y * c))` and
// `x + -c` prints as `(x - c)`.
func (e *Expr) Print(w io.Writer) {
	if e == nil {
		fmt.Fprint(w, "<expr?>")
		return
	}
	switch e.Kind {
	case ExprSymbol:
		fmt.Fprintf(w, "s%d", e.Position)
	case ExprDim:
		fmt.Fprintf(w, "d%d", e.Position)
	case ExprConstant:
		fmt.Fprintf(w, "%d", e.Value)
	case ExprAdd:
		e.printAdd(w)
	case ExprMul, ExprFloorDiv, ExprCeilDiv, ExprMod:
		fmt.Fprint(w, "(")
		e.LHS.Print(w)
		fmt.Fprint(w, binaryOpText(e.Kind))
		e.RHS.Print(w)
		fmt.Fprint(w, ")")
	default:
		fmt.Fprint(w, "<expr?>")
	}
}

func binaryOpText(kind ExprKind) string {
	switch kind {
	case ExprMul:
		return " * "
	case ExprFloorDiv:
		return " floordiv "
	case ExprCeilDiv:
		return " ceildiv "
	case ExprMod:
		return " mod "
	case ExprAdd:
		return " + "
	case ExprDim, ExprSymbol, ExprConstant:
		return " <?> "
	default:
		return " <?> "
	}
}

func (e *Expr) printAdd(w io.Writer) {
	fmt.Fprint(w, "(")
	e.LHS.Print(w)

	// Addition to a product with a negative constant operand prints as a
	// subtraction. Only the immediate right operand is inspected.
	if rhs := e.RHS; rhs != nil && rhs.Kind == ExprMul {
		if rrhs := rhs.RHS; rrhs != nil && rrhs.Kind == ExprConstant && rrhs.Value < 0 {
			fmt.Fprint(w, " - (")
			rhs.LHS.Print(w)
			fmt.Fprintf(w, " * %d))", -rrhs.Value)
			return
		}
	}

	// Addition to a negative constant prints as a subtraction.
	if rhs := e.RHS; rhs != nil && rhs.Kind == ExprConstant && rhs.Value < 0 {
		fmt.Fprintf(w, " - %d)", -rhs.Value)
		return
	}

	fmt.Fprint(w, " + ")
	e.RHS.Print(w)
	fmt.Fprint(w, ")")
}

// String returns the canonical textual form of the expression.
func (e *Expr) String() string {
	var sb strings.Builder
	e.Print(&sb)
	return sb.String()
}

// Print writes the map to w: the parenthesized dimension list, the
// bracketed symbol list when symbols are present, the result tuple, and
// the size clause when the map is bounded.
func (m *Map) Print(w io.Writer) {
	if m == nil {
		fmt.Fprint(w, "<map?>")
		return
	}
	if len(m.Results) == 0 {
		panic("affine: map must have at least one result")
	}

	fmt.Fprint(w, "(")
	for i := uint32(0); i < m.NumDims; i++ {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, "d%d", i)
	}
	fmt.Fprint(w, ")")

	if m.NumSymbols >= 1 {
		fmt.Fprint(w, " [")
		for i := uint32(0); i < m.NumSymbols; i++ {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprintf(w, "s%d", i)
		}
		fmt.Fprint(w, "]")
	}

	fmt.Fprint(w, " -> (")
	for i, expr := range m.Results {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		expr.Print(w)
	}
	fmt.Fprint(w, ")")

	if !m.Bounded() {
		return
	}

	fmt.Fprint(w, " size (")
	for i, expr := range m.RangeSizes {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		expr.Print(w)
	}
	fmt.Fprint(w, ")")
}

// String returns the canonical textual form of the map.
func (m *Map) String() string {
	var sb strings.Builder
	m.Print(&sb)
	return sb.String()
}

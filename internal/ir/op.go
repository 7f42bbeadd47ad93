package ir

import "lattice/internal/types"

// Operation is a generic IR operation: a name, operand values, an
// ordered attribute list and zero or more result values. The operation
// owns its result values; all of them resolve to one printed id.
type Operation struct {
	Name     string
	Operands []*Value
	Attrs    []NamedAttr
	Results  []*Value
}

// NewOperation builds an operation and materializes its result values.
func NewOperation(name string, operands []*Value, resultTypes []types.TypeID, attrs []NamedAttr) *Operation {
	op := &Operation{
		Name:     name,
		Operands: operands,
		Attrs:    attrs,
	}
	for i, ty := range resultTypes {
		op.Results = append(op.Results, &Value{
			Kind:  ValueResult,
			Type:  ty,
			Op:    op,
			Index: i,
		})
	}
	return op
}

// Result returns the i-th result value, or nil when out of range.
func (op *Operation) Result(i int) *Value {
	if op == nil || i < 0 || i >= len(op.Results) {
		return nil
	}
	return op.Results[i]
}

package ir

import (
	"lattice/internal/affine"
	"lattice/internal/types"
)

// mapTable assigns module-scoped ids to affine maps in first-encounter
// order. Keys are map pointers: two structurally equal maps built
// separately stay distinct entries.
type mapTable struct {
	ids  map[*affine.Map]int
	next int
}

func newMapTable() *mapTable {
	return &mapTable{ids: make(map[*affine.Map]int)}
}

// id returns the assigned id of a map, if any.
func (t *mapTable) id(m *affine.Map) (int, bool) {
	if t == nil {
		return 0, false
	}
	id, ok := t.ids[m]
	return id, ok
}

func (t *mapTable) record(m *affine.Map) {
	if m == nil {
		return
	}
	if _, ok := t.ids[m]; !ok {
		t.ids[m] = t.next
		t.next++
	}
}

// sorted returns (map, id) pairs ordered by assigned id. Hoisted
// definitions are always emitted in this order, never in the table's
// native iteration order.
func (t *mapTable) sorted() []*affine.Map {
	out := make([]*affine.Map, t.next)
	for m, id := range t.ids {
		out[id] = m
	}
	return out
}

// scanModule discovers every affine map reachable from the module:
// each function's signature type, and for CFG functions each
// operation's attribute list. Structured-function bodies are not
// traversed; maps used only inside a statement tree print inline.
func (t *mapTable) scanModule(m *Module, typesIn *types.Interner) {
	if m == nil || typesIn == nil {
		return
	}
	for _, f := range m.Funcs {
		t.scanFunc(f, typesIn)
	}
}

func (t *mapTable) scanFunc(f *Func, typesIn *types.Interner) {
	if f == nil {
		return
	}
	t.scanType(f.Type, typesIn)

	switch f.Kind {
	case FuncExt, FuncML:
	case FuncCFG:
		for _, b := range f.Blocks {
			if b == nil {
				continue
			}
			for _, op := range b.Ops {
				t.scanOperation(op)
			}
		}
	}
}

func (t *mapTable) scanType(id types.TypeID, typesIn *types.Interner) {
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return
	}
	switch tt.Kind {
	case types.KindFunction:
		info, ok := typesIn.Fn(id)
		if !ok {
			return
		}
		for _, in := range info.Inputs {
			t.scanType(in, typesIn)
		}
		for _, res := range info.Results {
			t.scanType(res, typesIn)
		}
	case types.KindVector, types.KindTensor, types.KindUnrankedTensor:
		shape, ok := typesIn.Shape(id)
		if !ok {
			return
		}
		t.scanType(shape.Elem, typesIn)
	case types.KindMemRef:
		shape, ok := typesIn.Shape(id)
		if !ok {
			return
		}
		for _, m := range shape.Maps {
			t.record(m)
		}
		t.scanType(shape.Elem, typesIn)
	case types.KindInvalid, types.KindAffineInt, types.KindBF16, types.KindF16,
		types.KindF32, types.KindF64, types.KindInteger:
	}
}

func (t *mapTable) scanOperation(op *Operation) {
	if op == nil {
		return
	}
	for i := range op.Attrs {
		t.scanAttr(&op.Attrs[i].Value)
	}
}

func (t *mapTable) scanAttr(a *Attr) {
	switch a.Kind {
	case AttrAffineMap:
		t.record(a.Map)
	case AttrArray:
		for i := range a.Elems {
			t.scanAttr(&a.Elems[i])
		}
	case AttrBool, AttrInt, AttrFloat, AttrStr:
	}
}

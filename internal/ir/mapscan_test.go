package ir_test

import (
	"strings"
	"testing"

	"lattice/internal/affine"
	"lattice/internal/ir"
	"lattice/internal/types"
)

func extFunc(in *types.Interner, name string, inputs, results []types.TypeID) *ir.Func {
	return &ir.Func{Kind: ir.FuncExt, Name: name, Type: in.Function(inputs, results)}
}

// One shared map used from two signatures is hoisted once and both use
// sites reference the same id.
func TestHoistingSharedMap(t *testing.T) {
	in := types.NewInterner()
	f32 := in.Builtins().F32

	shared := affine.NewMap(1, 0, []*affine.Expr{affine.Dim(0)})
	a := in.MemRef([]int64{4}, f32, []*affine.Map{shared}, 0)
	b := in.MemRef([]int64{8}, f32, []*affine.Map{shared}, 0)

	m := &ir.Module{Funcs: []*ir.Func{
		extFunc(in, "a", []types.TypeID{a}, nil),
		extFunc(in, "b", []types.TypeID{b}, nil),
	}}

	got := ir.ModuleString(m, in, ir.DumpOptions{})

	if n := strings.Count(got, "#map0 = "); n != 1 {
		t.Errorf("want exactly one #map0 definition, got %d:\n%s", n, got)
	}
	if strings.Contains(got, "#map1") {
		t.Errorf("shared map hoisted twice:\n%s", got)
	}
	if n := strings.Count(got, "memref<4xf32, #map0, 0>"); n != 1 {
		t.Errorf("use site in @a must reference #map0:\n%s", got)
	}
	if n := strings.Count(got, "memref<8xf32, #map0, 0>"); n != 1 {
		t.Errorf("use site in @b must reference #map0:\n%s", got)
	}
}

// Structurally equal maps built separately are distinct entries: the
// table keys on identity, not structure.
func TestHoistingKeysOnIdentity(t *testing.T) {
	in := types.NewInterner()
	f32 := in.Builtins().F32

	first := affine.NewMap(1, 0, []*affine.Expr{affine.Dim(0)})
	second := affine.NewMap(1, 0, []*affine.Expr{affine.Dim(0)})

	m := &ir.Module{Funcs: []*ir.Func{
		extFunc(in, "a", []types.TypeID{in.MemRef([]int64{4}, f32, []*affine.Map{first}, 0)}, nil),
		extFunc(in, "b", []types.TypeID{in.MemRef([]int64{4}, f32, []*affine.Map{second}, 0)}, nil),
	}}

	got := ir.ModuleString(m, in, ir.DumpOptions{})

	if !strings.Contains(got, "#map0 = (d0) -> (d0)") ||
		!strings.Contains(got, "#map1 = (d0) -> (d0)") {
		t.Errorf("expected two hoisted definitions for two distinct maps:\n%s", got)
	}
}

// Ids are assigned in first-encounter order during the scan over
// functions in module order, and definitions are emitted sorted by id.
func TestHoistingFirstEncounterOrder(t *testing.T) {
	in := types.NewInterner()
	f32 := in.Builtins().F32

	early := affine.NewMap(1, 0, []*affine.Expr{affine.Add(affine.Dim(0), affine.Constant(1))})
	late := affine.NewMap(2, 0, []*affine.Expr{affine.Dim(1)})

	m := &ir.Module{Funcs: []*ir.Func{
		extFunc(in, "a", []types.TypeID{in.MemRef([]int64{4}, f32, []*affine.Map{early}, 0)}, nil),
		extFunc(in, "b", []types.TypeID{in.MemRef([]int64{4}, f32, []*affine.Map{late}, 0)}, nil),
	}}

	got := ir.ModuleString(m, in, ir.DumpOptions{})

	def0 := strings.Index(got, "#map0 = (d0) -> ((d0 + 1))")
	def1 := strings.Index(got, "#map1 = (d0, d1) -> (d1)")
	if def0 == -1 || def1 == -1 {
		t.Fatalf("missing hoisted definitions:\n%s", got)
	}
	if def0 > def1 {
		t.Errorf("definitions not emitted in id order:\n%s", got)
	}
}

// Map-valued attributes on CFG operations are discovered, including
// through nested array attributes.
func TestHoistingScansCFGAttributes(t *testing.T) {
	in := types.NewInterner()

	direct := affine.NewMap(1, 0, []*affine.Expr{affine.Dim(0)})
	nested := affine.NewMap(1, 1, []*affine.Expr{affine.Symbol(0)})

	bb := &ir.Block{}
	bb.Ops = append(bb.Ops, ir.NewOperation("annotated", nil, nil, []ir.NamedAttr{
		{Name: "layout", Value: ir.AffineMapAttr(direct)},
		{Name: "extra", Value: ir.ArrayAttr(ir.IntAttr(1), ir.ArrayAttr(ir.AffineMapAttr(nested)))},
	}))
	bb.Term = ir.Terminator{Kind: ir.TermReturn}

	m := &ir.Module{Funcs: []*ir.Func{{
		Kind:   ir.FuncCFG,
		Name:   "f",
		Type:   in.Function(nil, nil),
		Blocks: []*ir.Block{bb},
	}}}

	got := ir.ModuleString(m, in, ir.DumpOptions{})

	if !strings.Contains(got, "#map0 = (d0) -> (d0)") {
		t.Errorf("direct map attribute not hoisted:\n%s", got)
	}
	if !strings.Contains(got, "#map1 = (d0) [s0] -> (s0)") {
		t.Errorf("map inside nested array attribute not hoisted:\n%s", got)
	}
	if !strings.Contains(got, "layout: #map0") {
		t.Errorf("attribute use site must print the reference form:\n%s", got)
	}
}

// Structured-function bodies are not traversed by the collector: a map
// used only inside a statement tree is never hoisted and prints inline.
// This pins today's behavior; see the design notes before changing it.
func TestMLBodyMapsNotHoisted(t *testing.T) {
	in := types.NewInterner()

	inner := affine.NewMap(1, 0, []*affine.Expr{affine.Mul(affine.Dim(0), affine.Constant(2))})

	m := &ir.Module{Funcs: []*ir.Func{{
		Kind: ir.FuncML,
		Name: "f",
		Type: in.Function(nil, nil),
		Body: []ir.Stmt{
			ir.OpStmt(ir.NewOperation("annotated", nil, nil, []ir.NamedAttr{
				{Name: "layout", Value: ir.AffineMapAttr(inner)},
			})),
		},
	}}}

	got := ir.ModuleString(m, in, ir.DumpOptions{})

	if strings.Contains(got, "#map") {
		t.Errorf("ML-body map must not be hoisted:\n%s", got)
	}
	if !strings.Contains(got, "layout: (d0) -> ((d0 * 2))") {
		t.Errorf("ML-body map must print inline at the use site:\n%s", got)
	}
}

// A nil module or missing interner yields no table and no output, not an
// error.
func TestDumpNilInputs(t *testing.T) {
	var sb strings.Builder
	if err := ir.DumpModule(&sb, nil, types.NewInterner(), ir.DumpOptions{}); err != nil {
		t.Errorf("nil module: %v", err)
	}
	if err := ir.DumpModule(nil, &ir.Module{}, types.NewInterner(), ir.DumpOptions{}); err != nil {
		t.Errorf("nil writer: %v", err)
	}
	if sb.Len() != 0 {
		t.Errorf("unexpected output: %q", sb.String())
	}
}

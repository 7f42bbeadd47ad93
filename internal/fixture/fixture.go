// Package fixture builds a small corpus of representative IR modules.
// The CLI renders them for inspection and the driver tests use them as
// stable inputs; they exercise every printable construct at least once.
package fixture

import (
	"lattice/internal/affine"
	"lattice/internal/ir"
	"lattice/internal/types"
)

// Fixture is one named module plus the interner its types live in.
type Fixture struct {
	Name    string
	Module  *ir.Module
	TypesIn *types.Interner
}

// All builds the whole corpus. Every call builds fresh IR; fixtures
// share nothing, so concurrent rendering needs no locking.
func All() []Fixture {
	return []Fixture{
		Declarations(),
		ControlFlow(),
		Structured(),
	}
}

// ByName builds the fixture with the given name.
func ByName(name string) (Fixture, bool) {
	for _, f := range All() {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}

// Declarations covers extfunc signatures: scalars, tensors with unknown
// dims, memrefs with hoisted layout maps, multi-result signatures.
func Declarations() Fixture {
	in := types.NewInterner()
	f32 := in.Builtins().F32
	i8 := in.Integer(8)
	i32 := in.Integer(32)

	rowMajor := affine.NewMap(2, 0, []*affine.Expr{
		affine.Add(affine.Mul(affine.Dim(0), affine.Constant(128)), affine.Dim(1)),
	})
	tiled := affine.NewBoundedMap(2, 1,
		[]*affine.Expr{
			affine.FloorDiv(affine.Dim(0), affine.Constant(8)),
			affine.Mod(affine.Dim(1), affine.Constant(8)),
		},
		[]*affine.Expr{affine.Symbol(0), affine.Constant(8)},
	)

	buf := in.MemRef([]int64{128, 128}, f32, []*affine.Map{rowMajor}, 0)
	spill := in.MemRef([]int64{types.DynamicDim, 8}, f32, []*affine.Map{tiled}, 1)

	m := &ir.Module{Funcs: []*ir.Func{
		{Kind: ir.FuncExt, Name: "matmul", Type: in.Function(
			[]types.TypeID{buf, buf, buf}, nil)},
		{Kind: ir.FuncExt, Name: "quantize", Type: in.Function(
			[]types.TypeID{in.Tensor([]int64{2, types.DynamicDim, 4}, f32)},
			[]types.TypeID{in.Tensor([]int64{2, types.DynamicDim, 4}, i8)})},
		{Kind: ir.FuncExt, Name: "spill", Type: in.Function(
			[]types.TypeID{spill}, []types.TypeID{i32, f32})},
		{Kind: ir.FuncExt, Name: "rank_erased", Type: in.Function(
			[]types.TypeID{in.UnrankedTensor(f32)},
			[]types.TypeID{in.Vector([]int64{4}, f32)})},
	}}

	return Fixture{Name: "declarations", Module: m, TypesIn: in}
}

// ControlFlow covers a cfgfunc: block arguments, a multi-result
// operation, attributes (including a map attribute), a branch with
// operands and a multi-value return.
func ControlFlow() Fixture {
	in := types.NewInterner()
	f32 := in.Builtins().F32
	i1 := in.Integer(1)
	i32 := in.Integer(32)

	layout := affine.NewMap(1, 1, []*affine.Expr{
		affine.Add(affine.Dim(0), affine.Mul(affine.Symbol(0), affine.Constant(-1))),
	})

	entry := &ir.Block{}
	exit := &ir.Block{}

	x := entry.AddArg(i32)
	split := ir.NewOperation("split", []*ir.Value{x}, []types.TypeID{i32, f32},
		[]ir.NamedAttr{
			{Name: "signed", Value: ir.BoolAttr(true)},
			{Name: "layout", Value: ir.AffineMapAttr(layout)},
		})
	cmp := ir.NewOperation("cmp", []*ir.Value{split.Result(0)}, []types.TypeID{i1},
		[]ir.NamedAttr{{Name: "predicate", Value: ir.StringAttr("slt")}})
	entry.Ops = append(entry.Ops, split, cmp)
	entry.Term = ir.Terminator{Kind: ir.TermBranch, Branch: ir.BranchTerm{
		Target:   exit,
		Operands: []*ir.Value{split.Result(0), split.Result(1)},
	}}

	a := exit.AddArg(i32)
	b := exit.AddArg(f32)
	exit.Term = ir.Terminator{Kind: ir.TermReturn, Return: ir.ReturnTerm{
		Operands: []*ir.Value{a, b},
	}}

	m := &ir.Module{Funcs: []*ir.Func{{
		Kind:   ir.FuncCFG,
		Name:   "partition",
		Type:   in.Function([]types.TypeID{i32}, []types.TypeID{i32, f32}),
		Blocks: []*ir.Block{entry, exit},
	}}}

	return Fixture{Name: "control_flow", Module: m, TypesIn: in}
}

// Structured covers an mlfunc: nested loops with non-unit step, a
// conditional with both bodies, and operations referencing induction
// variables.
func Structured() Fixture {
	in := types.NewInterner()
	f32 := in.Builtins().F32
	affineInt := in.Builtins().AffineInt
	buf := in.MemRef([]int64{64, 64}, f32, nil, 0)

	alloc := ir.NewOperation("alloc", nil, []types.TypeID{buf}, nil)

	inner := ir.NewForStmt(affine.Constant(0), affine.Constant(64), 1, affineInt)
	outer := ir.NewForStmt(
		affine.Constant(0),
		affine.Add(affine.Symbol(0), affine.Constant(-1)),
		4,
		affineInt,
	)

	load := ir.NewOperation("load",
		[]*ir.Value{alloc.Result(0), outer.IV, inner.IV},
		[]types.TypeID{f32}, nil)
	inner.Body = []ir.Stmt{ir.OpStmt(load)}
	outer.Body = []ir.Stmt{{Kind: ir.StmtFor, For: inner}}

	guard := &ir.IfStmt{
		Then: []ir.Stmt{ir.OpStmt(ir.NewOperation("store",
			[]*ir.Value{load.Result(0), alloc.Result(0)}, nil,
			[]ir.NamedAttr{{Name: "aligned", Value: ir.BoolAttr(true)}}))},
		Else: []ir.Stmt{ir.OpStmt(ir.NewOperation("dealloc",
			[]*ir.Value{alloc.Result(0)}, nil, nil))},
	}

	m := &ir.Module{Funcs: []*ir.Func{{
		Kind: ir.FuncML,
		Name: "sweep",
		Type: in.Function(nil, nil),
		Body: []ir.Stmt{
			ir.OpStmt(alloc),
			{Kind: ir.StmtFor, For: outer},
			{Kind: ir.StmtIf, If: guard},
		},
	}}}

	return Fixture{Name: "structured", Module: m, TypesIn: in}
}

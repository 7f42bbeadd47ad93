package ir

import (
	"fmt"
	"io"
	"strings"

	"lattice/internal/affine"
	"lattice/internal/types"
)

// DumpOptions configures module dumping.
type DumpOptions struct {
	// Ops maps operation names to custom printers. Nil means every
	// operation uses the generic verbose form.
	Ops *OpRegistry
}

// DumpModule writes the canonical textual form of a module: hoisted
// affine-map definitions first (ordered by assigned id), then each
// function. Printing is best-effort and never fails on malformed or
// partially built IR; degraded spots show up as sentinel tokens in the
// output instead.
func DumpModule(w io.Writer, m *Module, typesIn *types.Interner, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}

	maps := newMapTable()
	maps.scanModule(m, typesIn)

	p := &modulePrinter{w: w, typesIn: typesIn, maps: maps, ops: opts.Ops}
	p.printModule(m)
	return nil
}

// ModuleString returns the canonical textual form of a module.
func ModuleString(m *Module, typesIn *types.Interner, opts DumpOptions) string {
	var sb strings.Builder
	_ = DumpModule(&sb, m, typesIn, opts)
	return sb.String()
}

// TypeString returns the standalone textual form of a type. Affine maps
// inside memrefs print inline because no module id table is active.
func TypeString(typesIn *types.Interner, id types.TypeID) string {
	var sb strings.Builder
	p := &modulePrinter{w: &sb, typesIn: typesIn, maps: newMapTable()}
	p.printType(id)
	return sb.String()
}

// AttrString returns the standalone textual form of an attribute.
func AttrString(typesIn *types.Interner, a Attr) string {
	var sb strings.Builder
	p := &modulePrinter{w: &sb, typesIn: typesIn, maps: newMapTable()}
	p.printAttr(a)
	return sb.String()
}

// invalidValueRef is printed in place of a value id that was never
// assigned. Numbering completeness is a precondition the printer
// tolerates violations of rather than enforces.
const invalidValueRef = "<value?>"

// indentWidth is the number of spaces per nesting level.
const indentWidth = 2

// modulePrinter holds the module-scoped printing state: the output
// sink, the type interner and the affine-map id table.
type modulePrinter struct {
	w       io.Writer
	typesIn *types.Interner
	maps    *mapTable
	ops     *OpRegistry
}

func (p *modulePrinter) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *modulePrinter) printModule(m *Module) {
	for id, am := range p.maps.sorted() {
		p.printf("#map%d = ", id)
		am.Print(p.w)
		p.printf("\n")
	}
	for _, f := range m.Funcs {
		p.printFunc(f)
	}
}

func (p *modulePrinter) printFunc(f *Func) {
	if f == nil {
		return
	}
	switch f.Kind {
	case FuncExt:
		p.printf("extfunc ")
		p.printSignature(f)
		p.printf("\n")
	case FuncCFG:
		newCFGPrinter(p, f).print()
	case FuncML:
		newMLPrinter(p, f).print()
	default:
		p.printf("<func?>\n")
	}
}

func (p *modulePrinter) printSignature(f *Func) {
	p.printf("@%s(", f.Name)
	info, ok := p.typesIn.Fn(f.Type)
	if !ok {
		p.printf(")")
		return
	}
	for i, in := range info.Inputs {
		if i > 0 {
			p.printf(", ")
		}
		p.printType(in)
	}
	p.printf(")")

	switch len(info.Results) {
	case 0:
	case 1:
		p.printf(" -> ")
		p.printType(info.Results[0])
	default:
		p.printf(" -> (")
		for i, res := range info.Results {
			if i > 0 {
				p.printf(", ")
			}
			p.printType(res)
		}
		p.printf(")")
	}
}

// printMapRef prints a map by id when the module table knows it, and
// inline otherwise. Detached printing (a type or attribute outside a
// module dump) always falls back to the inline form.
func (p *modulePrinter) printMapRef(m *affine.Map) {
	if id, ok := p.maps.id(m); ok {
		p.printf("#map%d", id)
		return
	}
	m.Print(p.w)
}

func (p *modulePrinter) printType(id types.TypeID) {
	if p.typesIn == nil {
		p.printf("type#%d", id)
		return
	}
	t, ok := p.typesIn.Lookup(id)
	if !ok {
		p.printf("type#%d", id)
		return
	}
	switch t.Kind {
	case types.KindAffineInt:
		p.printf("affineint")
	case types.KindBF16:
		p.printf("bf16")
	case types.KindF16:
		p.printf("f16")
	case types.KindF32:
		p.printf("f32")
	case types.KindF64:
		p.printf("f64")
	case types.KindInteger:
		p.printf("i%d", t.Width)
	case types.KindFunction:
		info, ok := p.typesIn.Fn(id)
		if !ok {
			p.printf("type#%d", id)
			return
		}
		p.printf("(")
		for i, in := range info.Inputs {
			if i > 0 {
				p.printf(", ")
			}
			p.printType(in)
		}
		p.printf(") -> ")
		if len(info.Results) == 1 {
			p.printType(info.Results[0])
		} else {
			p.printf("(")
			for i, res := range info.Results {
				if i > 0 {
					p.printf(", ")
				}
				p.printType(res)
			}
			p.printf(")")
		}
	case types.KindVector:
		shape, ok := p.typesIn.Shape(id)
		if !ok {
			p.printf("type#%d", id)
			return
		}
		p.printf("vector<")
		for _, dim := range shape.Dims {
			p.printf("%dx", dim)
		}
		p.printType(shape.Elem)
		p.printf(">")
	case types.KindTensor:
		shape, ok := p.typesIn.Shape(id)
		if !ok {
			p.printf("type#%d", id)
			return
		}
		p.printf("tensor<")
		p.printDims(shape.Dims)
		p.printType(shape.Elem)
		p.printf(">")
	case types.KindUnrankedTensor:
		shape, ok := p.typesIn.Shape(id)
		if !ok {
			p.printf("type#%d", id)
			return
		}
		p.printf("tensor<??")
		p.printType(shape.Elem)
		p.printf(">")
	case types.KindMemRef:
		shape, ok := p.typesIn.Shape(id)
		if !ok {
			p.printf("type#%d", id)
			return
		}
		p.printf("memref<")
		p.printDims(shape.Dims)
		p.printType(shape.Elem)
		for _, m := range shape.Maps {
			p.printf(", ")
			p.printMapRef(m)
		}
		p.printf(", %d>", shape.MemorySpace)
	case types.KindInvalid:
		p.printf("type#%d", id)
	default:
		p.printf("type#%d", id)
	}
}

// printDims writes each dimension followed by the `x` separator; an
// unknown dimension prints as `?`.
func (p *modulePrinter) printDims(dims []int64) {
	for _, dim := range dims {
		if dim < 0 {
			p.printf("?x")
		} else {
			p.printf("%dx", dim)
		}
	}
}

func (p *modulePrinter) printAttr(a Attr) {
	switch a.Kind {
	case AttrBool:
		if a.Bool {
			p.printf("true")
		} else {
			p.printf("false")
		}
	case AttrInt:
		if a.Int == nil {
			p.printf("<int?>")
			return
		}
		p.printf("%s", a.Int.String())
	case AttrFloat:
		// Not bit-exact; printed text may not round-trip.
		p.printf("%g", a.Float)
	case AttrStr:
		// The string body is not escaped; printed text may not
		// round-trip.
		p.printf("\"%s\"", a.Str)
	case AttrArray:
		p.printf("[")
		for i, elt := range a.Elems {
			if i > 0 {
				p.printf(", ")
			}
			p.printAttr(elt)
		}
		p.printf("]")
	case AttrAffineMap:
		p.printMapRef(a.Map)
	default:
		p.printf("<attr?>")
	}
}

// funcState carries per-function value numbering, shared by the CFG and
// ML body printers.
type funcState struct {
	*modulePrinter

	valueIDs map[*Value]int
	nextID   int
}

func newFuncState(p *modulePrinter) *funcState {
	return &funcState{
		modulePrinter: p,
		valueIDs:      make(map[*Value]int),
	}
}

// numberValue assigns the next id to a value. Numbering the same value
// twice is a programmer error, not a malformed-IR condition.
func (fs *funcState) numberValue(v *Value) {
	if _, ok := fs.valueIDs[v]; ok {
		panic("ir: value numbered twice")
	}
	fs.valueIDs[v] = fs.nextID
	fs.nextID++
}

// printValueRef prints a reference to a value. A reference to a result
// of a multi-result operation resolves through the operation's shared id
// and carries a #index suffix (index 0 included) unless suppressed for
// the definition position. An unnumbered value prints the sentinel.
func (fs *funcState) printValueRef(v *Value, suppressResultNo bool) {
	if v == nil {
		fs.printf(invalidValueRef)
		return
	}

	resultNo := -1
	lookup := v
	if v.Kind == ValueResult && v.Op != nil && len(v.Op.Results) != 1 {
		resultNo = v.Index
		lookup = v.Op.Results[0]
	}

	id, ok := fs.valueIDs[lookup]
	if !ok {
		fs.printf(invalidValueRef)
		return
	}

	fs.printf("%%%d", id)
	if resultNo != -1 && !suppressResultNo {
		fs.printf("#%d", resultNo)
	}
}

// printOperation emits one operation line at the given indentation. The
// routine is shared between the two body shapes: operation statements in
// a structured body and operations in a basic block print identically.
func (fs *funcState) printOperation(op *Operation, indent int) {
	fs.pad(indent)
	if op == nil {
		fs.printf("<op?>")
		return
	}

	if len(op.Results) > 0 {
		fs.printValueRef(op.Results[0], true)
		fs.printf(" = ")
	}

	if custom, ok := fs.ops.Lookup(op.Name); ok {
		custom(fs.w, op)
		return
	}

	fs.printf("\"%s\"(", op.Name)
	for i, operand := range op.Operands {
		if i > 0 {
			fs.printf(", ")
		}
		fs.printValueRef(operand, false)
	}
	fs.printf(")")

	if len(op.Attrs) > 0 {
		fs.printf("{")
		for i, attr := range op.Attrs {
			if i > 0 {
				fs.printf(", ")
			}
			fs.printf("%s: ", attr.Name)
			fs.printAttr(attr.Value)
		}
		fs.printf("}")
	}

	fs.printf(" : (")
	for i, operand := range op.Operands {
		if i > 0 {
			fs.printf(", ")
		}
		fs.printOperandType(operand)
	}
	fs.printf(") -> ")

	if len(op.Results) == 1 {
		fs.printOperandType(op.Results[0])
	} else {
		fs.printf("(")
		for i, res := range op.Results {
			if i > 0 {
				fs.printf(", ")
			}
			fs.printOperandType(res)
		}
		fs.printf(")")
	}
}

func (fs *funcState) printOperandType(v *Value) {
	if v == nil {
		fs.printf("<type?>")
		return
	}
	fs.printType(v.Type)
}

func (fs *funcState) pad(indent int) {
	for i := 0; i < indent; i++ {
		fs.printf(" ")
	}
}

// cfgPrinter prints a control-flow function. Construction is the
// numbering pass: blocks get ids 0..k-1 in block order, and each block's
// arguments then operations are numbered before any text is emitted, so
// forward references (a branch to a later block, a use before the
// textual definition) resolve.
type cfgPrinter struct {
	*funcState

	fn       *Func
	blockIDs map[*Block]int
}

func newCFGPrinter(p *modulePrinter, fn *Func) *cfgPrinter {
	cp := &cfgPrinter{
		funcState: newFuncState(p),
		fn:        fn,
		blockIDs:  make(map[*Block]int),
	}
	for i, b := range fn.Blocks {
		cp.blockIDs[b] = i
		cp.numberValuesInBlock(b)
	}
	return cp
}

// numberValuesInBlock numbers the block's arguments, then one id per
// operation that produces at least one result. Terminators do not
// define values.
func (cp *cfgPrinter) numberValuesInBlock(b *Block) {
	if b == nil {
		return
	}
	for _, arg := range b.Args {
		cp.numberValue(arg)
	}
	for _, op := range b.Ops {
		if op != nil && len(op.Results) > 0 {
			cp.numberValue(op.Results[0])
		}
	}
}

func (cp *cfgPrinter) print() {
	cp.printf("cfgfunc ")
	cp.printSignature(cp.fn)
	cp.printf(" {\n")
	for _, b := range cp.fn.Blocks {
		cp.printBlock(b)
	}
	cp.printf("}\n\n")
}

func (cp *cfgPrinter) printBlock(b *Block) {
	if b == nil {
		return
	}
	cp.printf("bb%d", cp.blockIDs[b])

	if len(b.Args) > 0 {
		cp.printf("(")
		for i, arg := range b.Args {
			if i > 0 {
				cp.printf(", ")
			}
			cp.printValueRef(arg, false)
			cp.printf(": ")
			cp.printOperandType(arg)
		}
		cp.printf(")")
	}
	cp.printf(":\n")

	for _, op := range b.Ops {
		cp.printOperation(op, indentWidth)
		cp.printf("\n")
	}

	cp.printTerminator(&b.Term)
	cp.printf("\n")
}

func (cp *cfgPrinter) printTerminator(term *Terminator) {
	switch term.Kind {
	case TermBranch:
		target, ok := cp.blockIDs[term.Branch.Target]
		if !ok {
			cp.printf("  br <block?>")
			return
		}
		cp.printf("  br bb%d", target)
		if len(term.Branch.Operands) > 0 {
			cp.printf("(")
			for i, operand := range term.Branch.Operands {
				if i > 0 {
					cp.printf(", ")
				}
				cp.printValueRef(operand, false)
			}
			cp.printf(") : ")
			for i, operand := range term.Branch.Operands {
				if i > 0 {
					cp.printf(", ")
				}
				cp.printOperandType(operand)
			}
		}
	case TermReturn:
		cp.printf("  return")
		if len(term.Return.Operands) > 0 {
			cp.printf(" ")
		}
		for i, operand := range term.Return.Operands {
			if i > 0 {
				cp.printf(", ")
			}
			cp.printValueRef(operand, false)
			cp.printf(" : ")
			cp.printOperandType(operand)
		}
	case TermNone:
		cp.printf("  <terminator?>")
	default:
		cp.printf("  <terminator?>")
	}
}

// mlPrinter prints a structured function: a recursive descent over the
// statement tree with an explicit indentation counter. Value numbering
// runs as a separate pre-pass over the whole tree, covering operation
// results and loop induction variables in statement order.
type mlPrinter struct {
	*funcState

	fn     *Func
	indent int
}

func newMLPrinter(p *modulePrinter, fn *Func) *mlPrinter {
	mp := &mlPrinter{funcState: newFuncState(p), fn: fn}
	mp.numberStmts(fn.Body)
	return mp
}

func (mp *mlPrinter) numberStmts(stmts []Stmt) {
	for i := range stmts {
		st := &stmts[i]
		switch st.Kind {
		case StmtOp:
			if st.Op != nil && len(st.Op.Results) > 0 {
				mp.numberValue(st.Op.Results[0])
			}
		case StmtFor:
			if st.For == nil {
				continue
			}
			if st.For.IV != nil {
				mp.numberValue(st.For.IV)
			}
			mp.numberStmts(st.For.Body)
		case StmtIf:
			if st.If == nil {
				continue
			}
			mp.numberStmts(st.If.Then)
			mp.numberStmts(st.If.Else)
		}
	}
}

func (mp *mlPrinter) print() {
	mp.printf("mlfunc ")
	mp.printSignature(mp.fn)
	mp.printf(" {\n")
	mp.printStmtBlock(mp.fn.Body)
	mp.printf("  return\n")
	mp.printf("}\n\n")
}

func (mp *mlPrinter) printStmtBlock(stmts []Stmt) {
	mp.indent += indentWidth
	for i := range stmts {
		mp.printStmt(&stmts[i])
		mp.printf("\n")
	}
	mp.indent -= indentWidth
}

func (mp *mlPrinter) printStmt(st *Stmt) {
	switch st.Kind {
	case StmtOp:
		mp.printOperation(st.Op, mp.indent)
	case StmtFor:
		mp.printFor(st.For)
	case StmtIf:
		mp.printIf(st.If)
	default:
		mp.pad(mp.indent)
		mp.printf("<stmt?>")
	}
}

func (mp *mlPrinter) printFor(st *ForStmt) {
	mp.pad(mp.indent)
	if st == nil {
		mp.printf("<stmt?>")
		return
	}
	mp.printf("for x = ")
	st.Lower.Print(mp.w)
	mp.printf(" to ")
	st.Upper.Print(mp.w)
	if st.Step != 1 {
		mp.printf(" step %d", st.Step)
	}
	mp.printf(" {\n")
	mp.printStmtBlock(st.Body)
	mp.pad(mp.indent)
	mp.printf("}")
}

func (mp *mlPrinter) printIf(st *IfStmt) {
	mp.pad(mp.indent)
	if st == nil {
		mp.printf("<stmt?>")
		return
	}
	// The condition expression is not part of the serialized form.
	mp.printf("if () {\n")
	mp.printStmtBlock(st.Then)
	mp.pad(mp.indent)
	mp.printf("}")
	if st.Else != nil {
		mp.printf(" else {\n")
		mp.printStmtBlock(st.Else)
		mp.pad(mp.indent)
		mp.printf("}")
	}
}

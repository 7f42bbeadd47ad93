package types

import (
	"fmt"

	"fortio.org/safecast"

	"lattice/internal/affine"
)

// Builtins stores TypeIDs for the scalar types every module uses.
type Builtins struct {
	Invalid   TypeID
	AffineInt TypeID
	BF16      TypeID
	F16       TypeID
	F32       TypeID
	F64       TypeID
}

// Interner issues stable TypeIDs. Scalar descriptors are deduplicated by
// structural key; composite descriptors always get a fresh ID.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	fns      []FnInfo
	shapes   []ShapeInfo
}

// NewInterner constructs an interner seeded with built-in scalars.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 32),
	}
	// reserve payload index 0 as the invalid sentinel
	in.fns = append(in.fns, FnInfo{})
	in.shapes = append(in.shapes, ShapeInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.AffineInt = in.intern(Type{Kind: KindAffineInt})
	in.builtins.BF16 = in.intern(Type{Kind: KindBF16})
	in.builtins.F16 = in.intern(Type{Kind: KindF16})
	in.builtins.F32 = in.intern(Type{Kind: KindF32})
	in.builtins.F64 = in.intern(Type{Kind: KindF64})
	return in
}

// Builtins returns TypeIDs for the built-in scalar types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Integer returns the TypeID of a sized integer with the given width.
func (in *Interner) Integer(width uint32) TypeID {
	return in.intern(Type{Kind: KindInteger, Width: width})
}

// Function builds a function type from input and result lists.
func (in *Interner) Function(inputs, results []TypeID) TypeID {
	payload := in.addFn(FnInfo{Inputs: inputs, Results: results})
	return in.internRaw(Type{Kind: KindFunction, Payload: payload})
}

// Vector builds a fixed-shape vector type.
func (in *Interner) Vector(dims []int64, elem TypeID) TypeID {
	payload := in.addShape(ShapeInfo{Dims: dims, Elem: elem})
	return in.internRaw(Type{Kind: KindVector, Payload: payload})
}

// Tensor builds a ranked tensor type; DynamicDim marks unknown dims.
func (in *Interner) Tensor(dims []int64, elem TypeID) TypeID {
	payload := in.addShape(ShapeInfo{Dims: dims, Elem: elem})
	return in.internRaw(Type{Kind: KindTensor, Payload: payload})
}

// UnrankedTensor builds a tensor type of unknown rank.
func (in *Interner) UnrankedTensor(elem TypeID) TypeID {
	payload := in.addShape(ShapeInfo{Elem: elem})
	return in.internRaw(Type{Kind: KindUnrankedTensor, Payload: payload})
}

// MemRef builds a memory-reference type. The maps keep their pointer
// identity; the printer's hoisting scan depends on it.
func (in *Interner) MemRef(dims []int64, elem TypeID, maps []*affine.Map, memorySpace uint32) TypeID {
	payload := in.addShape(ShapeInfo{
		Dims:        dims,
		Elem:        elem,
		Maps:        maps,
		MemorySpace: memorySpace,
	})
	return in.internRaw(Type{Kind: KindMemRef, Payload: payload})
}

// intern deduplicates scalar descriptors through the structural key.
func (in *Interner) intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey{Kind: t.Kind, Width: t.Width}
	if id, ok := in.index[key]; ok {
		return id
	}
	id := in.internRaw(t)
	in.index[key] = id
	return id
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	return id
}

func (in *Interner) addFn(info FnInfo) uint32 {
	payload, err := safecast.Conv[uint32](len(in.fns))
	if err != nil {
		panic(fmt.Errorf("len(fns) overflow: %w", err))
	}
	in.fns = append(in.fns, info)
	return payload
}

func (in *Interner) addShape(info ShapeInfo) uint32 {
	payload, err := safecast.Conv[uint32](len(in.shapes))
	if err != nil {
		panic(fmt.Errorf("len(shapes) overflow: %w", err))
	}
	in.shapes = append(in.shapes, info)
	return payload
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Fn returns the payload of a function type.
func (in *Interner) Fn(id TypeID) (FnInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction || t.Payload == 0 || int(t.Payload) >= len(in.fns) {
		return FnInfo{}, false
	}
	return in.fns[t.Payload], true
}

// Shape returns the payload of a vector, tensor or memref type.
func (in *Interner) Shape(id TypeID) (ShapeInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok {
		return ShapeInfo{}, false
	}
	switch t.Kind {
	case KindVector, KindTensor, KindUnrankedTensor, KindMemRef:
	default:
		return ShapeInfo{}, false
	}
	if t.Payload == 0 || int(t.Payload) >= len(in.shapes) {
		return ShapeInfo{}, false
	}
	return in.shapes[t.Payload], true
}

type typeKey struct {
	Kind  Kind
	Width uint32
}

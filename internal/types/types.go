// Package types provides the type system for the lattice IR.
//
// Types are held behind stable TypeID handles issued by an Interner.
// Scalar descriptors are deduplicated; composite descriptors (function,
// vector, tensor, memref) keep their payload in side tables and are not
// uniqued, so the affine maps referenced by a memref keep their pointer
// identity.
package types

import "lattice/internal/affine"

// TypeID identifies a type within an Interner.
type TypeID uint32

// NoTypeID is the invalid type sentinel (zero is reserved).
const NoTypeID TypeID = 0

// IsValid returns true if the ID is valid (non-zero).
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates type kinds.
type Kind uint8

const (
	// KindInvalid is the reserved invalid kind.
	KindInvalid Kind = iota
	// KindAffineInt is the abstract unsized index integer.
	KindAffineInt
	// KindBF16 is the bfloat16 floating-point type.
	KindBF16
	// KindF16 is the IEEE half-precision floating-point type.
	KindF16
	// KindF32 is the IEEE single-precision floating-point type.
	KindF32
	// KindF64 is the IEEE double-precision floating-point type.
	KindF64
	// KindInteger is a sized integer (i1, i8, i32, ...).
	KindInteger
	// KindFunction is a function type with input and result lists.
	KindFunction
	// KindVector is a fixed-shape vector.
	KindVector
	// KindTensor is a ranked tensor; a dimension may be DynamicDim.
	KindTensor
	// KindUnrankedTensor is a tensor of unknown rank.
	KindUnrankedTensor
	// KindMemRef is a memory reference: shape, element type, layout
	// maps and a memory-space tag.
	KindMemRef
)

// DynamicDim marks an unknown tensor or memref dimension.
const DynamicDim int64 = -1

// Type is a compact type descriptor. Composite kinds keep their data in
// the interner's side tables, referenced through Payload.
type Type struct {
	Kind Kind

	// Width is the bit width for KindInteger.
	Width uint32

	// Payload indexes a side table for composite kinds (zero is the
	// invalid sentinel).
	Payload uint32
}

// FnInfo is the payload of a function type.
type FnInfo struct {
	Inputs  []TypeID
	Results []TypeID
}

// ShapeInfo is the payload of vector, tensor and memref types. Vectors
// and tensors leave Maps and MemorySpace empty; unranked tensors leave
// Dims nil.
type ShapeInfo struct {
	Dims        []int64
	Elem        TypeID
	Maps        []*affine.Map
	MemorySpace uint32
}

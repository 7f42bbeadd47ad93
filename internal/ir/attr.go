package ir

import (
	"math/big"

	"lattice/internal/affine"
)

// AttrKind enumerates attribute kinds.
type AttrKind uint8

const (
	// AttrBool is a boolean attribute.
	AttrBool AttrKind = iota
	// AttrInt is an arbitrary-precision integer attribute.
	AttrInt
	// AttrFloat is a floating-point attribute.
	AttrFloat
	// AttrStr is a string attribute.
	AttrStr
	// AttrArray is an ordered, possibly nested, attribute list.
	AttrArray
	// AttrAffineMap is an affine-map-valued attribute.
	AttrAffineMap
)

// Attr is an attribute value.
type Attr struct {
	Kind AttrKind

	Bool  bool
	Int   *big.Int
	Float float64
	Str   string
	Elems []Attr
	Map   *affine.Map
}

// NamedAttr is one entry of an operation's ordered attribute list.
type NamedAttr struct {
	Name  string
	Value Attr
}

// BoolAttr builds a boolean attribute.
func BoolAttr(v bool) Attr {
	return Attr{Kind: AttrBool, Bool: v}
}

// IntAttr builds an integer attribute from an int64.
func IntAttr(v int64) Attr {
	return Attr{Kind: AttrInt, Int: big.NewInt(v)}
}

// BigIntAttr builds an integer attribute from an arbitrary-precision
// value.
func BigIntAttr(v *big.Int) Attr {
	return Attr{Kind: AttrInt, Int: v}
}

// FloatAttr builds a floating-point attribute.
func FloatAttr(v float64) Attr {
	return Attr{Kind: AttrFloat, Float: v}
}

// StringAttr builds a string attribute.
func StringAttr(v string) Attr {
	return Attr{Kind: AttrStr, Str: v}
}

// ArrayAttr builds an array attribute.
func ArrayAttr(elems ...Attr) Attr {
	return Attr{Kind: AttrArray, Elems: elems}
}

// AffineMapAttr builds a map-valued attribute.
func AffineMapAttr(m *affine.Map) Attr {
	return Attr{Kind: AttrAffineMap, Map: m}
}

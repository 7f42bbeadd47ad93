package affine

// Map is an affine map: a function from dimension and symbol identifiers
// to a tuple of result expressions, optionally carrying range sizes.
//
// Maps are shared by pointer throughout the IR. Two structurally equal
// maps built separately are distinct maps; anything that deduplicates
// (the module printer's hoisting scan in particular) keys on identity.
type Map struct {
	NumDims    uint32
	NumSymbols uint32

	// Results holds the map's result expressions. A well-formed map has
	// at least one result.
	Results []*Expr

	// RangeSizes holds the bound sizes. The map is bounded iff this is
	// non-empty; an unbounded map has a nil slice here.
	RangeSizes []*Expr
}

// NewMap builds an unbounded affine map.
func NewMap(numDims, numSymbols uint32, results []*Expr) *Map {
	return &Map{NumDims: numDims, NumSymbols: numSymbols, Results: results}
}

// NewBoundedMap builds a bounded affine map with the given range sizes.
func NewBoundedMap(numDims, numSymbols uint32, results, rangeSizes []*Expr) *Map {
	return &Map{
		NumDims:    numDims,
		NumSymbols: numSymbols,
		Results:    results,
		RangeSizes: rangeSizes,
	}
}

// Bounded reports whether the map carries range sizes.
func (m *Map) Bounded() bool {
	return len(m.RangeSizes) > 0
}

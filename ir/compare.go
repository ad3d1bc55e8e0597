package ir

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Object-shaped nodes compare by their key sets and values independent of
// insertion order, so an array and an object with the same index keys are
// equal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType, ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array|Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case ArrayType, ObjectType:
		return 5
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	fa, errA := strconv.ParseFloat(a.Number, 64)
	fb, errB := strconv.ParseFloat(b.Number, 64)
	if errA == nil && errB == nil && fa != fb {
		return cmp.Compare(fa, fb)
	}
	if errA == nil && errB == nil {
		return 0
	}
	return strings.Compare(a.Number, b.Number)
}

// CompareKeys orders index keys numerically before all other keys, which
// sort lexically.
func CompareKeys(a, b string) int {
	ia, ib := IsIndexKey(a), IsIndexKey(b)
	switch {
	case ia && ib:
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case ia:
		return -1
	case ib:
		return 1
	}
	return strings.Compare(a, b)
}

func sortedKeys(n *Node) []string {
	keys := slices.Clone(n.Fields)
	slices.SortFunc(keys, CompareKeys)
	return keys
}

func compareObjects(a, b *Node) int {
	keysA := sortedKeys(a)
	keysB := sortedKeys(b)
	minLen := min(len(keysA), len(keysB))

	for i := 0; i < minLen; i++ {
		if c := CompareKeys(keysA[i], keysB[i]); c != 0 {
			return c
		}
		if c := Compare(Get(a, keysA[i]), Get(b, keysB[i])); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(keysA), len(keysB))
}

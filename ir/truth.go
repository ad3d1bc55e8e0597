package ir

import "strconv"

// Truth reports whether node is non-empty, non-zero and non-false.
func Truth(node *Node) bool {
	if node == nil {
		return false
	}
	switch node.Type {
	case ObjectType, ArrayType:
		return len(node.Fields) != 0
	case StringType:
		return node.String != ""
	case NumberType:
		f, err := strconv.ParseFloat(node.Number, 64)
		if err != nil {
			return node.Number != ""
		}
		return f != 0
	case BoolType:
		return node.Bool
	case NullType:
		return false
	default:
		panic("type")
	}
}

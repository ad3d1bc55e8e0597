package eval

import (
	"strconv"

	"github.com/signadot/tony-format/replica/ir"
)

// ToJSONAny converts node to the values encoding/json would produce for it,
// with numbers as int when they fit and float64 otherwise. Dense arrays
// become slices; all other object-shaped nodes become maps.
func ToJSONAny(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.ObjectType, ir.ArrayType:
		if node.IsDenseArray() {
			res := make([]any, len(node.Values))
			for i, elt := range node.Values {
				res[i] = ToJSONAny(elt)
			}
			return res
		}
		res := make(map[string]any, len(node.Fields))
		for i, field := range node.Fields {
			res[field] = ToJSONAny(node.Values[i])
		}
		return res
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if i, err := strconv.Atoi(node.Number); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(node.Number, 64); err == nil {
			return f
		}
		return node.Number
	case ir.BoolType:
		return node.Bool
	case ir.NullType:
		return nil
	default:
		panic("impossible production")
	}
}

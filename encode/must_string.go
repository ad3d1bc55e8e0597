package encode

import (
	"github.com/signadot/tony-format/replica/ir"
)

// String returns the canonical rendering of node: objects and arrays render
// as compact JSON in insertion order and scalars render as their bare value.
func String(node *ir.Node) string {
	if node.Type == ir.StringType {
		return node.String
	}
	return string(ir.AppendJSON(nil, node))
}

// JSON returns the compact JSON rendering of node.
func JSON(node *ir.Node) string {
	return string(ir.AppendJSON(nil, node))
}

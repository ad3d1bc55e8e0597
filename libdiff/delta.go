package libdiff

import (
	"fmt"

	"github.com/signadot/tony-format/replica/debug"
	"github.com/signadot/tony-format/replica/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// Delta returns the merge patch which, applied to from, gives to. A nil from
// or to stands for an absent value; a nil to gives a null delta. When either
// side is not an object the delta is to itself.
//
// Delta returns nil when from and to are equal.
func Delta(from, to *ir.Node) (*ir.Node, error) {
	if to == nil {
		if from == nil {
			return nil, nil
		}
		return ir.Null(), nil
	}
	if from != nil && ir.Equal(from, to) {
		return nil, nil
	}
	if !isObject(from) || !isObject(to) {
		return to.Clone(), nil
	}
	d, err := jsonpatch.CreateMergePatch(ir.AppendJSON(nil, from), ir.AppendJSON(nil, to))
	if err != nil {
		return nil, fmt.Errorf("could not create merge patch: %w", err)
	}
	if debug.Merge() {
		debug.Logf("delta %s -> %s: %s\n", debug.JSON{from}, debug.JSON{to}, d)
	}
	return ir.FromJSON(d)
}

// ApplyDelta applies the merge patch delta to doc, returning the patched
// value or nil if the patch deletes it. doc is not modified.
func ApplyDelta(doc, delta *ir.Node) (*ir.Node, error) {
	if delta == nil {
		if doc == nil {
			return nil, nil
		}
		return doc.Clone(), nil
	}
	if delta.Type == ir.NullType {
		return nil, nil
	}
	if !isObject(delta) {
		return delta.Clone(), nil
	}
	base := []byte("{}")
	if isObject(doc) {
		base = ir.AppendJSON(nil, doc)
	}
	d, err := jsonpatch.MergePatch(base, ir.AppendJSON(nil, delta))
	if err != nil {
		return nil, fmt.Errorf("could not apply merge patch: %w", err)
	}
	return ir.FromJSON(d)
}

// Equal reports whether a and b have the same JSON value, ignoring key order.
func Equal(a, b *ir.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return jsonpatch.Equal(ir.AppendJSON(nil, a), ir.AppendJSON(nil, b))
}

// isObject reports whether y serializes as a JSON object.
func isObject(y *ir.Node) bool {
	return y != nil && y.IsObjectShaped() && !y.IsDenseArray()
}

package replica

import (
	"github.com/signadot/tony-format/replica/debug"
	"github.com/signadot/tony-format/replica/ir"
)

// merge applies the direct children of payload to the object-shaped slot
// target. A scalar child over a scalar child is overwritten in place; any
// other child is installed wholesale, so nested objects in payload replace
// rather than merge into their counterparts. Keys absent from payload are
// left alone.
func (r *Replica) merge(target int, payload *ir.Node) {
	for i, key := range payload.Fields {
		pv := payload.Values[i]
		c := r.arena.child(target, key)
		if c != noSlot && r.arena.slots[c].typ.IsLeaf() && pv.IsLeaf() {
			if debug.Merge() {
				debug.Logf("merge overwrite %q at /%s with %s\n", key, r.arena.path(target), debug.JSON{pv})
			}
			r.arena.setScalar(c, pv)
			continue
		}
		if debug.Merge() {
			debug.Logf("merge install %q at /%s with %s\n", key, r.arena.path(target), debug.JSON{pv})
		}
		r.arena.attach(target, key, r.arena.install(pv))
	}
}

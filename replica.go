package replica

import (
	"fmt"
	"log/slog"

	"github.com/signadot/tony-format/replica/debug"
	"github.com/signadot/tony-format/replica/ir"
	"github.com/signadot/tony-format/replica/ir/kpath"
	"github.com/signadot/tony-format/replica/parse"
)

// Replica is an in-memory copy of a hierarchical document.
//
// A Replica is not safe for concurrent use; callers mutating it from more
// than one goroutine must serialize their calls.
type Replica struct {
	arena arena
	root  int
	hub   hub
	log   *slog.Logger
}

// New returns a replica holding an empty object.
func New(opts ...Option) *Replica {
	r := &Replica{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(r)
	}
	r.root = r.arena.install(ir.Object())
	return r
}

// Subscribe registers obs to receive events after the ones being delivered
// now.
func (r *Replica) Subscribe(obs Observer, opts ...SubscribeOption) *Subscription {
	return r.hub.add(obs, opts...)
}

// Unsubscribe is s.Unsubscribe.
func (r *Replica) Unsubscribe(s *Subscription) {
	s.Unsubscribe()
}

// Get returns a copy of the value at path, or false if there is none.
func (r *Replica) Get(path string) (*ir.Node, bool) {
	return r.GetPath(kpath.Normalize(path))
}

func (r *Replica) GetPath(p kpath.Path) (*ir.Node, bool) {
	i := r.resolve(p)
	if i == noSlot {
		return nil, false
	}
	return r.arena.snapshot(i), true
}

// Root returns a copy of the whole document.
func (r *Replica) Root() *ir.Node {
	return r.arena.snapshot(r.root)
}

// resolve returns the slot at p, or noSlot. Walking stops at the first
// missing key or non object-shaped node.
func (r *Replica) resolve(p kpath.Path) int {
	i := r.root
	for _, seg := range p {
		if !r.arena.slots[i].typ.IsObjectShaped() {
			return noSlot
		}
		if i = r.arena.child(i, seg); i == noSlot {
			return noSlot
		}
	}
	return i
}

// Put replaces the value at path with payload. See package parse for how
// payload text is interpreted. An absent payload deletes the value: that is
// null, or text which is empty or all whitespace, so Put cannot store an
// empty string. Use PutNode with ir.FromString("") for that.
func (r *Replica) Put(origin Origin, path, payload string) error {
	n, err := parse.Payload(payload)
	if err != nil {
		return fmt.Errorf("put /%s: %w", kpath.Normalize(path), err)
	}
	return r.PutNode(origin, path, n)
}

// PutNode is Put with an already parsed payload. A nil node deletes.
func (r *Replica) PutNode(origin Origin, path string, n *ir.Node) error {
	p := kpath.Normalize(path)
	if debug.Put() {
		debug.Logf("put %s /%s %s\n", origin, p, debug.JSON{n})
	}
	if n == nil {
		r.delete(origin, p)
		return nil
	}
	target := r.resolve(p)
	if target == noSlot {
		r.insert(origin, p, n)
		return nil
	}
	old := r.arena.snapshot(target)
	target = r.replace(target, n)
	r.emit(newEvent(origin, Changed, p, old, r.arena.snapshot(target)))
	return nil
}

// Patch merges an object payload into the value at path. Scalar payloads,
// and object payloads over scalar values, behave as Put.
func (r *Replica) Patch(origin Origin, path, payload string) error {
	n, err := parse.Payload(payload)
	if err != nil {
		return fmt.Errorf("patch /%s: %w", kpath.Normalize(path), err)
	}
	return r.PatchNode(origin, path, n)
}

// PatchNode is Patch with an already parsed payload. A nil node deletes.
func (r *Replica) PatchNode(origin Origin, path string, n *ir.Node) error {
	p := kpath.Normalize(path)
	if debug.Patch() {
		debug.Logf("patch %s /%s %s\n", origin, p, debug.JSON{n})
	}
	if n == nil {
		r.delete(origin, p)
		return nil
	}
	target := r.resolve(p)
	if target == noSlot {
		r.insert(origin, p, n)
		return nil
	}
	old := r.arena.snapshot(target)
	if n.IsObjectShaped() && r.arena.slots[target].typ.IsObjectShaped() {
		r.merge(target, n)
	} else {
		target = r.replace(target, n)
	}
	r.emit(newEvent(origin, Changed, p, old, r.arena.snapshot(target)))
	return nil
}

// Delete removes the value at path. Deleting an absent path does nothing;
// deleting the root leaves an empty object.
func (r *Replica) Delete(origin Origin, path string) {
	r.delete(origin, kpath.Normalize(path))
}

func (r *Replica) delete(origin Origin, p kpath.Path) {
	if debug.Delete() {
		debug.Logf("delete %s /%s\n", origin, p)
	}
	target := r.resolve(p)
	if target == noSlot {
		return
	}
	old := r.arena.snapshot(target)
	if parent := r.arena.slots[target].parent; parent != noSlot {
		r.arena.release(r.arena.detach(parent, r.arena.slots[target].key))
	} else {
		r.arena.release(target)
		r.root = r.arena.install(ir.Object())
	}
	r.emit(newEvent(origin, Removed, p, old, nil))
}

// replace stores n in place of slot target and returns the slot now holding
// the value. A scalar over a scalar keeps the slot.
func (r *Replica) replace(target int, n *ir.Node) int {
	if r.arena.slots[target].typ.IsLeaf() && n.IsLeaf() {
		r.arena.setScalar(target, n)
		return target
	}
	c := r.arena.install(n)
	if parent := r.arena.slots[target].parent; parent != noSlot {
		r.arena.attach(parent, r.arena.slots[target].key, c)
		return c
	}
	r.arena.release(target)
	r.root = c
	return c
}

// insert stores n at the absent path p, creating empty objects for missing
// intermediate keys. If an existing scalar is in the way, that scalar is
// replaced by the synthesized subtree and reported as changed.
func (r *Replica) insert(origin Origin, p kpath.Path, n *ir.Node) {
	i := r.root
	for d, seg := range p {
		if !r.arena.slots[i].typ.IsObjectShaped() {
			at := p[:d:d]
			old := r.arena.snapshot(i)
			i = r.replace(i, nest(p[d:], n))
			r.emit(newEvent(origin, Changed, at, old, r.arena.snapshot(i)))
			return
		}
		if d == len(p)-1 {
			c := r.arena.install(n)
			r.arena.attach(i, seg, c)
			r.emit(newEvent(origin, Added, p, nil, r.arena.snapshot(c)))
			return
		}
		c := r.arena.child(i, seg)
		if c == noSlot {
			c = r.arena.install(ir.Object())
			r.arena.attach(i, seg, c)
		}
		i = c
	}
}

// nest wraps n in one object per segment of p.
func nest(p kpath.Path, n *ir.Node) *ir.Node {
	for j := len(p) - 1; j >= 0; j-- {
		n = ir.FromKeyVals([]ir.KeyVal{{Key: p[j], Val: n}})
	}
	return n
}

func (r *Replica) emit(ev *Event) {
	r.log.Debug("change", "origin", ev.Origin, "kind", ev.Kind, "path", ev.Path.String())
	r.hub.emit(ev)
}

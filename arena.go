package replica

import (
	"slices"

	"github.com/signadot/tony-format/replica/ir"
	"github.com/signadot/tony-format/replica/ir/kpath"
)

const noSlot = -1

// slot is one stored node. A slot owns the slots listed in kids; parent is a
// non-owning back reference reset whenever the slot is detached.
type slot struct {
	live   bool
	parent int
	key    string

	typ  ir.Type
	str  string
	num  string
	b    bool
	keys []string
	kids []int
}

// arena stores the tree as slots addressed by index. Indices are stable
// while a slot is live; released indices are reused.
type arena struct {
	slots []slot
	free  []int
}

func (a *arena) alloc() int {
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[i] = slot{live: true, parent: noSlot}
		return i
	}
	a.slots = append(a.slots, slot{live: true, parent: noSlot})
	return len(a.slots) - 1
}

// install copies n into newly allocated, detached slots.
func (a *arena) install(n *ir.Node) int {
	i := a.alloc()
	a.setScalar(i, n)
	if !n.IsObjectShaped() {
		return i
	}
	keys := make([]string, len(n.Fields))
	kids := make([]int, len(n.Fields))
	for j, f := range n.Fields {
		c := a.install(n.Values[j])
		a.slots[c].parent = i
		a.slots[c].key = f
		keys[j] = f
		kids[j] = c
	}
	a.slots[i].keys = keys
	a.slots[i].kids = kids
	return i
}

// setScalar overwrites the value of slot i in place. For object-shaped n
// only the type is taken; children are the caller's business.
func (a *arena) setScalar(i int, n *ir.Node) {
	s := &a.slots[i]
	s.typ = n.Type
	s.str = n.String
	s.num = n.Number
	s.b = n.Bool
	s.keys = nil
	s.kids = nil
}

// release frees i and everything below it. i must be detached.
func (a *arena) release(i int) {
	for _, c := range a.slots[i].kids {
		a.release(c)
	}
	a.slots[i] = slot{parent: noSlot}
	a.free = append(a.free, i)
}

func (a *arena) child(i int, key string) int {
	s := &a.slots[i]
	if j := slices.Index(s.keys, key); j != -1 {
		return s.kids[j]
	}
	return noSlot
}

// attach makes c the child of parent under key, releasing any subtree
// previously stored there.
func (a *arena) attach(parent int, key string, c int) {
	p := &a.slots[parent]
	if j := slices.Index(p.keys, key); j != -1 {
		old := p.kids[j]
		p.kids[j] = c
		if old != c {
			a.slots[old].parent = noSlot
			a.release(old)
		}
	} else {
		p.keys = append(p.keys, key)
		p.kids = append(p.kids, c)
		if p.typ == ir.ArrayType && !ir.IsIndexKey(key) {
			p.typ = ir.ObjectType
		}
	}
	a.slots[c].parent = parent
	a.slots[c].key = key
}

// detach removes the child under key from parent and returns it, or noSlot.
func (a *arena) detach(parent int, key string) int {
	p := &a.slots[parent]
	j := slices.Index(p.keys, key)
	if j == -1 {
		return noSlot
	}
	c := p.kids[j]
	p.keys = slices.Delete(p.keys, j, j+1)
	p.kids = slices.Delete(p.kids, j, j+1)
	a.slots[c].parent = noSlot
	a.slots[c].key = ""
	return c
}

// snapshot deep copies slot i out of the arena.
func (a *arena) snapshot(i int) *ir.Node {
	s := &a.slots[i]
	res := &ir.Node{
		Type:   s.typ,
		String: s.str,
		Number: s.num,
		Bool:   s.b,
	}
	if !s.typ.IsObjectShaped() {
		return res
	}
	res.Fields = slices.Clone(s.keys)
	if res.Fields == nil {
		res.Fields = []string{}
	}
	res.Values = make([]*ir.Node, len(s.kids))
	for j, c := range s.kids {
		res.Values[j] = a.snapshot(c)
	}
	return res
}

// path follows parent back references from i.
func (a *arena) path(i int) kpath.Path {
	var rev []string
	for a.slots[i].parent != noSlot {
		rev = append(rev, a.slots[i].key)
		i = a.slots[i].parent
	}
	slices.Reverse(rev)
	return append(kpath.Path{}, rev...)
}

func (a *arena) live() int {
	return len(a.slots) - len(a.free)
}

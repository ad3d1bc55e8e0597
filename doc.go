// Package replica keeps a local, in-memory copy of a remote hierarchical
// document consistent through three mutations: Put, Patch and Delete.
//
// # Overview
//
// An external synchronization driver feeds mutations into a Replica, each
// tagged with an Origin (Local or Remote):
//
//	r := replica.New()
//	sub := r.Subscribe(replica.ObserverFunc(func(ev *replica.Event) {
//	    fmt.Println(ev)
//	}))
//	defer sub.Unsubscribe()
//
//	r.Put(replica.Local, "users/1/name", "Alice")        // added users/1/name
//	r.Patch(replica.Local, "users/1", `{"age":30}`)      // changed users/1
//	r.Delete(replica.Local, "users/1/name")              // removed users/1/name
//
// Paths are slash or dot separated and normalized with kpath.Normalize; the
// empty path is the document root. Payload text starting with '{' is parsed
// as a JSON object, other text is a scalar string, and "null" deletes.
//
// # Mutations
//
// Put stores the payload at the path. A scalar stored over a scalar is
// overwritten in place; anything else replaces the whole subtree. Missing
// intermediate keys are created as empty objects.
//
// Patch behaves like Put except when both the payload and the existing value
// are object-shaped. Then each direct child of the payload is applied: a
// scalar over a scalar is overwritten in place, and any other child is
// installed wholesale. Keys not in the payload are kept, but a nested object
// in the payload replaces the nested object stored under its key.
//
// Delete removes the value at the path. Deleting an absent path does nothing
// and emits no event. Deleting the root leaves an empty object.
//
// A payload that fails to parse returns an error wrapping parse.ErrParse;
// the document is unchanged and no event is emitted.
//
// # Events
//
// Every successful mutation emits exactly one Event after the document has
// been updated and before the mutation returns. Old is captured by copying
// the prior value before any change. Old and New are canonical renderings:
// compact JSON for objects and arrays, the bare value for scalars.
//
// Events are delivered synchronously on the calling goroutine to the
// subscriptions registered when delivery starts, in registration order.
// A subscription added during delivery first sees the next event. A
// subscription removed during delivery is skipped if it has not been reached.
//
// # Reentrancy
//
// An observer may mutate the replica it observes. The nested mutation runs to
// completion, including delivery of its own event to every subscription,
// before the outer delivery continues. Given subscriptions A, B and C where A
// mutates on event E1 producing E2, the order of calls is
//
//	A(E1), A(E2), B(E2), C(E2), B(E1), C(E1)
//
// so subscriptions after A observe E2 before E1. Observers relying on event
// order must not mutate from within Observe.
//
// # Concurrency
//
// A Replica performs no locking. Embedders calling it from several goroutines
// must serialize access, as the system/replicad server does.
//
// # Storage
//
// The document is held in an arena of slots addressed by index. Each slot
// records its parent's index and its key there as a non-owning back
// reference; ownership runs from parents to the children they list. Get and
// Root return copies, so callers never alias stored state.
package replica

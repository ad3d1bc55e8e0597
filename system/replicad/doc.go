// Package replicad serves a replica over JSON-RPC 2.0.
//
// The synchronization driver sends replica/put, replica/patch and
// replica/delete calls, and may read values with replica/get. Every change to
// the replica, whoever made it, is sent back as a replica/event notification
// carrying the event.
//
// Calls are serialized: a Server holds one lock while it mutates the replica
// and delivers the resulting events, so Do may be used to mutate the same
// replica from other goroutines.
package replicad

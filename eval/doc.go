// Package eval compiles event filter expressions.
//
// Filters are [expr] programs evaluated against one event at a time. The
// environment holds
//
//	origin    "local" or "remote"
//	kind      "added", "changed" or "removed"
//	path      the normalized path, "a/b/c", "" for the root
//	segments  the path segments
//	old, new  the prior and resulting values as JSON-like Go values, nil
//	          when absent
//
// and the helpers under(prefix), which reports whether path is prefix or
// below it, depth(), the number of segments, and getenv(name).
//
// A filter must produce a boolean:
//
//	kind == "changed" && under("users") && new.age > 21
//
// [expr]: https://expr-lang.org
package eval

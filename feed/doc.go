// Package feed decodes a server-sent events change feed and applies it to
// a replica.
//
// A feed is a sequence of events separated by blank lines:
//
//	event: put
//	data: {"path":"/users/1","data":{"name":"Alice"}}
//
//	event: patch
//	data: {"path":"/users/1","data":{"age":30}}
//
//	event: keep-alive
//	data: null
//
// put and patch events carry a path and a JSON value. A string value is
// stored as the scalar it holds, an object as a structured value, and null
// deletes. cancel and auth_revoked end the feed.
package feed

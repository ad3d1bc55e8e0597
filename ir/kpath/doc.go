// Package kpath normalizes textual document addresses into segment paths.
//
// Two textual forms address the same location:
//
//	"users/1/name"
//	"users.1.name"
//
// Leading separators and surrounding whitespace are ignored and empty
// segments are dropped, so "/users//1/name/" and " .users.1.name" normalize
// to the same Path. The empty Path addresses the document root.
//
// # Usage
//
//	p := kpath.Normalize("/users/1/name")
//	p.String()       // "users/1/name"
//	p.Parent()       // users/1
//	p.Base()         // "name"
//
// # Related Packages
//
//   - github.com/signadot/tony-format/replica - the tree store addressed by paths
package kpath

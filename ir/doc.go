// Package ir provides the value representation for replicated documents.
//
// # Overview
//
// A Node is a detached, recursive tagged union. The Type field selects
// which other fields hold the value:
//
//   - NullType: null (only as a leaf inside structured payloads)
//   - BoolType: Bool
//   - NumberType: Number, the literal text of the number
//   - StringType: String
//   - ObjectType: Fields and Values
//   - ArrayType: Fields and Values, with Fields holding element indices
//
// # Objects and arrays
//
// Fields[i] is the key for the value at Values[i], so there will always be the
// same number of fields as values. Keys appear at most once. Insertion order
// is kept for rendering but does not take part in Compare or Equal.
//
// Arrays are object-shaped. Their keys are decimal indices and an array
// renders as a JSON array only while its keys are exactly 0..n-1 in order;
// otherwise it renders as an object. Setting a non-index key on an array
// turns it into an object.
//
// # Creating Nodes
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("Alice")},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// # JSON Interoperability
//
// FromJSON decodes a JSON value keeping object key order, and AppendJSON /
// MarshalJSON render compact JSON in insertion order.
//
// # Thread Safety
//
// Node structures are not thread-safe. Clone nodes before handing them to
// other goroutines.
package ir

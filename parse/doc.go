// Package parse turns driver payload text into values.
//
// # Usage
//
//	node, err := parse.Payload(`{"name": "alice", "age": 30}`)
//	if err != nil {
//	    return err // errors.Is(err, parse.ErrParse)
//	}
//
// Text whose trimmed form starts with '{' is decoded as a JSON object with its
// key order kept. Any other text is an opaque scalar string holding the raw,
// untrimmed text. The text "null", or text that is empty after trimming,
// means the value is absent and Payload returns nil.
//
// # Related Packages
//
//   - github.com/signadot/tony-format/replica/ir - value representation
//   - github.com/signadot/tony-format/replica/encode - encode values to text
package parse

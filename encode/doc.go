// Package encode renders values as text.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("alice")},
//	    {Key: "age", Val: ir.FromInt(30)},
//	})
//
//	// canonical form, as carried by change events
//	encode.String(node) // {"name":"alice","age":30}
//	encode.String(ir.FromString("alice")) // alice
//
//	// indented JSON, optionally colored
//	err := encode.Encode(node, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
//	// YAML
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
// # Related Packages
//
//   - github.com/signadot/tony-format/replica/ir - value representation
//   - github.com/signadot/tony-format/replica/parse - parse payload text
package encode

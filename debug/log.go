package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/ir"
)

// JSON renders a node as compact JSON when formatted with %s.
type JSON struct{ *ir.Node }

func (y JSON) String() string {
	if y.Node == nil {
		return "<absent>"
	}
	return encode.JSON(y.Node)
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			if x == nil {
				args[i] = "<absent>"
				continue
			}
			args[i] = encode.JSON(x)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

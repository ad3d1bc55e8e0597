package parse

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/replica/ir"
)

func TestPayloadOK(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *ir.Node
	}{
		{"scalar", "Alice", ir.FromString("Alice")},
		{"scalar keeps whitespace", "  Alice ", ir.FromString("  Alice ")},
		{"number text is scalar string", "30", ir.FromString("30")},
		{"array text is scalar string", "[1,2]", ir.FromString("[1,2]")},
		{"quoted text is scalar string", `"x"`, ir.FromString(`"x"`)},
		{"empty object", "{}", ir.Object()},
		{"object", `{"age":30}`, ir.FromKeyVals([]ir.KeyVal{{Key: "age", Val: ir.FromInt(30)}})},
		{"leading whitespace object", "  \n{\"a\": true}", ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromBool(true)}})},
		{"nested", `{"a":{"b":[1,"x",null]}}`, ir.FromKeyVals([]ir.KeyVal{
			{Key: "a", Val: ir.FromKeyVals([]ir.KeyVal{
				{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("x"), ir.Null()})},
			})},
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Payload(tt.in)
			if err != nil {
				t.Fatalf("Payload(%q): %v", tt.in, err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("Payload(%q) = %s, want %s", tt.in, ir.AppendJSON(nil, got), ir.AppendJSON(nil, tt.want))
			}
		})
	}
}

func TestPayloadKeepsKeyOrder(t *testing.T) {
	got, err := Payload(`{"z":1,"a":2,"m":3}`)
	if err != nil {
		t.Fatal(err)
	}
	if s := string(ir.AppendJSON(nil, got)); s != `{"z":1,"a":2,"m":3}` {
		t.Errorf("got %s", s)
	}
}

func TestPayloadAbsent(t *testing.T) {
	for _, in := range []string{"", "   ", "null", " null\n"} {
		got, err := Payload(in)
		if err != nil {
			t.Errorf("Payload(%q): %v", in, err)
		}
		if got != nil {
			t.Errorf("Payload(%q) = %v, want nil", in, got)
		}
	}
}

func TestPayloadErrors(t *testing.T) {
	for _, in := range []string{
		"{",
		`{"a":}`,
		`{"a" 1}`,
		`{a: 1}`,
		`{"a":1} trailing`,
		`{"a":1}{"b":2}`,
		`{"a":[1,2}`,
	} {
		_, err := Payload(in)
		if err == nil {
			t.Errorf("Payload(%q): expected error", in)
			continue
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("Payload(%q): %v is not ErrParse", in, err)
		}
		var pErr *Error
		if !errors.As(err, &pErr) {
			t.Errorf("Payload(%q): %T is not *Error", in, err)
		}
	}
}

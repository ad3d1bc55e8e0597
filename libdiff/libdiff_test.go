package libdiff

import (
	"strings"
	"testing"

	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/ir"
	"github.com/signadot/tony-format/replica/parse"
)

func node(s string) *ir.Node {
	if s == "<absent>" {
		return nil
	}
	return parse.MustPayload(s)
}

func render(y *ir.Node) string {
	if y == nil {
		return "<absent>"
	}
	return encode.String(y)
}

func TestDelta(t *testing.T) {
	tests := []struct {
		from, to string
		delta    string
	}{
		{from: `{"a":1}`, to: `{"a":1}`, delta: "<absent>"},
		{from: `{"a":1,"b":2}`, to: `{"a":1,"b":3}`, delta: `{"b":3}`},
		{from: `{"a":1,"b":2}`, to: `{"a":1}`, delta: `{"b":null}`},
		{from: `{"a":{"x":1,"y":2}}`, to: `{"a":{"x":1,"y":3}}`, delta: `{"a":{"y":3}}`},
		{from: `{"l":[1,2]}`, to: `{"l":[1,3]}`, delta: `{"l":[1,3]}`},
		{from: "x", to: "y", delta: "y"},
		{from: "x", to: `{"a":1}`, delta: `{"a":1}`},
		{from: "<absent>", to: "x", delta: "x"},
		{from: `{"a":1}`, to: "<absent>", delta: "null"},
	}
	for _, tc := range tests {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			d, err := Delta(node(tc.from), node(tc.to))
			if err != nil {
				t.Fatal(err)
			}
			want := node(tc.delta)
			if tc.delta == "null" {
				want = ir.Null()
			}
			if !Equal(d, want) {
				t.Errorf("got %s want %s", render(d), tc.delta)
			}
		})
	}
}

func TestApplyDeltaRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{`{"a":1,"b":{"c":"d"}}`, `{"a":2,"b":{"e":true}}`},
		{`{"a":1}`, `{}`},
		{`{}`, `{"n":{"m":[1,2,3]}}`},
		{"x", `{"a":1}`},
		{`{"a":1}`, "x"},
		{"<absent>", `{"a":1}`},
		{`{"a":1}`, "<absent>"},
	}
	for _, p := range pairs {
		from, to := node(p[0]), node(p[1])
		d, err := Delta(from, to)
		if err != nil {
			t.Fatal(err)
		}
		got, err := ApplyDelta(from, d)
		if err != nil {
			t.Fatal(err)
		}
		if !Equal(got, to) {
			t.Errorf("%s -> %s: applying %s gave %s", p[0], p[1], render(d), render(got))
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		from, to string
	}{
		{from: "same", to: "same"},
		{from: "Alice", to: "Alicia"},
		{from: `{"a":1}`, to: `{"a":2}`},
		{from: "", to: "new"},
		{from: "old", to: ""},
		{from: "line 1\nline 2\n", to: "line 1\nline two\n"},
	}
	for _, tc := range tests {
		got := Text(tc.from, tc.to)
		from, to := sides(got)
		if from != tc.from || to != tc.to {
			t.Errorf("Text(%q, %q) = %q", tc.from, tc.to, got)
		}
	}
	if got := Text("same", "same"); got != "same" {
		t.Errorf("got %q", got)
	}
	if got := Text("", "new"); got != "{+new+}" {
		t.Errorf("got %q", got)
	}
}

// sides undoes Text.
func sides(s string) (from, to string) {
	fb, tb := &strings.Builder{}, &strings.Builder{}
	for len(s) > 0 {
		switch {
		case strings.HasPrefix(s, "[-"):
			end := strings.Index(s, "-]")
			fb.WriteString(s[2:end])
			s = s[end+2:]
		case strings.HasPrefix(s, "{+"):
			end := strings.Index(s, "+}")
			tb.WriteString(s[2:end])
			s = s[end+2:]
		default:
			fb.WriteByte(s[0])
			tb.WriteByte(s[0])
			s = s[1:]
		}
	}
	return fb.String(), tb.String()
}

func TestDistance(t *testing.T) {
	if d := Distance("abc", "abd"); d != 1 {
		t.Errorf("got %d", d)
	}
	if d := Distance("x", "x"); d != 0 {
		t.Errorf("got %d", d)
	}
}

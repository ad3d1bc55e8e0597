package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/format"
	"github.com/signadot/tony-format/replica/parse"
)

func runScript(t *testing.T, p *printer, text string) (*replica.Replica, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	r := replica.New()
	p.w = out
	r.Subscribe(p)
	s := &script{r: r, origin: replica.Local, out: out, opts: []encode.EncodeOption{encode.EncodeWire(true)}}
	err := s.run(strings.NewReader(text))
	return r, out.String(), err
}

func TestScript(t *testing.T) {
	r, out, err := runScript(t, &printer{}, `# users
put users/1/name Alice
patch users/1 {"age":30}
get users/1
remote delete users/1/name
get users/1/name
put note   spaced out  
put gone
`)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"local added /users/1/name new=Alice",
		`local changed /users/1 old={"name":"Alice"} new={"name":"Alice","age":30}`,
		`{"name":"Alice","age":30}`,
		"remote removed /users/1/name old=Alice",
		"/users/1/name: <absent>",
		"local added /note new=  spaced out  ",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
	if got := encode.String(r.Root()); got != `{"users":{"1":{"age":30}},"note":"  spaced out  "}` {
		t.Errorf("got %s", got)
	}
}

func TestScriptBlankRuns(t *testing.T) {
	r, _, err := runScript(t, &printer{}, "put keep me\nput  a x\n  remote\tpatch \t b {\"c\":1}\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.String(r.Root()); got != `{"keep":"me","a":"x","b":{"c":1}}` {
		t.Errorf("got %s", got)
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		text string
		want error
	}{
		{text: "frob a b", want: errScript},
		{text: "delete a b", want: errScript},
		{text: "remote get a b", want: errScript},
		{text: `put a {"b":`, want: parse.ErrParse},
	}
	for _, tc := range tests {
		_, _, err := runScript(t, &printer{}, "put ok 1\n"+tc.text)
		if !errors.Is(err, tc.want) {
			t.Errorf("%q: got %v", tc.text, err)
		}
		if err != nil && !strings.HasPrefix(err.Error(), "line 2: ") {
			t.Errorf("%q: error %q lacks line", tc.text, err)
		}
	}
}

func TestPrinterDiffDelta(t *testing.T) {
	_, out, err := runScript(t, &printer{diff: true, delta: true}, `put a {"x":1,"y":2}
patch a {"y":3}
`)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`local added /a new={"x":1,"y":2}`,
		`local changed /a old={"x":1,"y":2} new={"x":1,"y":3}`,
		`  diff: {"x":1,"y":[-2-]{+3+}}`,
		`  delta: {"y":3}`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestPrinterFormat(t *testing.T) {
	f := format.JSONFormat
	p := &printer{format: &f, opts: []encode.EncodeOption{encode.EncodeWire(true)}}
	_, out, err := runScript(t, p, "put a/b 1\nremote put a/b 2\ndelete a\n")
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`{"origin":"local","kind":"added","path":"a/b","new":"1"}`,
		`{"origin":"remote","kind":"changed","path":"a/b","old":"1","new":"2"}`,
		`{"origin":"local","kind":"removed","path":"a","old":{"b":"2"}}`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
	if p.count != 3 {
		t.Errorf("count %d", p.count)
	}
}

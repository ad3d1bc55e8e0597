package feed

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/encode"
)

const sample = `: comment lines are ignored
event: put
data: {"path":"/","data":{"users":{"1":{"name":"Alice"}}}}

event: patch
id: 7
data: {"path":"/users/1",
data:  "data":{"age":30}}

event: keep-alive
data: null

event: put
data: {"path":"users/1/name","data":"Bob"}

event: put
data: {"path":"/users/1/age","data":null}
`

func TestDecoder(t *testing.T) {
	dec := NewDecoder(strings.NewReader(sample))
	type got struct {
		Kind Kind
		ID   string
		Path string
		Data string
		Line int
	}
	var res []got
	for {
		m, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		g := got{Kind: m.Kind, ID: m.ID, Path: m.Path, Line: m.Line}
		if m.Data != nil {
			g.Data = encode.String(m.Data)
		}
		res = append(res, g)
	}
	want := []got{
		{Kind: Put, Path: "/", Data: `{"users":{"1":{"name":"Alice"}}}`, Line: 2},
		{Kind: Patch, ID: "7", Path: "/users/1", Data: `{"age":30}`, Line: 5},
		{Kind: KeepAlive, ID: "7", Line: 10},
		{Kind: Put, ID: "7", Path: "users/1/name", Data: "Bob", Line: 13},
		{Kind: Put, ID: "7", Path: "/users/1/age", Line: 16},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}
}

func TestDecoderErrors(t *testing.T) {
	for _, in := range []string{
		"data: {}\n\n",
		"event: nope\ndata: null\n\n",
		"event: put\ndata: {\"path\":1}\n\n",
		"event: put\ndata: [1]\n\n",
		"event: put\ndata: {oops\n\n",
		"event: put\nbogus: x\n\n",
	} {
		_, err := NewDecoder(strings.NewReader(in)).Next()
		if !errors.Is(err, ErrBadMessage) {
			t.Errorf("%q: got %v", in, err)
		}
	}
}

func TestApply(t *testing.T) {
	r := replica.New()
	var evs []string
	r.Subscribe(replica.ObserverFunc(func(ev *replica.Event) {
		evs = append(evs, ev.String())
	}))
	stats, err := Apply(context.Background(), r, strings.NewReader(sample), nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Stats{Puts: 3, Patches: 1, KeepAlives: 1}, stats); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
	want := []string{
		`remote changed / old={} new={"users":{"1":{"name":"Alice"}}}`,
		`remote changed /users/1 old={"name":"Alice"} new={"name":"Alice","age":30}`,
		`remote changed /users/1/name old=Alice new=Bob`,
		`remote removed /users/1/age old=30`,
	}
	if diff := cmp.Diff(want, evs); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if got := encode.String(r.Root()); got != `{"users":{"1":{"name":"Bob"}}}` {
		t.Errorf("got %s", got)
	}
}

func TestApplyStops(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{in: "event: cancel\ndata: null\n\nevent: put\ndata: {\"path\":\"a\",\"data\":\"x\"}\n\n", want: ErrCanceled},
		{in: "event: auth_revoked\ndata: credential is no longer valid\n", want: ErrAuthRevoked},
	}
	for _, tc := range tests {
		r := replica.New()
		_, err := Apply(context.Background(), r, strings.NewReader(tc.in), nil)
		if !errors.Is(err, tc.want) {
			t.Errorf("got %v want %v", err, tc.want)
		}
		if got := encode.String(r.Root()); got != `{}` {
			t.Errorf("got %s", got)
		}
	}
}

func TestApplyContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Apply(ctx, replica.New(), strings.NewReader(sample), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}

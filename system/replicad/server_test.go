package replicad

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/feed"
	"github.com/signadot/tony-format/replica/ir"

	"go.lsp.dev/jsonrpc2"
)

type events struct {
	mu  sync.Mutex
	evs []string
}

func (e *events) add(ev *replica.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.evs = append(e.evs, ev.String())
}

func (e *events) take() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := e.evs
	e.evs = nil
	return res
}

func setup(t *testing.T, spec *Spec) (*Server, *Client, *events) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	sc, cc := net.Pipe()
	srv := New(spec)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, sc) }()
	evs := &events{}
	cli := Dial(ctx, cc, evs.add)
	t.Cleanup(func() {
		cli.Close()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("serve: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
		cancel()
	})
	return srv, cli, evs
}

func TestServer(t *testing.T) {
	ctx := context.Background()
	_, cli, evs := setup(t, &Spec{})

	if err := cli.Put(ctx, replica.Local, "users/1/name", "Alice"); err != nil {
		t.Fatal(err)
	}
	if err := cli.Patch(ctx, replica.Remote, "users/1", `{"age":30}`); err != nil {
		t.Fatal(err)
	}
	if err := cli.PutValue(ctx, replica.Remote, "users/1/tags", ir.FromSlice([]*ir.Node{ir.FromString("a")})); err != nil {
		t.Fatal(err)
	}
	v, err := cli.Get(ctx, "users/1")
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.String(v); got != `{"name":"Alice","age":30,"tags":["a"]}` {
		t.Errorf("got %s", got)
	}
	if err := cli.Delete(ctx, replica.Local, "users/1/name"); err != nil {
		t.Fatal(err)
	}
	if err := cli.Delete(ctx, replica.Local, "nothing/here"); err != nil {
		t.Fatal(err)
	}
	v, err = cli.Get(ctx, "users/1/name")
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Errorf("got %s", encode.String(v))
	}

	want := []string{
		"local added /users/1/name new=Alice",
		`remote changed /users/1 old={"name":"Alice"} new={"name":"Alice","age":30}`,
		`remote added /users/1/tags new=["a"]`,
		"local removed /users/1/name old=Alice",
	}
	if diff := cmp.Diff(want, evs.take()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestServerErrors(t *testing.T) {
	ctx := context.Background()
	_, cli, evs := setup(t, &Spec{})

	err := cli.Put(ctx, replica.Local, "a", `{"broken"`)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.InvalidParams {
		t.Errorf("got %v", err)
	}
	_, err = cli.conn.Call(ctx, "replica/nope", nil, nil)
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.MethodNotFound {
		t.Errorf("got %v", err)
	}
	_, err = cli.conn.Call(ctx, MethodDelete, []int{1}, nil)
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.InvalidParams {
		t.Errorf("got %v", err)
	}
	if got := evs.take(); len(got) != 0 {
		t.Errorf("unexpected events %v", got)
	}
}

func TestServerDo(t *testing.T) {
	ctx := context.Background()
	srv, cli, evs := setup(t, &Spec{
		Events: []replica.SubscribeOption{replica.AtPath("watched")},
	})
	srv.Do(func(r *replica.Replica) {
		if err := r.Put(replica.Remote, "watched/x", "1"); err != nil {
			t.Error(err)
		}
		if err := r.Put(replica.Remote, "ignored", "1"); err != nil {
			t.Error(err)
		}
	})
	// a round trip orders the notifications before it
	if _, err := cli.Get(ctx, ""); err != nil {
		t.Fatal(err)
	}
	want := []string{"remote added /watched/x new=1"}
	if diff := cmp.Diff(want, evs.take()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestServerFeed(t *testing.T) {
	ctx := context.Background()
	srv, cli, evs := setup(t, &Spec{})
	in := "event: put\ndata: {\"path\":\"a\",\"data\":{\"b\":1}}\n\nevent: patch\ndata: {\"path\":\"a\",\"data\":{\"c\":2}}\n\n"
	if _, err := feed.Apply(ctx, srv, strings.NewReader(in), nil); err != nil {
		t.Fatal(err)
	}
	v, err := cli.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.String(v); got != `{"b":1,"c":2}` {
		t.Errorf("got %s", got)
	}
	want := []string{
		`remote added /a new={"b":1}`,
		`remote changed /a old={"b":1} new={"b":1,"c":2}`,
	}
	if diff := cmp.Diff(want, evs.take()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

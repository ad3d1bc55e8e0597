package replicad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/debug"
	"github.com/signadot/tony-format/replica/ir"
	"github.com/signadot/tony-format/replica/parse"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/jsonrpc2"
)

type Spec struct {
	Replica *replica.Replica
	Log     *slog.Logger
	// Subscribe options for the event notifications sent to the client.
	Events []replica.SubscribeOption
}

type Server struct {
	Spec
	mu sync.Mutex
}

func New(spec *Spec) *Server {
	s := &Server{Spec: *spec}
	if s.Replica == nil {
		s.Replica = replica.New()
	}
	if s.Log == nil {
		s.Log = slog.New(slog.DiscardHandler)
	}
	return s
}

// Do calls f with the replica while holding the server lock.
func (s *Server) Do(f func(r *replica.Replica)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.Replica)
}

// PutNode is replica.Replica.PutNode under the server lock.
func (s *Server) PutNode(origin replica.Origin, path string, n *ir.Node) (err error) {
	s.Do(func(r *replica.Replica) { err = r.PutNode(origin, path, n) })
	return
}

// PatchNode is replica.Replica.PatchNode under the server lock.
func (s *Server) PatchNode(origin replica.Origin, path string, n *ir.Node) (err error) {
	s.Do(func(r *replica.Replica) { err = r.PatchNode(origin, path, n) })
	return
}

// Serve serves one connection over rwc until the peer goes away or ctx is
// done.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))

	var sub *replica.Subscription
	s.Do(func(r *replica.Replica) {
		sub = r.Subscribe(replica.ObserverFunc(func(ev *replica.Event) {
			s.notify(ctx, conn, ev)
		}), s.Events...)
	})
	defer s.Do(func(*replica.Replica) { sub.Unsubscribe() })

	conn.Go(ctx, jsonrpc2.ReplyHandler(s.handle))
	select {
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	case <-conn.Done():
	}
	err := conn.Err()
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}

func (s *Server) notify(ctx context.Context, conn jsonrpc2.Conn, ev *replica.Event) {
	if debug.RPC() {
		debug.Logf("notify %s\n", ev)
	}
	if err := conn.Notify(ctx, MethodEvent, ev); err != nil {
		s.Log.Error("could not send event", "path", ev.Path.String(), "error", err)
	}
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if debug.RPC() {
		debug.Logf("request %s %s\n", req.Method(), req.Params())
	}
	s.Log.Debug("request", "method", req.Method())
	switch req.Method() {
	case MethodPut, MethodPatch:
		var p MutateParams
		if err := decode(req, &p); err != nil {
			return reply(ctx, nil, err)
		}
		return reply(ctx, nil, s.mutate(req.Method(), &p))
	case MethodDelete:
		var p DeleteParams
		if err := decode(req, &p); err != nil {
			return reply(ctx, nil, err)
		}
		s.Do(func(r *replica.Replica) { r.Delete(p.Origin, p.Path) })
		return reply(ctx, nil, nil)
	case MethodGet:
		var p GetParams
		if err := decode(req, &p); err != nil {
			return reply(ctx, nil, err)
		}
		var res GetResult
		s.Do(func(r *replica.Replica) { res.Value, res.Found = r.Get(p.Path) })
		return reply(ctx, &res, nil)
	}
	return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
}

func (s *Server) mutate(method string, p *MutateParams) error {
	var (
		n   *ir.Node
		err error
	)
	switch {
	case p.Payload != nil:
		n, err = parse.Payload(*p.Payload)
		if err != nil {
			return jsonrpc2.Errorf(jsonrpc2.InvalidParams, "%s /%s: %v", method, p.Path, err)
		}
	case p.Value != nil && p.Value.Type != ir.NullType:
		n = p.Value
	}
	if method == MethodPut {
		return s.PutNode(p.Origin, p.Path, n)
	}
	return s.PatchNode(p.Origin, p.Path, n)
}

func decode(req jsonrpc2.Request, v any) error {
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return fmt.Errorf("%s: %w: %w", req.Method(), jsonrpc2.ErrInvalidParams, err)
	}
	return nil
}

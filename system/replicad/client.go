package replicad

import (
	"context"
	"io"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/ir"

	"go.lsp.dev/jsonrpc2"
)

// Client drives a Server from the other end of a connection.
type Client struct {
	conn jsonrpc2.Conn
}

// Dial starts a client over rwc. Event notifications are passed to onEvent,
// which may be nil, on the connection's reading goroutine.
func Dial(ctx context.Context, rwc io.ReadWriteCloser, onEvent func(*replica.Event)) *Client {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	conn.Go(ctx, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if req.Method() != MethodEvent {
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
		ev := &replica.Event{}
		if err := decode(req, ev); err != nil {
			return reply(ctx, nil, err)
		}
		if onEvent != nil {
			onEvent(ev)
		}
		return reply(ctx, nil, nil)
	})
	return &Client{conn: conn}
}

func (c *Client) Put(ctx context.Context, origin replica.Origin, path, payload string) error {
	_, err := c.conn.Call(ctx, MethodPut, &MutateParams{Origin: origin, Path: path, Payload: &payload}, nil)
	return err
}

func (c *Client) PutValue(ctx context.Context, origin replica.Origin, path string, v *ir.Node) error {
	_, err := c.conn.Call(ctx, MethodPut, &MutateParams{Origin: origin, Path: path, Value: v}, nil)
	return err
}

func (c *Client) Patch(ctx context.Context, origin replica.Origin, path, payload string) error {
	_, err := c.conn.Call(ctx, MethodPatch, &MutateParams{Origin: origin, Path: path, Payload: &payload}, nil)
	return err
}

func (c *Client) Delete(ctx context.Context, origin replica.Origin, path string) error {
	_, err := c.conn.Call(ctx, MethodDelete, &DeleteParams{Origin: origin, Path: path}, nil)
	return err
}

// Get returns the value at path, or nil if there is none.
func (c *Client) Get(ctx context.Context, path string) (*ir.Node, error) {
	var res GetResult
	if _, err := c.conn.Call(ctx, MethodGet, &GetParams{Path: path}, &res); err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}
	return res.Value, nil
}

func (c *Client) Close() error {
	err := c.conn.Close()
	<-c.conn.Done()
	return err
}

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/ir"
)

// Target receives the changes of a feed. *replica.Replica is a Target.
type Target interface {
	PutNode(origin replica.Origin, path string, n *ir.Node) error
	PatchNode(origin replica.Origin, path string, n *ir.Node) error
}

// Stats counts what Apply did.
type Stats struct {
	Puts       int
	Patches    int
	KeepAlives int
}

// Apply reads src until it ends and applies each put and patch to t with
// Remote origin. It stops with ErrCanceled or ErrAuthRevoked when the feed
// says so, and with ctx's error when ctx is done.
func Apply(ctx context.Context, t Target, src io.Reader, log *slog.Logger) (Stats, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var stats Stats
	dec := NewDecoder(src)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		m, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		switch m.Kind {
		case Put:
			if err := t.PutNode(replica.Remote, m.Path, m.Data); err != nil {
				return stats, fmt.Errorf("line %d: %w", m.Line, err)
			}
			stats.Puts++
		case Patch:
			if err := t.PatchNode(replica.Remote, m.Path, m.Data); err != nil {
				return stats, fmt.Errorf("line %d: %w", m.Line, err)
			}
			stats.Patches++
		case KeepAlive:
			stats.KeepAlives++
		case Cancel:
			log.Warn("feed canceled", "line", m.Line, "id", m.ID)
			return stats, ErrCanceled
		case AuthRevoked:
			log.Warn("feed authorization revoked", "line", m.Line, "id", m.ID)
			return stats, ErrAuthRevoked
		}
		log.Debug("feed message", "kind", m.Kind, "path", m.Path, "line", m.Line)
	}
}

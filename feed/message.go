package feed

import (
	"fmt"
	"strings"

	"github.com/signadot/tony-format/replica/ir"
)

type Kind int

const (
	Put Kind = iota
	Patch
	KeepAlive
	Cancel
	AuthRevoked
)

func ParseKind(v string) (Kind, error) {
	switch strings.TrimSpace(v) {
	case "put":
		return Put, nil
	case "patch":
		return Patch, nil
	case "keep-alive":
		return KeepAlive, nil
	case "cancel":
		return Cancel, nil
	case "auth_revoked":
		return AuthRevoked, nil
	}
	return 0, fmt.Errorf("%w: unknown event %q", ErrBadMessage, v)
}

func (k Kind) String() string {
	switch k {
	case Put:
		return "put"
	case Patch:
		return "patch"
	case KeepAlive:
		return "keep-alive"
	case Cancel:
		return "cancel"
	case AuthRevoked:
		return "auth_revoked"
	}
	return "<unknown kind>"
}

// Message is one decoded feed event.
type Message struct {
	Kind Kind
	// ID is the last id: field seen, if any.
	ID string
	// Path and Data are set for Put and Patch. A nil Data deletes.
	Path string
	Data *ir.Node
	// Line is the line the event started on.
	Line int
}

// decodeData fills the path and data of a put or patch from its data field.
func (m *Message) decodeData(data string) error {
	doc, err := ir.FromJSON([]byte(data))
	if err != nil {
		return fmt.Errorf("%w at line %d: %w", ErrBadMessage, m.Line, err)
	}
	if doc.Type != ir.ObjectType {
		return fmt.Errorf("%w at line %d: data is %s, not object", ErrBadMessage, m.Line, doc.Type)
	}
	path := ir.Get(doc, "path")
	if path == nil || path.Type != ir.StringType {
		return fmt.Errorf("%w at line %d: missing path", ErrBadMessage, m.Line)
	}
	m.Path = path.String
	d := ir.Get(doc, "data")
	if d != nil && d.Type != ir.NullType {
		m.Data = d
	}
	return nil
}

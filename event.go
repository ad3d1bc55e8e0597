package replica

import (
	"fmt"
	"strings"

	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/ir"
	"github.com/signadot/tony-format/replica/ir/kpath"
)

// Origin records whether a mutation was initiated locally or received from
// the remote document.
type Origin int

const (
	Local Origin = iota
	Remote
)

func ParseOrigin(v string) (Origin, error) {
	switch strings.ToLower(v) {
	case "local", "l":
		return Local, nil
	case "remote", "r":
		return Remote, nil
	}
	return 0, fmt.Errorf("unrecognized origin %q", v)
}

func (o Origin) String() string {
	switch o {
	case Local:
		return "local"
	case Remote:
		return "remote"
	}
	return "<unknown origin>"
}

func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Origin) UnmarshalText(d []byte) error {
	oo, err := ParseOrigin(string(d))
	if err != nil {
		return err
	}
	*o = oo
	return nil
}

// Kind is the kind of change an Event reports.
type Kind int

const (
	Added Kind = iota
	Changed
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	switch string(d) {
	case "added":
		*k = Added
	case "changed":
		*k = Changed
	case "removed":
		*k = Removed
	default:
		return fmt.Errorf("unrecognized kind %q", d)
	}
	return nil
}

// Event describes one completed Put, Patch or Delete.
//
// Old and New hold the canonical renderings of the value at Path before and
// after the mutation; Old is nil for Added and New is nil for Removed.
// OldValue and NewValue are the corresponding snapshots. Events are shared by
// all observers and must not be modified.
type Event struct {
	Origin Origin     `json:"origin"`
	Kind   Kind       `json:"kind"`
	Path   kpath.Path `json:"path"`
	Old    *string    `json:"old,omitempty"`
	New    *string    `json:"new,omitempty"`

	OldValue *ir.Node `json:"-"`
	NewValue *ir.Node `json:"-"`
}

func newEvent(origin Origin, kind Kind, path kpath.Path, old, new *ir.Node) *Event {
	ev := &Event{
		Origin:   origin,
		Kind:     kind,
		Path:     path,
		OldValue: old,
		NewValue: new,
	}
	if old != nil {
		s := encode.String(old)
		ev.Old = &s
	}
	if new != nil {
		s := encode.String(new)
		ev.New = &s
	}
	return ev
}

func (e *Event) String() string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "%s %s /%s", e.Origin, e.Kind, e.Path)
	if e.Old != nil {
		fmt.Fprintf(buf, " old=%s", *e.Old)
	}
	if e.New != nil {
		fmt.Fprintf(buf, " new=%s", *e.New)
	}
	return buf.String()
}

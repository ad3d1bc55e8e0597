package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/encode"
	"github.com/signadot/tony-format/replica/format"
	"github.com/signadot/tony-format/replica/ir"
	"github.com/signadot/tony-format/replica/libdiff"

	"github.com/fatih/color"
)

// printer is an observer writing events to w, one line each, or as
// documents in format when it is set.
type printer struct {
	w      io.Writer
	format *format.Format
	opts   []encode.EncodeOption
	colors bool
	diff   bool
	delta  bool

	count int
	err   error
}

var kindColors = map[replica.Kind]*color.Color{
	replica.Added:   color.New(color.FgGreen),
	replica.Changed: color.New(color.FgYellow),
	replica.Removed: color.New(color.FgRed),
}

func init() {
	for _, c := range kindColors {
		c.EnableColor()
	}
}

func (p *printer) Observe(ev *replica.Event) {
	if p.err != nil {
		return
	}
	p.count++
	if p.format != nil {
		p.err = encode.Encode(p.eventNode(ev), p.w, p.opts...)
		return
	}
	_, p.err = io.WriteString(p.w, p.line(ev))
}

func (p *printer) line(ev *replica.Event) string {
	buf := &strings.Builder{}
	kind := ev.Kind.String()
	if p.colors {
		kind = kindColors[ev.Kind].Sprint(kind)
	}
	fmt.Fprintf(buf, "%s %s /%s", ev.Origin, kind, ev.Path)
	if ev.Old != nil {
		fmt.Fprintf(buf, " old=%s", *ev.Old)
	}
	if ev.New != nil {
		fmt.Fprintf(buf, " new=%s", *ev.New)
	}
	buf.WriteByte('\n')
	if ev.Kind != replica.Changed {
		return buf.String()
	}
	if p.diff {
		d := libdiff.Text(*ev.Old, *ev.New)
		if p.colors {
			d = libdiff.ColorText(*ev.Old, *ev.New)
		}
		fmt.Fprintf(buf, "  diff: %s\n", d)
	}
	if p.delta {
		fmt.Fprintf(buf, "  delta: %s\n", p.deltaString(ev))
	}
	return buf.String()
}

func (p *printer) deltaString(ev *replica.Event) string {
	d, err := libdiff.Delta(ev.OldValue, ev.NewValue)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	if d == nil {
		return "{}"
	}
	return encode.JSON(d)
}

func (p *printer) eventNode(ev *replica.Event) *ir.Node {
	kvs := []ir.KeyVal{
		{Key: "origin", Val: ir.FromString(ev.Origin.String())},
		{Key: "kind", Val: ir.FromString(ev.Kind.String())},
		{Key: "path", Val: ir.FromString(ev.Path.String())},
	}
	if ev.OldValue != nil {
		kvs = append(kvs, ir.KeyVal{Key: "old", Val: ev.OldValue})
	}
	if ev.NewValue != nil {
		kvs = append(kvs, ir.KeyVal{Key: "new", Val: ev.NewValue})
	}
	if ev.Kind == replica.Changed {
		if p.diff {
			kvs = append(kvs, ir.KeyVal{Key: "diff", Val: ir.FromString(libdiff.Text(*ev.Old, *ev.New))})
		}
		if p.delta {
			if d, err := libdiff.Delta(ev.OldValue, ev.NewValue); err == nil && d != nil {
				kvs = append(kvs, ir.KeyVal{Key: "delta", Val: d})
			}
		}
	}
	return ir.FromKeyVals(kvs)
}

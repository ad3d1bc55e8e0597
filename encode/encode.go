package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/replica/format"
	"github.com/signadot/tony-format/replica/ir"

	"github.com/goccy/go-yaml"
)

type EncState struct {
	indent int
	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w followed by a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.YAMLFormat:
		return encodeYAML(node, w)
	case format.JSONFormat:
		buf := &bytes.Buffer{}
		encodeJSON(node, buf, es, 0)
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
}

func encodeYAML(node *ir.Node, w io.Writer) error {
	d, err := yaml.Marshal(ToYAML(node))
	if err != nil {
		return fmt.Errorf("error encoding yaml: %w", err)
	}
	_, err = w.Write(d)
	return err
}

// ToYAML converts node to a value for yaml.Marshal. Objects become
// yaml.MapSlice so that key order is kept.
func ToYAML(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if i, err := strconv.ParseInt(node.Number, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(node.Number, 64); err == nil {
			return f
		}
		return node.Number
	case ir.ArrayType:
		if node.IsDenseArray() {
			res := make([]any, len(node.Values))
			for i, v := range node.Values {
				res[i] = ToYAML(v)
			}
			return res
		}
	}
	res := make(yaml.MapSlice, len(node.Fields))
	for i, f := range node.Fields {
		res[i] = yaml.MapItem{Key: f, Value: ToYAML(node.Values[i])}
	}
	return res
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) newline(buf *bytes.Buffer, depth int) {
	if es.wire {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth*es.indent))
}

func encodeJSON(node *ir.Node, buf *bytes.Buffer, es *EncState, depth int) {
	switch node.Type {
	case ir.NullType, ir.BoolType, ir.NumberType, ir.StringType:
		buf.WriteString(es.color(node.Type, ValueColor, string(ir.AppendJSON(nil, node))))
		return
	}
	open, close := "{", "}"
	dense := node.IsDenseArray()
	if dense {
		open, close = "[", "]"
	}
	buf.WriteString(es.color(node.Type, SepColor, open))
	if len(node.Values) == 0 {
		buf.WriteString(es.color(node.Type, SepColor, close))
		return
	}
	for i, v := range node.Values {
		if i > 0 {
			buf.WriteString(es.color(node.Type, SepColor, ","))
		}
		es.newline(buf, depth+1)
		if !dense {
			buf.WriteString(es.color(node.Type, FieldColor, string(ir.AppendQuote(nil, node.Fields[i]))))
			buf.WriteString(es.color(node.Type, SepColor, ":"))
			if !es.wire {
				buf.WriteByte(' ')
			}
		}
		encodeJSON(v, buf, es, depth+1)
	}
	es.newline(buf, depth)
	buf.WriteString(es.color(node.Type, SepColor, close))
}

package feed

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/tony-format/replica/debug"
)

// Decoder reads messages from a feed.
type Decoder struct {
	sc   *bufio.Scanner
	line int
	id   string
}

func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Decoder{sc: sc}
}

// Next returns the next message, or io.EOF when the feed ends. A final event
// not followed by a blank line is still returned.
func (d *Decoder) Next() (*Message, error) {
	var (
		event   string
		data    []string
		start   int
		pending bool
	)
	for {
		if !d.sc.Scan() {
			if err := d.sc.Err(); err != nil {
				return nil, err
			}
			if !pending {
				return nil, io.EOF
			}
			return d.dispatch(event, data, start)
		}
		d.line++
		ln := strings.TrimSuffix(d.sc.Text(), "\r")
		if ln == "" {
			if !pending {
				continue
			}
			return d.dispatch(event, data, start)
		}
		if strings.HasPrefix(ln, ":") {
			continue
		}
		if !pending {
			pending = true
			start = d.line
		}
		field, value, _ := strings.Cut(ln, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			event = value
		case "data":
			data = append(data, value)
		case "id":
			d.id = value
		case "retry":
		default:
			return nil, fmt.Errorf("%w at line %d: unknown field %q", ErrBadMessage, d.line, field)
		}
	}
}

func (d *Decoder) dispatch(event string, data []string, line int) (*Message, error) {
	if debug.Feed() {
		debug.Logf("feed line %d event %q data %q\n", line, event, data)
	}
	if event == "" {
		return nil, fmt.Errorf("%w at line %d: missing event", ErrBadMessage, line)
	}
	k, err := ParseKind(event)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	m := &Message{Kind: k, ID: d.id, Line: line}
	if k != Put && k != Patch {
		return m, nil
	}
	if err := m.decodeData(strings.Join(data, "\n")); err != nil {
		return nil, err
	}
	return m, nil
}

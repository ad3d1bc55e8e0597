package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// MarshalJSON renders y as compact JSON with object keys in insertion order.
func (y *Node) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, y), nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	n, err := FromJSON(d)
	if err != nil {
		return err
	}
	*y = *n
	return nil
}

// FromJSON decodes a single JSON value, keeping object key order. Duplicate
// keys keep the last value.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("%w: trailing data at offset %d", ErrJSON, dec.InputOffset())
		}
		return nil, fmt.Errorf("%w: %w", ErrJSON, err)
	}
	return res, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %w", ErrJSON, err)
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			res := Object()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrJSON, err)
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: non-string key %v", ErrJSON, kt)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrJSON, err)
			}
			return res, nil
		case '[':
			vals := []*Node{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				vals = append(vals, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrJSON, err)
			}
			return FromSlice(vals), nil
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrJSON, v)
		}
	case string:
		return FromString(v), nil
	case json.Number:
		return FromNumber(v.String()), nil
	case bool:
		return FromBool(v), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrJSON, tok)
}

// AppendJSON appends the compact JSON rendering of y to dst. Arrays whose
// keys are not exactly 0..n-1 render as objects.
func AppendJSON(dst []byte, y *Node) []byte {
	switch y.Type {
	case NullType:
		return append(dst, "null"...)
	case BoolType:
		return strconv.AppendBool(dst, y.Bool)
	case NumberType:
		if y.Number == "" {
			return append(dst, '0')
		}
		return append(dst, y.Number...)
	case StringType:
		return AppendQuote(dst, y.String)
	case ArrayType:
		if y.IsDenseArray() {
			dst = append(dst, '[')
			for i, v := range y.Values {
				if i > 0 {
					dst = append(dst, ',')
				}
				dst = AppendJSON(dst, v)
			}
			return append(dst, ']')
		}
	}
	dst = append(dst, '{')
	for i, f := range y.Fields {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = AppendQuote(dst, f)
		dst = append(dst, ':')
		dst = AppendJSON(dst, y.Values[i])
	}
	return append(dst, '}')
}

const hex = "0123456789abcdef"

// AppendQuote appends s as a JSON string literal.
func AppendQuote(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				dst = append(dst, '\\', c)
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				if c < 0x20 {
					dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
				} else {
					dst = append(dst, c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, `\ufffd`...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}

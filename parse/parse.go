package parse

import (
	"strings"

	"github.com/signadot/tony-format/replica/ir"
)

// IsAbsent reports whether text is the absent-value sentinel.
func IsAbsent(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || t == "null"
}

// IsStructured reports whether text is parsed as an object.
func IsStructured(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "{")
}

// Payload parses text into a value, or returns nil if text is the absent
// sentinel.
func Payload(text string) (*ir.Node, error) {
	if IsAbsent(text) {
		return nil, nil
	}
	if !IsStructured(text) {
		return ir.FromString(text), nil
	}
	res, err := ir.FromJSON([]byte(text))
	if err != nil {
		return nil, &Error{Payload: text, Err: err}
	}
	return res, nil
}

// MustPayload is like Payload but panics on error. It is intended for tests
// and literals.
func MustPayload(text string) *ir.Node {
	res, err := Payload(text)
	if err != nil {
		panic(err)
	}
	return res
}

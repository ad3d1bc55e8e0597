package parse

import (
	"errors"
	"fmt"
)

var ErrParse = errors.New("parse error")

// Error reports a structured payload that could not be parsed.
type Error struct {
	Payload string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: payload %s: %v", ErrParse, abbrev(e.Payload), e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

func abbrev(s string) string {
	const n = 64
	if len(s) <= n {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q...", s[:n])
}

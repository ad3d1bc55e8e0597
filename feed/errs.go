package feed

import "errors"

var (
	ErrBadMessage  = errors.New("bad feed message")
	ErrCanceled    = errors.New("feed canceled")
	ErrAuthRevoked = errors.New("feed authorization revoked")
)

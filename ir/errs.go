package ir

import "errors"

var ErrJSON = errors.New("invalid json")

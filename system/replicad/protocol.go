package replicad

import (
	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/ir"
)

const (
	MethodPut    = "replica/put"
	MethodPatch  = "replica/patch"
	MethodDelete = "replica/delete"
	MethodGet    = "replica/get"
	MethodEvent  = "replica/event"
)

// MutateParams are the params of put and patch calls.
//
// Payload, when set, is interpreted as text: '{' starts a JSON object,
// anything else is a string, and "" or "null" deletes. Otherwise Value is
// used as is; a missing or null Value deletes.
type MutateParams struct {
	Origin  replica.Origin `json:"origin"`
	Path    string         `json:"path"`
	Payload *string        `json:"payload,omitempty"`
	Value   *ir.Node       `json:"value,omitempty"`
}

type DeleteParams struct {
	Origin replica.Origin `json:"origin"`
	Path   string         `json:"path"`
}

type GetParams struct {
	Path string `json:"path"`
}

type GetResult struct {
	Found bool     `json:"found"`
	Value *ir.Node `json:"value,omitempty"`
}

package eval

import (
	"fmt"
	"os"

	"github.com/signadot/tony-format/replica"
	"github.com/signadot/tony-format/replica/debug"
	"github.com/signadot/tony-format/replica/ir/kpath"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the evaluation environment of a filter.
type Env map[string]any

// EventEnv returns the environment ev is filtered in.
func EventEnv(ev *replica.Event) Env {
	path := ev.Path
	segs := make([]string, len(path))
	copy(segs, path)
	return Env{
		"origin":   ev.Origin.String(),
		"kind":     ev.Kind.String(),
		"path":     path.String(),
		"segments": segs,
		"old":      ToJSONAny(ev.OldValue),
		"new":      ToJSONAny(ev.NewValue),
		"under": func(prefix string) bool {
			return path.HasPrefix(kpath.Normalize(prefix))
		},
		"depth": func() int {
			return len(path)
		},
	}
}

// Filter is a compiled filter expression.
type Filter struct {
	src string
	prg *vm.Program
}

// Compile compiles src, which must evaluate to a boolean.
func Compile(src string) (*Filter, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error compiling filter %q: %w", src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func exprOpts() []expr.Option {
	sample := EventEnv(&replica.Event{})
	// old and new have no static type
	sample["old"] = any(nil)
	sample["new"] = any(nil)
	return []expr.Option{
		expr.Env(map[string]any(sample)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func (f *Filter) String() string {
	return f.src
}

// Match reports whether ev passes the filter.
func (f *Filter) Match(ev *replica.Event) (bool, error) {
	res, err := vm.Run(f.prg, EventEnv(ev))
	if err != nil {
		return false, fmt.Errorf("error evaluating filter %q on %s: %w", f.src, ev, err)
	}
	ok, _ := res.(bool)
	if debug.Emit() {
		debug.Logf("filter %q on %s: %t\n", f.src, ev, ok)
	}
	return ok, nil
}

// Option returns a subscription option delivering only matching events.
// Events on which the filter fails to evaluate are not delivered; onErr, if
// non-nil, is called with the error.
func (f *Filter) Option(onErr func(error)) replica.SubscribeOption {
	return replica.Where(func(ev *replica.Event) bool {
		ok, err := f.Match(ev)
		if err != nil && onErr != nil {
			onErr(err)
		}
		return ok
	})
}
